/*
Package executor performs the call to the article-generation service.

# Overview

A Client sends one POST {endpoint}/generate_article request with the body
{"query": "..."} and maps the outcome to either a *types.Article or an error.

# Error Handling

Errors fall into three classes:
  - Application errors: non-2xx status, returned as *APIError. Detail holds the
    service's "detail" message when one could be extracted.
  - Transport errors: connection refused, DNS, TLS, cancelled context. These are
    the wrapped errors from http.Client.Do.
  - Malformed responses: a 2xx whose body is not valid JSON. These wrap
    ErrMalformedResponse.

No class is retried.

# Timeouts

Settings.Timeout of 0 leaves the http.Client without a timeout, so a hung
service keeps the request open until the context is cancelled.

# Example Usage

	client := executor.New(executor.Config{
		Endpoint: "https://metawrite.onrender.com",
	}, logger)

	article, err := client.Generate(ctx, "intelligenza artificiale")
	if err != nil {
		var apiErr *executor.APIError
		if errors.As(err, &apiErr) {
			fmt.Println(apiErr.StatusCode, apiErr.Detail)
		}
		return err
	}

	fmt.Println(article.URL)
	fmt.Println(article.Body)

# Thread Safety

Generate is safe to call concurrently; each call builds its own request.
*/
package executor
