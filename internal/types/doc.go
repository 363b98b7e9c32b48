/*
Package types defines the data structures shared by MetaWrite packages.

# Overview

The types package holds the wire format of the article-generation service
and the values built from it:
  - GenerateRequest: body sent to POST /generate_article
  - Article: generated text plus the source URL it was based on
  - ErrorPayload: error body returned on non-2xx responses

# Wire Format

Field names follow the service contract, which is in Italian:

	request:  {"query": "intelligenza artificiale"}
	success:  {"articolo_generato": "...", "url_utilizzata": "https://..."}
	failure:  {"detail": "Nessun risultato trovato per la query."}

Missing success fields decode as empty strings. No validation is applied,
the UI renders whatever arrived.
*/
package types
