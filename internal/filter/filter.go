// Package filter narrows a generated article with a JMESPath expression or
// pipes it through a shell command.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/metawrite/internal/types"
)

const (
	// QueryShellTimeout is the maximum time allowed for query shell command execution
	QueryShellTimeout = 30 * time.Second
)

var (
	// Shell command pattern: $(command)
	shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)
)

// Apply applies an expression to a JSON document.
// A $(...) expression runs as a shell command with the document on stdin,
// anything else is compiled as JMESPath. String results are returned
// unquoted so they can be printed directly.
func Apply(ctx context.Context, body string, expression string) (string, error) {
	if expression == "" {
		return body, nil
	}

	if matches := shellPattern.FindStringSubmatch(expression); len(matches) > 1 {
		out, err := executeShellCommand(ctx, body, matches[1])
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}

	out, err := applyJMESPath(body, expression)
	if err != nil {
		return "", fmt.Errorf("failed to apply filter: %w", err)
	}
	return out, nil
}

// Article applies an expression to the wire form of an article, so field
// names are url_utilizzata and articolo_generato.
func Article(ctx context.Context, article types.Article, expression string) (string, error) {
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal article: %w", err)
	}
	return Apply(ctx, string(data), expression)
}

// applyJMESPath applies a JMESPath expression to a JSON string
func applyJMESPath(jsonStr string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	switch v := result.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// executeShellCommand executes a shell command with the body piped to stdin
func executeShellCommand(ctx context.Context, body string, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := err.Error()
		if stderr.Len() > 0 {
			errMsg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand checks if a query is a shell command (starts with $(...))
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}

// Validate reports whether expression can be applied, without running it.
func Validate(expression string) error {
	if expression == "" || IsShellCommand(expression) {
		return nil
	}
	if _, err := jmespath.Compile(expression); err != nil {
		return fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	return nil
}
