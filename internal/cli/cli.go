// Package cli runs a single generation without the TUI and prints the
// outcome in text, json or yaml form.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/metawrite/internal/executor"
	"github.com/studiowebux/metawrite/internal/export"
	"github.com/studiowebux/metawrite/internal/filter"
	"github.com/studiowebux/metawrite/internal/panel"
	"github.com/studiowebux/metawrite/internal/types"
)

// ErrGenerationFailed is returned when the request ends in the Failed state.
// The user-facing message has already been written to Stderr.
var ErrGenerationFailed = errors.New("article generation failed")

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatBody = "body"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// RunOptions contains options for a one-shot generation
type RunOptions struct {
	Query        string
	Endpoint     string
	Timeout      time.Duration
	UserAgent    string
	OutputFormat string // text, json, yaml, body
	Filter       string // JMESPath expression or $(command)
	SavePath     string // markdown export file or directory
	Copy         bool   // copy the source URL to the clipboard
	Color        bool

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Run generates one article for opts.Query and prints it
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = FormatText
	}

	if err := validateFormat(opts.OutputFormat); err != nil {
		return err
	}
	if err := filter.Validate(opts.Filter); err != nil {
		return err
	}

	client := executor.New(executor.Config{
		Endpoint:  opts.Endpoint,
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
	}, opts.Logger)

	p := panel.New(client, opts.Logger)
	p.SetQuery(opts.Query)

	state := p.Submit(ctx)

	switch s := state.(type) {
	case panel.Succeeded:
		return emit(ctx, opts, s.Article)
	case panel.Failed:
		fmt.Fprintf(opts.Stderr, "%sErrore: %s%s\n", colorize(opts.Color, colorRed), s.Message, colorize(opts.Color, colorReset))
		return fmt.Errorf("%w: %s", ErrGenerationFailed, s.Message)
	default:
		return fmt.Errorf("unexpected state after request: %s", state.Status())
	}
}

// emit writes the article to stdout and performs the optional side effects
func emit(ctx context.Context, opts RunOptions, article types.Article) error {
	var output string
	var err error

	if opts.Filter != "" {
		output, err = filter.Article(ctx, article, opts.Filter)
		if err != nil {
			return err
		}
		output += "\n"
	} else {
		output, err = formatOutput(article, opts.OutputFormat, opts.Color)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	}

	if _, err := io.WriteString(opts.Stdout, output); err != nil {
		return err
	}

	if opts.SavePath != "" {
		path, err := export.Save(export.Document{
			Query:       opts.Query,
			Article:     article,
			GeneratedAt: time.Now(),
		}, opts.SavePath)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Stderr, "Article saved to %s\n", path)
	}

	if opts.Copy {
		if article.URL == "" {
			fmt.Fprintln(opts.Stderr, "Warning: no source URL to copy")
		} else if err := copyToClipboard(article.URL); err != nil {
			fmt.Fprintf(opts.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(opts.Stderr, "Source URL copied to clipboard")
		}
	}

	return nil
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatBody:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use text, json, yaml or body)", format)
}

// formatOutput formats the article based on the output format
func formatOutput(article types.Article, format string, color bool) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(article, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(article)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatBody:
		return withNewline(article.Body), nil

	default:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%sArticolo Generato%s\n", colorize(color, colorGreen), colorize(color, colorReset)))
		sb.WriteString(fmt.Sprintf("Fonte utilizzata: %s\n\n", article.URL))
		sb.WriteString(withNewline(article.Body))
		return sb.String(), nil
	}
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
)

func colorize(enabled bool, code string) string {
	if !enabled {
		return ""
	}
	return code
}

// ReadQuery builds the query from command arguments, joined by single
// spaces, or from stdin when no arguments are given and stdin is piped.
// One trailing newline from stdin is dropped; everything else is kept.
func ReadQuery(args []string, stdin io.Reader, piped bool) (string, error) {
	if len(args) > 0 || !piped || stdin == nil {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	query := strings.TrimSuffix(string(data), "\n")
	query = strings.TrimSuffix(query, "\r")
	return query, nil
}

// IsPiped reports whether f is not a terminal
func IsPiped(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
