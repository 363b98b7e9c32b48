// Package export writes a generated article to disk as Markdown with a YAML
// front matter block carrying the query and source URL.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/studiowebux/metawrite/internal/config"
	"github.com/studiowebux/metawrite/internal/types"
	"gopkg.in/yaml.v3"
)

// maxSlugLength bounds the query-derived part of a filename
const maxSlugLength = 40

// FrontMatter is the metadata block written above the article body
type FrontMatter struct {
	Query       string    `yaml:"query"`
	Source      string    `yaml:"source"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// Document is an article ready for export
type Document struct {
	Query       string
	Article     types.Article
	GeneratedAt time.Time
}

// Markdown renders the document. The body is written verbatim.
func Markdown(doc Document) ([]byte, error) {
	meta, err := yaml.Marshal(FrontMatter{
		Query:       doc.Query,
		Source:      doc.Article.URL,
		GeneratedAt: doc.GeneratedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(doc.Article.Body)
	if !strings.HasSuffix(doc.Article.Body, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// DefaultFilename builds metawrite_<slug>_<timestamp>.md, dropping the
// slug when the query has no usable characters.
func DefaultFilename(query string, at time.Time) string {
	timestamp := at.Format("20060102_150405")
	if slug := Slug(query); slug != "" {
		return fmt.Sprintf("metawrite_%s_%s.md", slug, timestamp)
	}
	return fmt.Sprintf("metawrite_%s.md", timestamp)
}

// Slug lowercases the query and keeps letters and digits, joining runs of
// anything else with a single dash.
func Slug(query string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(query) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
			continue
		}
		dash = true
	}

	slug := []rune(sb.String())
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return strings.Trim(string(slug), "-")
}

// Save writes the document. When path is a directory or empty, a default
// filename is generated inside it (empty means the current directory).
// Returns the written path.
func Save(doc Document, path string) (string, error) {
	target := path
	if target == "" {
		target = "."
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, DefaultFilename(doc.Query, doc.GeneratedAt))
	}

	data, err := Markdown(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), config.DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(target, data, config.FilePermissions); err != nil {
		return "", fmt.Errorf("failed to save article: %w", err)
	}

	return target, nil
}
