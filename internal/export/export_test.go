package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/metawrite/internal/types"
)

var generatedAt = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

func testDocument() Document {
	return Document{
		Query: "Energia solare in Italia",
		Article: types.Article{
			URL:  "https://example.com/solare",
			Body: "Titolo\n\n  testo rientrato\nfine",
		},
		GeneratedAt: generatedAt,
	}
}

func TestMarkdown(t *testing.T) {
	data, err := Markdown(testDocument())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	text := string(data)
	if !strings.HasPrefix(text, "---\nquery: Energia solare in Italia\n") {
		t.Errorf("unexpected header:\n%s", text)
	}
	if !strings.Contains(text, "source:") || !strings.Contains(text, "https://example.com/solare") {
		t.Errorf("source missing:\n%s", text)
	}
	if !strings.HasSuffix(text, "---\n\nTitolo\n\n  testo rientrato\nfine\n") {
		t.Errorf("body not preserved:\n%s", text)
	}
}

func TestMarkdown_FrontMatterRoundTrip(t *testing.T) {
	doc := testDocument()
	doc.Query = "riga uno\nriga due: con due punti"
	doc.Article.Body = "corpo\n"

	data, err := Markdown(doc)
	if err != nil {
		t.Fatal(err)
	}

	meta, body := splitFrontMatter(t, data)
	if meta.Query != doc.Query {
		t.Errorf("query = %q, want %q", meta.Query, doc.Query)
	}
	if meta.Source != doc.Article.URL {
		t.Errorf("source = %q", meta.Source)
	}
	if !meta.GeneratedAt.Equal(generatedAt) {
		t.Errorf("generated_at = %v", meta.GeneratedAt)
	}
	if body != "corpo\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Energia solare in Italia", "energia-solare-in-italia"},
		{"  Perché?? Città!  ", "perché-città"},
		{"", ""},
		{"!!!", ""},
		{strings.Repeat("a", 60), strings.Repeat("a", 40)},
		{strings.Repeat("abc ", 15), strings.TrimSuffix(strings.Repeat("abc-", 10), "-")},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFilename(t *testing.T) {
	if got := DefaultFilename("Ciao mondo", generatedAt); got != "metawrite_ciao-mondo_20261018_153000.md" {
		t.Errorf("got %q", got)
	}
	if got := DefaultFilename("", generatedAt); got != "metawrite_20261018_153000.md" {
		t.Errorf("got %q", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("into directory", func(t *testing.T) {
		path, err := Save(testDocument(), dir)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		want := filepath.Join(dir, "metawrite_energia-solare-in-italia_20261018_153000.md")
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	})

	t.Run("explicit file in new directory", func(t *testing.T) {
		target := filepath.Join(dir, "nested", "articolo.md")
		path, err := Save(testDocument(), target)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if path != target {
			t.Errorf("path = %q, want %q", path, target)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "testo rientrato") {
			t.Error("body missing from saved file")
		}
	})
}

// splitFrontMatter decodes the YAML block of an exported file and returns
// it with the body that follows
func splitFrontMatter(t *testing.T, data []byte) (FrontMatter, string) {
	t.Helper()

	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("missing front matter:\n%s", text)
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		t.Fatalf("unterminated front matter:\n%s", text)
	}

	var meta FrontMatter
	if err := yaml.Unmarshal([]byte(rest[:end+1]), &meta); err != nil {
		t.Fatalf("invalid front matter: %v", err)
	}
	return meta, strings.TrimPrefix(rest[end+len("\n---\n"):], "\n")
}
