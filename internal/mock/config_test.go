package mock

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSaveLoadConfig(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"mock.yaml", "mock.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			want := DefaultConfig()
			if err := SaveConfig(want, path); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}
			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yml")
	content := `port: 9000
routes:
  - name: lento
    method: POST
    path: /generate_article
    queryContains: lento
    delay: 3000
    body: '{"url_utilizzata": "", "articolo_generato": "{{query}}"}'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9000 || len(cfg.Routes) != 1 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if r := cfg.Routes[0]; r.QueryContains != "lento" || r.Delay != 3000 {
		t.Errorf("route = %+v", r)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"unsupported extension", "mock.toml", "", "unsupported config file format"},
		{"no routes", "empty.yaml", "port: 1\n", "no routes defined"},
		{"missing method", "m.yaml", "routes:\n  - path: /x\n", "method is required"},
		{"missing path", "p.yaml", "routes:\n  - method: GET\n", "path is required"},
		{"bad path type", "t.yaml", "routes:\n  - {method: GET, path: /x, pathType: glob}\n", "pathType must be"},
		{"bad regex", "r.yaml", "routes:\n  - {method: GET, path: '(', pathType: regex}\n", "invalid path regex"},
		{"bad status", "s.yaml", "routes:\n  - {method: GET, path: /x, status: 42}\n", "invalid status"},
		{"negative delay", "d.yaml", "routes:\n  - {method: GET, path: /x, delay: -1}\n", "delay must not be negative"},
		{"body and file", "b.yaml", "routes:\n  - {method: GET, path: /x, body: a, bodyFile: b}\n", "mutually exclusive"},
		{"broken json", "broken.json", "{", "failed to parse JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %v, want containing %q", err, tt.contains)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
