package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/studiowebux/metawrite/internal/config"
	"github.com/studiowebux/metawrite/internal/executor"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort matches the port the generation service listens on locally
	DefaultPort = 8000
	// DefaultHost binds to loopback only
	DefaultHost = "localhost"
)

// DefaultConfig returns a configuration that imitates the generation
// service: queries containing "#errore" fail with a detail message,
// everything else gets an article echoing the query.
func DefaultConfig() *Config {
	return &Config{
		Port:    DefaultPort,
		Host:    DefaultHost,
		Logging: true,
		Routes: []Route{
			{
				Name:          "generation-error",
				Method:        http.MethodPost,
				Path:          executor.GeneratePath,
				QueryContains: "#errore",
				Status:        http.StatusInternalServerError,
				Headers:       map[string]string{"Content-Type": "application/json"},
				Body:          `{"detail": "Impossibile generare l'articolo per: {{query}}"}`,
				Description:   "Simulated failure with a detail message",
			},
			{
				Name:        "generate-article",
				Method:      http.MethodPost,
				Path:        executor.GeneratePath,
				Status:      http.StatusOK,
				Headers:     map[string]string{"Content-Type": "application/json"},
				Body:        `{"url_utilizzata": "https://example.com/fonte", "articolo_generato": "Articolo di prova\n\nRichiesta: {{query}}"}`,
				Delay:       800,
				Description: "Successful generation",
			},
		},
	}
}

// LoadConfig loads a mock configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// validateConfig validates the mock configuration
func validateConfig(cfg *Config) error {
	if len(cfg.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}

	for i, route := range cfg.Routes {
		if route.Method == "" {
			return fmt.Errorf("route %d: method is required", i)
		}
		if route.Path == "" {
			return fmt.Errorf("route %d: path is required", i)
		}
		switch route.PathType {
		case "", "exact", "prefix":
		case "regex":
			if _, err := regexp.Compile(route.Path); err != nil {
				return fmt.Errorf("route %d: invalid path regex: %w", i, err)
			}
		default:
			return fmt.Errorf("route %d: pathType must be 'exact', 'prefix', or 'regex'", i)
		}
		if route.Status != 0 && (route.Status < 100 || route.Status > 599) {
			return fmt.Errorf("route %d: invalid status %d", i, route.Status)
		}
		if route.Delay < 0 {
			return fmt.Errorf("route %d: delay must not be negative", i)
		}
		if route.Body != "" && route.BodyFile != "" {
			return fmt.Errorf("route %d: body and bodyFile are mutually exclusive", i)
		}
	}

	return nil
}

// SaveConfig saves a mock configuration to a file
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
