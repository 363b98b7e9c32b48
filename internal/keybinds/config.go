package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// an action name to a comma separated list of keys.
type Config struct {
	Version string            `json:"version,omitempty"`
	Global  map[string]string `json:"global,omitempty"`
	Input   map[string]string `json:"input,omitempty"`
	Article map[string]string `json:"article,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON or JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a JSONC document. Comments and trailing commas are
// stripped before decoding.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}
	return &config, nil
}

// SaveConfig saves keybinding configuration as indented JSON
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry. A configured action
// loses its default keys in that context before the new keys are bound.
func ApplyConfig(registry *Registry, config *Config) error {
	sections := []struct {
		context  Context
		bindings map[string]string
	}{
		{ContextGlobal, config.Global},
		{ContextInput, config.Input},
		{ContextArticle, config.Article},
	}

	for _, section := range sections {
		for actionStr, keyList := range section.bindings {
			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in context %q", actionStr, section.context)
			}
			keys := ParseKeyList(keyList)
			if len(keys) == 0 {
				return fmt.Errorf("no keys given for action %q in context %q", actionStr, section.context)
			}
			registry.Unbind(section.context, action)
			registry.RegisterMultiple(section.context, keys, action)
		}
	}

	return nil
}

// ParseKeyList splits "a, b,space" into key names as reported by the
// terminal. "space" is accepted as an alias for " ".
func ParseKeyList(s string) []string {
	var keys []string
	for _, part := range strings.Split(s, ",") {
		key := strings.TrimSpace(part)
		if key == "" {
			continue
		}
		if key == "space" {
			key = " "
		}
		keys = append(keys, key)
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns the
// default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	config, err := LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(configPath), err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	result := NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds config:\n%s", result.String())
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings as a config, so users can
// see what can be customized
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{
		Version: "1.0",
		Global:  make(map[string]string),
		Input:   make(map[string]string),
		Article: make(map[string]string),
	}

	sections := map[Context]map[string]string{
		ContextGlobal:  config.Global,
		ContextInput:   config.Input,
		ContextArticle: config.Article,
	}
	for context, section := range sections {
		for _, action := range Actions() {
			keys := registry.keysFor(context, action)
			for i, key := range keys {
				if key == " " {
					keys[i] = "space"
				}
			}
			if len(keys) > 0 {
				section[string(action)] = strings.Join(keys, ",")
			}
		}
	}

	return config
}
