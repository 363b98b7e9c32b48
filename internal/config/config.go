package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultEndpoint is the base address of the article-generation service
	DefaultEndpoint = "https://metawrite.onrender.com"
)

var (
	// ConfigDir is the global configuration directory (~/.metawrite)
	ConfigDir string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// KeybindsFile is the user keybinding override file
	KeybindsFile string

	// LogFile is the default log destination for the TUI
	LogFile string
)

// Settings holds the runtime configuration.
// Timeout 0 means requests never time out.
type Settings struct {
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	ExportDir string        `yaml:"exportDir"`
	Log       LogConfig     `yaml:"log"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Initialize sets up the configuration directory and paths
// It creates ~/.metawrite/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".metawrite"))
}

// InitializeAt sets up the configuration rooted at dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	LogFile = filepath.Join(ConfigDir, "metawrite.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Defaults returns the compiled-in settings
func Defaults() *Settings {
	return &Settings{
		Endpoint:  DefaultEndpoint,
		ExportDir: ".",
		Log: LogConfig{
			Level: "info",
			File:  LogFile,
		},
	}
}

// Load builds the settings from defaults, the settings file, .env and the
// environment, in increasing priority. A missing settings file is not an error.
func Load() (*Settings, error) {
	s := Defaults()

	if SettingsFile != "" {
		if err := s.mergeFile(SettingsFile); err != nil {
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := s.applyEnv(); err != nil {
		return nil, err
	}

	s.Endpoint = strings.TrimRight(s.Endpoint, "/")
	return s, nil
}

// mergeFile overlays the YAML file at path onto s
func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return nil
}

// applyEnv overrides settings from METAWRITE_* environment variables
func (s *Settings) applyEnv() error {
	if v := os.Getenv("METAWRITE_ENDPOINT"); v != "" {
		s.Endpoint = v
	}
	if v := os.Getenv("METAWRITE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid METAWRITE_TIMEOUT %q: %w", v, err)
		}
		s.Timeout = d
	}
	if v := os.Getenv("METAWRITE_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("METAWRITE_LOG_FILE"); v != "" {
		s.Log.File = v
	}
	return nil
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
