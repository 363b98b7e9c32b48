package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/cli"
	"github.com/studiowebux/metawrite/internal/config"
	"github.com/studiowebux/metawrite/internal/executor"
	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/mock"
	"github.com/studiowebux/metawrite/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrGenerationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "metawrite",
	Short: "MetaWrite - generate articles from the terminal",
	Long: `MetaWrite sends a request to the article-generation service and shows
the generated article together with the source it was based on.

Run without arguments to start the interactive TUI.

Examples:
  metawrite                                  # Start interactive TUI
  metawrite generate energia solare          # One-shot generation
  echo "energia solare" | metawrite generate # Query from stdin
  metawrite generate -o json "auto elettriche"
  metawrite mock                             # Local stand-in service on :8000
  metawrite --endpoint http://localhost:8000 # TUI against the mock`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), settings)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [query...]",
	Short: "Generate one article and print it",
	Long: `Generate one article without the TUI.

The query is the arguments joined by spaces, or stdin when it is piped.
An empty query is sent as-is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return runGenerate(cmd.Context(), settings, args)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local stand-in for the generation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd.Context())
	},
}

var mockInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the default mock routes to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mock.SaveConfig(mock.DefaultConfig(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mock config written to %s\n", args[0])
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Write the default key bindings to the keybinds file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if _, err := os.Stat(config.KeybindsFile); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.KeybindsFile)
		}
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key bindings written to %s\n", config.KeybindsFile)
		return nil
	},
}

// Flags shared by root and generate
var (
	flagEndpoint string
	flagTimeout  time.Duration
)

// Flags for generate
var (
	flagOutput  string
	flagFilter  string
	flagSave    string
	flagCopy    bool
	flagNoColor bool
	flagVerbose bool
)

// Flags for mock
var (
	flagMockConfig string
	flagMockHost   string
	flagMockPort   int
)

var flagForce bool

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Generation service base URL")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Request timeout (0 = none)")

	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatText, "Output format (text/json/yaml/body)")
	generateCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath expression or $(command) applied to the JSON output")
	generateCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save the article as markdown (file or directory)")
	generateCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the source URL to the clipboard")
	generateCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored text output")
	generateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests to stderr")

	mockCmd.Flags().StringVarP(&flagMockConfig, "config", "c", "", "Routes file (yaml/json); defaults are used when empty")
	mockCmd.Flags().StringVar(&flagMockHost, "host", "", "Listen host (overrides config)")
	mockCmd.Flags().IntVarP(&flagMockPort, "port", "p", 0, "Listen port (overrides config)")

	keybindsCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing keybinds file")

	mockCmd.AddCommand(mockInitCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// loadSettings reads config.yaml, .env and the environment, then applies flags
func loadSettings() (*config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagEndpoint != "" {
		settings.Endpoint = flagEndpoint
	}
	if flagTimeout != 0 {
		settings.Timeout = flagTimeout
	}
	return settings, nil
}

func userAgent() string {
	return "metawrite/" + version
}

// runTUI starts the interactive TUI. Logs go to a file since the TUI owns the terminal.
func runTUI(ctx context.Context, settings *config.Settings) error {
	logCfg := settings.Log
	if logCfg.File == "" || logCfg.File == "stderr" {
		logCfg.File = config.LogFile
	}
	logger, err := config.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	client := executor.New(executor.Config{
		Endpoint:  settings.Endpoint,
		Timeout:   settings.Timeout,
		UserAgent: userAgent(),
	}, logger)

	logger.Info("starting tui", zap.String("endpoint", client.Endpoint()), zap.String("version", version))

	return tui.Run(ctx, tui.Options{
		Generator: client,
		Keys:      keys,
		Logger:    logger,
		Endpoint:  client.Endpoint(),
		Version:   version,
		ExportDir: settings.ExportDir,
	})
}

// runGenerate executes one generation in CLI mode
func runGenerate(ctx context.Context, settings *config.Settings, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCfg := config.LogConfig{Level: "warn", File: "stderr"}
	if flagVerbose {
		logCfg.Level = "debug"
	}
	logger, err := config.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	query, err := cli.ReadQuery(args, os.Stdin, cli.IsPiped(os.Stdin))
	if err != nil {
		return err
	}

	savePath := flagSave
	if savePath != "" {
		if savePath, err = config.ExpandPath(savePath); err != nil {
			return err
		}
	}

	return cli.Run(ctx, cli.RunOptions{
		Query:        query,
		Endpoint:     settings.Endpoint,
		Timeout:      settings.Timeout,
		UserAgent:    userAgent(),
		OutputFormat: flagOutput,
		Filter:       flagFilter,
		SavePath:     savePath,
		Copy:         flagCopy,
		Color:        !flagNoColor && !cli.IsPiped(os.Stdout),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Logger:       logger,
	})
}

// runMock serves the stand-in generation service until interrupted
func runMock(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(config.LogConfig{Level: "info", File: "stderr"})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := mock.DefaultConfig()
	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if flagMockConfig != "" {
		if cfg, err = mock.LoadConfig(flagMockConfig); err != nil {
			return err
		}
		workdir = filepath.Dir(flagMockConfig)
	}
	if flagMockHost != "" {
		cfg.Host = flagMockHost
	}
	if flagMockPort != 0 {
		cfg.Port = flagMockPort
	}

	server := mock.NewServer(cfg, workdir, logger)
	fmt.Fprintf(os.Stderr, "Mock generation service listening on %s\n", server.GetAddress())
	fmt.Fprintf(os.Stderr, "Try: metawrite --endpoint %s\n", server.GetAddress())
	fmt.Fprintf(os.Stderr, "Request log: %s%s\n", server.GetAddress(), mock.LogsPath)

	return server.Run(ctx)
}
