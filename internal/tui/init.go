package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/panel"
)

// Options configures a TUI session
type Options struct {
	Generator panel.Generator
	Keys      *keybinds.Registry
	Logger    *zap.Logger
	Endpoint  string // shown in the header
	Version   string
	ExportDir string
}

// New creates a new TUI model. The model's requests run under ctx and are
// cancelled when the user quits.
func New(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keys == nil {
		opts.Keys = keybinds.NewDefaultRegistry()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	input := textinput.New()
	input.Placeholder = "Scrivi la tua richiesta..."
	input.Prompt = "› "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleWarning

	return &Model{
		panel:       panel.New(opts.Generator, opts.Logger),
		state:       panel.Idle{},
		keys:        opts.Keys,
		logger:      opts.Logger,
		ctx:         ctx,
		cancel:      cancel,
		endpoint:    opts.Endpoint,
		version:     opts.Version,
		exportDir:   opts.ExportDir,
		now:         time.Now,
		input:       input,
		spinner:     spin,
		articleView: viewport.New(80, 20),
		focus:       FocusInput,
	}
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.cancel()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}
