package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/panel"
)

// Focus identifies the area receiving key presses
type Focus int

const (
	FocusInput Focus = iota
	FocusArticle
)

// String returns the keybinds context name of the focus
func (f Focus) String() string {
	if f == FocusArticle {
		return string(keybinds.ContextArticle)
	}
	return string(keybinds.ContextInput)
}

// Model represents the TUI state
type Model struct {
	// Core state. state is the panel state as of the last Update; View
	// renders it instead of reading the panel, which request commands
	// complete from their own goroutine.
	panel    *panel.Panel
	state    panel.RequestState
	keys     *keybinds.Registry
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	endpoint string
	version  string

	// Export
	exportDir string
	now       func() time.Time

	// Components
	input       textinput.Model
	spinner     spinner.Model
	articleView viewport.Model

	spinning bool

	// UI state
	width     int
	height    int
	focus     Focus
	showHelp  bool
	statusMsg string
	errorMsg  string
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case spinner.TickMsg:
		if m.state.Status() != panel.StatusLoading {
			m.spinning = false
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)

	case requestDoneMsg:
		if msg.seq != m.panel.Seq() {
			m.logger.Debug("ignoring superseded request", zap.Uint64("seq", msg.seq))
			break
		}
		m.syncState()

	case statusMsg:
		cmd = m.setStatusMessage(string(msg))

	case clearStatusMsg:
		if msg.text == m.statusMsg {
			m.statusMsg = ""
		}

	case errorMsg:
		m.statusMsg = ""
		m.errorMsg = truncate(string(msg), StatusMaxLength)

	default:
		// Cursor blink and other component messages
		if m.focus == FocusInput {
			m.input, cmd = m.input.Update(msg)
		}
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	return m.renderMain()
}

// Custom message types

// requestDoneMsg is sent when the request with sequence seq has finished
type requestDoneMsg struct {
	seq uint64
}

type clearStatusMsg struct {
	text string
}

type statusMsg string

type errorMsg string

// setStatusMessage shows msg in the footer and schedules its removal
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.errorMsg = ""
	m.statusMsg = truncate(msg, StatusMaxLength)
	text := m.statusMsg
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{text: text}
	})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
