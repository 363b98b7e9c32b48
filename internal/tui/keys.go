package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/metawrite/internal/keybinds"
)

// keyContext returns the keybinds context for the focused area
func (m *Model) keyContext() keybinds.Context {
	if m.focus == FocusArticle {
		return keybinds.ContextArticle
	}
	return keybinds.ContextInput
}

// handleKeyPress routes a key to its bound action, or to the text input
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Match(m.keyContext(), msg.String())
	if !ok {
		if m.focus == FocusInput {
			return m.updateInput(msg)
		}
		return nil
	}

	// Help overlay closes on quit/help instead of quitting
	if m.showHelp && (action == keybinds.ActionQuit || action == keybinds.ActionToggleHelp) {
		m.showHelp = false
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce, keybinds.ActionQuit:
		return m.quit()

	case keybinds.ActionSubmit:
		return m.submit()

	case keybinds.ActionSwitchFocus:
		return m.switchFocus()

	case keybinds.ActionScrollUp:
		m.articleView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.articleView.LineDown(1)
	case keybinds.ActionPageUp:
		m.articleView.ViewUp()
	case keybinds.ActionPageDown:
		m.articleView.ViewDown()
	case keybinds.ActionGoToTop:
		m.articleView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.articleView.GotoBottom()

	case keybinds.ActionCopyURL:
		return m.copyURL()

	case keybinds.ActionSaveArticle:
		return m.saveArticle()

	case keybinds.ActionToggleHelp:
		m.showHelp = !m.showHelp
	}

	return nil
}

// updateInput forwards a key to the text input and mirrors its value into
// the panel query
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.panel.Query() {
		m.panel.SetQuery(m.input.Value())
	}
	return cmd
}
