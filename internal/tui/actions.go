package tui

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/export"
	"github.com/studiowebux/metawrite/internal/panel"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// submit starts a request for the current query. The state becomes Loading
// before this returns; the network call runs in the returned command.
func (m *Model) submit() tea.Cmd {
	ticket := m.panel.Begin(m.ctx)
	m.logger.Debug("request started", zap.Uint64("seq", ticket.Seq))

	m.errorMsg = ""
	m.showHelp = false
	m.syncState()

	p := m.panel
	run := func() tea.Msg {
		p.Run(ticket)
		return requestDoneMsg{seq: ticket.Seq}
	}

	return tea.Batch(run, m.startSpinner())
}

// startSpinner starts the tick loop unless it is already running
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// syncState takes a snapshot of the panel state and refreshes the article
// viewport from it
func (m *Model) syncState() {
	m.state = m.panel.State()
	if s, ok := m.state.(panel.Succeeded); ok {
		m.articleView.SetContent(wrapBody(s.Article.Body, m.articleView.Width))
		m.articleView.GotoTop()
		return
	}
	m.articleView.SetContent("")
}

// currentArticle returns the displayed article, if any
func (m *Model) currentArticle() (panel.Succeeded, bool) {
	s, ok := m.state.(panel.Succeeded)
	return s, ok
}

// copyURL copies the source URL of the displayed article
func (m *Model) copyURL() tea.Cmd {
	s, ok := m.currentArticle()
	if !ok {
		return func() tea.Msg { return errorMsg("No article to copy from") }
	}
	url := s.Article.URL
	if url == "" {
		return func() tea.Msg { return errorMsg("The article has no source URL") }
	}

	return func() tea.Msg {
		if err := copyToClipboard(url); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg("Source URL copied to clipboard")
	}
}

// saveArticle exports the displayed article as markdown into exportDir
func (m *Model) saveArticle() tea.Cmd {
	s, ok := m.currentArticle()
	if !ok {
		return func() tea.Msg { return errorMsg("No article to save") }
	}

	doc := export.Document{
		Query:       s.Query,
		Article:     s.Article,
		GeneratedAt: m.now(),
	}
	dir := m.exportDir
	logger := m.logger

	return func() tea.Msg {
		path, err := export.Save(doc, dir)
		if err != nil {
			logger.Warn("article export failed", zap.Error(err))
			return errorMsg(fmt.Sprintf("Failed to save article: %v", err))
		}
		logger.Info("article exported", zap.String("path", path))
		return statusMsg(fmt.Sprintf("Article saved to %s", filepath.Base(path)))
	}
}

// switchFocus toggles between the query input and the article
func (m *Model) switchFocus() tea.Cmd {
	if m.focus == FocusInput {
		m.focus = FocusArticle
		m.input.Blur()
		return nil
	}
	m.focus = FocusInput
	m.showHelp = false
	return m.input.Focus()
}

// quit cancels any in-flight request and stops the program
func (m *Model) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}
