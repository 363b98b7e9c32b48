package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/panel"
)

// Color palette - adaptive colors for light/dark terminal backgrounds
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLink = lipgloss.NewStyle().
			Underline(true).
			Foreground(colorBlue)
)

const (
	loadingText   = "Generazione in corso..."
	articleTitle  = "Articolo Generato"
	sourceLabel   = "Fonte utilizzata:"
	failurePrefix = "Errore: "
)

// renderMain renders the whole screen: header, input, result box, status bar
func (m *Model) renderMain() string {
	header := styleTitle.Render("MetaWrite") + " " + styleSubtle.Render(m.endpoint)

	inputBorder := colorGray
	if m.focus == FocusInput {
		inputBorder = colorCyan
	}
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Width(m.width - ViewportBorderWidth).
		Render(m.input.View())

	var result string
	if m.showHelp {
		result = m.renderHelp()
	} else {
		submitKey := m.keys.GetBindingString(keybinds.ContextInput, keybinds.ActionSubmit)
		result = renderResult(m.state, m.spinner.View(), m.articleView.View(), submitKey)
	}

	resultBorder := colorGray
	if m.focus == FocusArticle {
		resultBorder = colorCyan
	}
	resultBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultBorder).
		Padding(0, ViewportPaddingHorizontal/2).
		Width(m.width - ViewportBorderWidth).
		Height(m.resultHeight()).
		Render(result)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		inputBox,
		resultBox,
		m.renderStatusBar(),
	)
}

// renderResult renders the result area for a request state.
// articleBody is the viewport output and is only used for Succeeded.
func renderResult(state panel.RequestState, spinnerView, articleBody, submitKey string) string {
	switch s := state.(type) {
	case panel.Loading:
		return spinnerView + " " + styleWarning.Render(loadingText)

	case panel.Failed:
		out := styleError.Render(failurePrefix + s.Message)
		if hint := failureHint(s.Cause); hint != "" {
			out += "\n" + styleSubtle.Render(hint)
		}
		return out

	case panel.Succeeded:
		var sb strings.Builder
		sb.WriteString(styleSuccess.Render(articleTitle))
		sb.WriteString("\n")
		sb.WriteString(styleSubtle.Render(sourceLabel))
		if s.Article.URL != "" {
			sb.WriteString(" ")
			sb.WriteString(hyperlink(s.Article.URL, styleLink.Render(s.Article.URL)))
		}
		sb.WriteString("\n\n")
		sb.WriteString(articleBody)
		return sb.String()

	default:
		return styleSubtle.Render(fmt.Sprintf("Scrivi una richiesta e premi %s per generare un articolo", submitKey))
	}
}

// hyperlink wraps text in an OSC 8 terminal hyperlink to url.
// Terminals without OSC 8 support show text only.
func hyperlink(url, text string) string {
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// wrapBody soft-wraps the article to width, keeping its own line breaks
// and indentation
func wrapBody(body string, width int) string {
	if width < MinContentWidth {
		width = MinContentWidth
	}
	return ansi.Wrap(body, width, "")
}

// renderHelp renders the key bindings of the current focus
func (m *Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Keys"))
	sb.WriteString("\n\n")

	var (
		action keybinds.Action
		keys   []string
	)
	flush := func() {
		if len(keys) > 0 {
			sb.WriteString(fmt.Sprintf("  %-18s %s\n", strings.Join(keys, "/"), styleSubtle.Render(string(action))))
		}
	}
	for _, b := range m.keys.ListBindings(m.keyContext()) {
		if b.Action != action {
			flush()
			action, keys = b.Action, nil
		}
		key := b.Key
		if key == " " {
			key = "space"
		}
		keys = append(keys, key)
	}
	flush()

	return sb.String()
}

// renderStatusBar renders the footer: error, status or key hints
func (m *Model) renderStatusBar() string {
	switch {
	case m.errorMsg != "":
		return styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		return styleSuccess.Render(m.statusMsg)
	}

	context := m.keyContext()
	hint := fmt.Sprintf("%s: send • %s: focus • %s: copy URL • %s: save • %s: quit",
		m.keys.GetBindingString(context, keybinds.ActionSubmit),
		m.keys.GetBindingString(context, keybinds.ActionSwitchFocus),
		m.keys.GetBindingString(context, keybinds.ActionCopyURL),
		m.keys.GetBindingString(context, keybinds.ActionSaveArticle),
		m.keys.GetBindingString(context, keybinds.ActionQuit),
	)
	if m.focus == FocusArticle {
		hint += fmt.Sprintf(" • %s: help", m.keys.GetBindingString(context, keybinds.ActionToggleHelp))
	}
	if m.version != "" {
		hint += " • v" + m.version
	}
	return styleSubtle.Render(truncate(hint, max(m.width, MinContentWidth)))
}

// resultHeight is the inner height of the result box
func (m *Model) resultHeight() int {
	h := m.height - HeaderLines - InputBoxLines - StatusBarLines - ViewportBorderWidth
	if h < MinViewportHeight+ResultHeaderLines {
		h = MinViewportHeight + ResultHeaderLines
	}
	return h
}

// updateViewport resizes the article viewport and input after a resize
func (m *Model) updateViewport() {
	width := m.width - ViewportBorderWidth - ViewportPaddingHorizontal
	if width < MinContentWidth {
		width = MinContentWidth
	}
	m.articleView.Width = width
	m.articleView.Height = m.resultHeight() - ResultHeaderLines

	// border (2) + prompt + one spare cell for the cursor
	m.input.Width = width - lipgloss.Width(m.input.Prompt) - 1

	if s, ok := m.currentArticle(); ok {
		offset := m.articleView.YOffset
		m.articleView.SetContent(wrapBody(s.Article.Body, width))
		m.articleView.SetYOffset(offset)
	}
}
