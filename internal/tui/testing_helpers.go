package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/panel"
	"github.com/studiowebux/metawrite/internal/types"
)

// generatorFunc adapts a function to panel.Generator
type generatorFunc func(ctx context.Context, query string) (*types.Article, error)

func (f generatorFunc) Generate(ctx context.Context, query string) (*types.Article, error) {
	return f(ctx, query)
}

// staticGenerator always returns article
func staticGenerator(article types.Article) panel.Generator {
	return generatorFunc(func(context.Context, string) (*types.Article, error) {
		a := article
		return &a, nil
	})
}

// CreateTestModel creates a sized Model for testing with default keybindings
func CreateTestModel(t *testing.T, gen panel.Generator) *Model {
	t.Helper()
	return CreateTestModelWithKeys(t, gen, keybinds.NewDefaultRegistry())
}

// CreateTestModelWithKeys creates a sized Model using the given registry
func CreateTestModelWithKeys(t *testing.T, gen panel.Generator, keys *keybinds.Registry) *Model {
	t.Helper()

	m := New(context.Background(), Options{
		Generator: gen,
		Keys:      keys,
		Logger:    zap.NewNop(),
		Endpoint:  "http://localhost:8000",
		Version:   "test",
		ExportDir: t.TempDir(),
	})
	m.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(m.cancel)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// typeText sends each rune as a key press
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// pressKey sends a special key and returns the resulting command
func pressKey(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

// pressRune sends a single character key and returns the resulting command
func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// drain executes cmd, including batched commands, and feeds the
// request/status messages it produces back into the model. Timers and
// spinner ticks are not followed.
func drain(m *Model, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	var msgs []tea.Msg
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			msgs = append(msgs, drain(m, c)...)
		}
		return msgs
	case requestDoneMsg, statusMsg, errorMsg:
		m.Update(msg)
	}
	return append(msgs, msg)
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertStatus checks the state the model renders
func AssertStatus(t *testing.T, m *Model, want panel.Status) {
	t.Helper()
	if got := m.state.Status(); got != want {
		t.Fatalf("status = %s, want %s", got, want)
	}
}
