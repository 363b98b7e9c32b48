package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/metawrite/internal/executor"
	"github.com/studiowebux/metawrite/internal/keybinds"
	"github.com/studiowebux/metawrite/internal/panel"
	"github.com/studiowebux/metawrite/internal/types"
)

var testArticle = types.Article{
	URL:  "https://example.com/fonte",
	Body: "Titolo\n\n  paragrafo rientrato",
}

func TestNew_StartsIdle(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	AssertStatus(t, m, panel.StatusIdle)
	AssertModelField(t, "focus", m.focus, FocusInput)
	AssertModelField(t, "input focused", m.input.Focused(), true)

	view := m.View()
	if !strings.Contains(view, "premi enter per generare") {
		t.Errorf("idle hint missing from view:\n%s", view)
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	m := New(context.Background(), Options{Generator: staticGenerator(testArticle)})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestTyping_UpdatesQueryPerKeystroke(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	typed := ""
	for _, r := range "qj k?" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		typed += string(r)
		AssertModelField(t, "query", m.panel.Query(), typed)
	}

	pressKey(m, tea.KeyBackspace)
	AssertModelField(t, "query after backspace", m.panel.Query(), "qj k")
	AssertStatus(t, m, panel.StatusIdle)
}

func TestSubmit_LoadingIsSynchronous(t *testing.T) {
	var calls int
	gen := generatorFunc(func(ctx context.Context, q string) (*types.Article, error) {
		calls++
		return &testArticle, nil
	})
	m := CreateTestModel(t, gen)
	typeText(m, "energia")

	cmd := pressKey(m, tea.KeyEnter)

	AssertStatus(t, m, panel.StatusLoading)
	AssertModelField(t, "generator calls before cmd", calls, 0)
	if !strings.Contains(m.View(), loadingText) {
		t.Errorf("loading text missing:\n%s", m.View())
	}

	drain(m, cmd)
	AssertModelField(t, "generator calls", calls, 1)
	AssertStatus(t, m, panel.StatusSucceeded)
}

func TestSubmit_SuccessRendersArticle(t *testing.T) {
	var gotQuery string
	gen := generatorFunc(func(ctx context.Context, q string) (*types.Article, error) {
		gotQuery = q
		return &testArticle, nil
	})
	m := CreateTestModel(t, gen)
	typeText(m, "  spazi  ")

	drain(m, pressKey(m, tea.KeyEnter))

	AssertModelField(t, "query sent", gotQuery, "  spazi  ")
	view := m.View()
	for _, want := range []string{articleTitle, sourceLabel, "https://example.com/fonte", "Titolo", "paragrafo rientrato"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	AssertModelField(t, "focus stays on input", m.focus, FocusInput)
}

func TestSubmit_EmptyQueryIsSent(t *testing.T) {
	called := false
	gen := generatorFunc(func(ctx context.Context, q string) (*types.Article, error) {
		called = true
		if q != "" {
			t.Errorf("query = %q, want empty", q)
		}
		return &testArticle, nil
	})
	m := CreateTestModel(t, gen)

	drain(m, pressKey(m, tea.KeyEnter))
	if !called {
		t.Error("empty query should still be submitted")
	}
}

func TestSubmit_FailureRendersMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"detail", &executor.APIError{StatusCode: 500, Detail: "Quota esaurita"}, "Errore: Quota esaurita"},
		{"no detail", &executor.APIError{StatusCode: 502}, "Errore: " + panel.GenericErrorMessage},
		{"transport", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), hintRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := generatorFunc(func(context.Context, string) (*types.Article, error) {
				return nil, tt.err
			})
			m := CreateTestModel(t, gen)

			drain(m, pressKey(m, tea.KeyEnter))

			AssertStatus(t, m, panel.StatusFailed)
			if view := m.View(); !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestSubmit_NewRequestClearsPreviousArticle(t *testing.T) {
	fail := false
	gen := generatorFunc(func(context.Context, string) (*types.Article, error) {
		if fail {
			return nil, &executor.APIError{StatusCode: 500, Detail: "errore"}
		}
		return &testArticle, nil
	})
	m := CreateTestModel(t, gen)

	drain(m, pressKey(m, tea.KeyEnter))
	AssertStatus(t, m, panel.StatusSucceeded)

	fail = true
	cmd := pressKey(m, tea.KeyEnter)
	if strings.Contains(m.View(), "Titolo") {
		t.Error("previous article should be cleared while loading")
	}

	drain(m, cmd)
	view := m.View()
	if strings.Contains(view, articleTitle) || !strings.Contains(view, "Errore: errore") {
		t.Errorf("unexpected view after failure:\n%s", view)
	}
}

func TestSubmit_SupersededResponseIgnored(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, q string) (*types.Article, error) {
		if q == "primo" {
			// superseded request: its context has been cancelled
			<-ctx.Done()
			return &types.Article{Body: "vecchio"}, nil
		}
		return &types.Article{Body: "nuovo"}, nil
	})
	m := CreateTestModel(t, gen)

	typeText(m, "primo")
	first := pressKey(m, tea.KeyEnter)

	typeText(m, " bis")
	second := pressKey(m, tea.KeyEnter)

	drain(m, second)
	drain(m, first)

	s, ok := m.panel.State().(panel.Succeeded)
	if !ok || s.Article.Body != "nuovo" {
		t.Fatalf("state = %#v, want the newer article", m.panel.State())
	}
	if strings.Contains(m.View(), "vecchio") {
		t.Error("stale article rendered")
	}
}

func TestView_WaitsForRequestDone(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))
	cmd := pressKey(m, tea.KeyEnter)

	// Run the request without delivering its message to the model
	var done tea.Msg
	for _, c := range cmd().(tea.BatchMsg) {
		if msg, ok := c().(requestDoneMsg); ok {
			done = msg
		}
	}
	if m.panel.State().Status() != panel.StatusSucceeded {
		t.Fatalf("panel state = %s", m.panel.State().Status())
	}

	view := m.View()
	if strings.Contains(view, articleTitle) || !strings.Contains(view, loadingText) {
		t.Errorf("view should stay in loading until the message arrives:\n%s", view)
	}

	m.Update(done)
	view = m.View()
	if !strings.Contains(view, articleTitle) || !strings.Contains(view, "paragrafo rientrato") {
		t.Errorf("article not rendered after request done:\n%s", view)
	}
}

func TestSubmit_WhileLoadingIsAllowed(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	pressKey(m, tea.KeyEnter)
	typeText(m, "ancora")
	AssertModelField(t, "typing while loading", m.panel.Query(), "ancora")

	cmd := pressKey(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("submit while loading should start a new request")
	}
	AssertModelField(t, "seq", m.panel.Seq(), uint64(2))
}

func TestSpinner_StopsWhenNotLoading(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	cmd := pressKey(m, tea.KeyEnter)
	AssertModelField(t, "spinning", m.spinning, true)

	// Tick while loading keeps the loop alive
	tick := m.spinner.Tick()
	if _, next := m.Update(tick); next == nil {
		t.Error("spinner should keep ticking while loading")
	}

	drain(m, cmd)
	if _, next := m.Update(m.spinner.Tick()); next != nil {
		t.Error("spinner should stop after completion")
	}
	AssertModelField(t, "spinning", m.spinning, false)
}

func TestArticleFocus_Scrolling(t *testing.T) {
	long := strings.Repeat("riga\n", 200)
	m := CreateTestModel(t, staticGenerator(types.Article{URL: "u", Body: long}))
	drain(m, pressKey(m, tea.KeyEnter))

	pressKey(m, tea.KeyTab)
	AssertModelField(t, "focus", m.focus, FocusArticle)

	pressRune(m, 'j')
	AssertModelField(t, "offset after j", m.articleView.YOffset, 1)
	pressRune(m, 'k')
	AssertModelField(t, "offset after k", m.articleView.YOffset, 0)

	pressRune(m, 'G')
	if !m.articleView.AtBottom() {
		t.Error("G should scroll to bottom")
	}
	pressRune(m, 'g')
	AssertModelField(t, "offset after g", m.articleView.YOffset, 0)

	pressKey(m, tea.KeyPgDown)
	if m.articleView.YOffset == 0 {
		t.Error("pgdown should scroll")
	}

	// Letters do not reach the input while the article has focus
	AssertModelField(t, "query", m.panel.Query(), "")

	pressKey(m, tea.KeyTab)
	AssertModelField(t, "focus back", m.focus, FocusInput)
	typeText(m, "jk")
	AssertModelField(t, "query typed", m.panel.Query(), "jk")
}

func TestCopyURL(t *testing.T) {
	var mu sync.Mutex
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		mu.Lock()
		defer mu.Unlock()
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	m := CreateTestModel(t, staticGenerator(testArticle))

	// Nothing to copy yet
	drain(m, pressKey(m, tea.KeyCtrlY))
	if m.errorMsg == "" {
		t.Error("expected an error message without an article")
	}

	drain(m, pressKey(m, tea.KeyEnter))
	pressKey(m, tea.KeyTab)
	drain(m, pressRune(m, 'y'))

	mu.Lock()
	defer mu.Unlock()
	AssertModelField(t, "copied", copied, testArticle.URL)
	AssertModelField(t, "status", m.statusMsg, "Source URL copied to clipboard")
	AssertModelField(t, "error", m.errorMsg, "")
}

func TestCopyURL_ClipboardFailure(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	defer func() { copyToClipboard = orig }()

	m := CreateTestModel(t, staticGenerator(testArticle))
	drain(m, pressKey(m, tea.KeyEnter))
	drain(m, pressKey(m, tea.KeyCtrlY))

	if !strings.Contains(m.errorMsg, "no clipboard") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestSaveArticle(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))
	typeText(m, "energia solare")
	drain(m, pressKey(m, tea.KeyEnter))

	drain(m, pressKey(m, tea.KeyCtrlS))

	want := filepath.Join(m.exportDir, "metawrite_energia-solare_20261018_090000.md")
	AssertModelField(t, "status", m.statusMsg, "Article saved to "+filepath.Base(want))

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), "  paragrafo rientrato") {
		t.Errorf("export body missing:\n%s", data)
	}
}

func TestSaveArticle_UsesSubmittedQuery(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))
	typeText(m, "energia")
	drain(m, pressKey(m, tea.KeyEnter))

	// Editing the input afterwards does not change what the article was for
	typeText(m, " nucleare")
	drain(m, pressKey(m, tea.KeyCtrlS))

	AssertModelField(t, "status", m.statusMsg, "Article saved to metawrite_energia_20261018_090000.md")

	data, err := os.ReadFile(filepath.Join(m.exportDir, "metawrite_energia_20261018_090000.md"))
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), "query: energia\n") {
		t.Errorf("front matter should carry the submitted query:\n%s", data)
	}
}

func TestSaveArticle_LongDirectoryKeepsFilename(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))
	m.exportDir = filepath.Join(m.exportDir, strings.Repeat("cartella-molto-lunga", 6))
	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		t.Fatal(err)
	}
	typeText(m, "energia solare")
	drain(m, pressKey(m, tea.KeyEnter))

	drain(m, pressKey(m, tea.KeyCtrlS))

	AssertModelField(t, "status", m.statusMsg, "Article saved to metawrite_energia-solare_20261018_090000.md")
}

func TestSaveArticle_NothingToSave(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))
	drain(m, pressKey(m, tea.KeyCtrlS))
	AssertModelField(t, "error", m.errorMsg, "No article to save")
}

func TestHelp_ToggleAndQuit(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	pressKey(m, tea.KeyTab)
	pressRune(m, '?')
	AssertModelField(t, "showHelp", m.showHelp, true)
	if !strings.Contains(m.View(), "scroll_down") {
		t.Errorf("help should list actions:\n%s", m.View())
	}

	// esc closes help first
	if cmd := pressKey(m, tea.KeyEsc); cmd != nil {
		t.Error("esc should only close help")
	}
	AssertModelField(t, "showHelp", m.showHelp, false)

	cmd := pressKey(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestQuit_CancelsInFlightRequest(t *testing.T) {
	m := CreateTestModel(t, staticGenerator(testArticle))

	pressKey(m, tea.KeyEnter)
	cmd := pressKey(m, tea.KeyCtrlC)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel the request context")
	}
}

func TestCustomKeybinds(t *testing.T) {
	keys := keybinds.NewDefaultRegistry()
	if err := keybinds.ApplyConfig(keys, &keybinds.Config{Input: map[string]string{"submit": "ctrl+g"}}); err != nil {
		t.Fatal(err)
	}
	m := CreateTestModelWithKeys(t, staticGenerator(testArticle), keys)

	pressKey(m, tea.KeyEnter)
	AssertStatus(t, m, panel.StatusIdle)

	drain(m, pressKey(m, tea.KeyCtrlG))
	AssertStatus(t, m, panel.StatusSucceeded)

	if !strings.Contains(m.View(), "ctrl+g: send") {
		t.Errorf("status bar should show remapped key:\n%s", m.View())
	}
}

func TestWindowResize_RewrapsArticle(t *testing.T) {
	body := strings.Repeat("parola ", 40)
	m := CreateTestModel(t, staticGenerator(types.Article{Body: body}))
	drain(m, pressKey(m, tea.KeyEnter))

	wide := m.articleView.TotalLineCount()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	narrow := m.articleView.TotalLineCount()

	if narrow <= wide {
		t.Errorf("narrower window should produce more lines: wide=%d narrow=%d", wide, narrow)
	}
	AssertModelField(t, "viewport width", m.articleView.Width, 40-ViewportBorderWidth-ViewportPaddingHorizontal)
}
