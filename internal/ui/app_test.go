package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
)

var viewTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testResult(titles ...string) news.Result {
	items := make([]news.Item, len(titles))
	for i, title := range titles {
		items[i] = news.Item{
			Title:     title,
			Source:    "Test Wire",
			Published: viewTime.Add(-time.Hour),
			Category:  news.CategoryGeneral,
		}
	}
	return news.NewResult(items, viewTime)
}

func testApp() App {
	ranker := rank.New(rank.DefaultConfig())
	app := NewApp(ranker.Classify, news.Categories(), false, nil)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestShowsSpinnerBeforeFirstData(t *testing.T) {
	app := testApp()
	view := app.View()
	if !strings.Contains(view, "Fetching news") {
		t.Errorf("initial view missing fetch indicator: %q", view)
	}
}

func TestNewsUpdatedReplacesItems(t *testing.T) {
	app := testApp()
	m, _ := app.Update(NewsUpdated{Result: testResult("First headline of the stream", "Second headline of the stream")})
	app = m.(App)

	view := app.View()
	if !strings.Contains(view, "First headline of the stream") {
		t.Errorf("view missing item: %q", view)
	}
	if strings.Contains(view, "Fetching news") {
		t.Error("spinner still shown after data arrived")
	}
}

func TestCursorNavigation(t *testing.T) {
	app := testApp()
	m, _ := app.Update(NewsUpdated{Result: testResult("Headline one of the stream", "Headline two of the stream")})
	app = m.(App)

	m, _ = app.Update(key("j"))
	app = m.(App)
	if app.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", app.cursor)
	}

	m, _ = app.Update(key("j"))
	app = m.(App)
	if app.cursor != 1 {
		t.Errorf("cursor moved past last item: %d", app.cursor)
	}

	m, _ = app.Update(key("k"))
	app = m.(App)
	if app.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", app.cursor)
	}
}

func TestQuitKeys(t *testing.T) {
	app := testApp()
	_, cmd := app.Update(key("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected quit message")
	}
}

func TestSearchFilter(t *testing.T) {
	app := testApp()
	m, _ := app.Update(NewsUpdated{Result: testResult("Bitcoin crosses new threshold", "Quiet day in bond markets")})
	app = m.(App)

	m, _ = app.Update(key("/"))
	app = m.(App)
	if !app.filtering {
		t.Fatal("slash did not enter filter mode")
	}

	for _, r := range "bitcoin" {
		m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		app = m.(App)
	}

	visible := app.visibleItems()
	if len(visible) != 1 || !strings.Contains(visible[0].Title, "Bitcoin") {
		t.Errorf("filter produced %v", visible)
	}

	m, _ = app.Update(key("esc"))
	app = m.(App)
	if len(app.visibleItems()) != 2 {
		t.Error("esc did not clear the filter")
	}
}

func TestCategoryCycle(t *testing.T) {
	ranker := rank.New(rank.DefaultConfig())
	app := NewApp(ranker.Classify, []news.Category{news.CategoryGeneral, news.CategoryCrypto}, false, nil)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = m.(App)

	result := news.NewResult([]news.Item{
		{Title: "General story for everyone", Source: "Wire", Category: news.CategoryGeneral, Published: viewTime},
		{Title: "Crypto story for the degens", Source: "Wire", Category: news.CategoryCrypto, Published: viewTime},
	}, viewTime)
	m, _ = app.Update(NewsUpdated{Result: result})
	app = m.(App)

	if len(app.visibleItems()) != 2 {
		t.Fatalf("expected all items with no filter, got %d", len(app.visibleItems()))
	}

	m, _ = app.Update(key("c"))
	app = m.(App)
	visible := app.visibleItems()
	if len(visible) != 1 || visible[0].Category != news.CategoryGeneral {
		t.Errorf("first cycle should show general only, got %v", visible)
	}

	m, _ = app.Update(key("c"))
	app = m.(App)
	visible = app.visibleItems()
	if len(visible) != 1 || visible[0].Category != news.CategoryCrypto {
		t.Errorf("second cycle should show crypto only, got %v", visible)
	}

	m, _ = app.Update(key("c"))
	app = m.(App)
	if len(app.visibleItems()) != 2 {
		t.Error("third cycle should wrap back to all categories")
	}
}

func TestRefreshCallback(t *testing.T) {
	called := false
	ranker := rank.New(rank.DefaultConfig())
	app := NewApp(ranker.Classify, news.Categories(), false, func() { called = true })
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = m.(App)

	m, cmd := app.Update(key("r"))
	app = m.(App)
	if !called {
		t.Error("refresh callback not invoked")
	}
	if cmd == nil {
		t.Fatal("no command after refresh")
	}
	if _, ok := cmd().(RefreshRequested); !ok {
		t.Error("expected RefreshRequested message")
	}
}

func TestBreakingItemHighlighted(t *testing.T) {
	app := testApp()
	result := news.NewResult([]news.Item{
		{Title: "Breaking: markets halted worldwide", Source: "Wire", Category: news.CategoryFinancial, Published: viewTime},
	}, viewTime)
	m, _ := app.Update(NewsUpdated{Result: result})
	app = m.(App)

	if !strings.Contains(app.View(), "BREAKING") {
		t.Error("breaking badge missing from view")
	}
}
