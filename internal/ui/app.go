package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
)

// App is the root Bubble Tea model. It holds no pipeline handles;
// the refresh loop pushes NewsUpdated messages in and the only thing
// flowing out is the optional force-refresh callback.
type App struct {
	classify       func(news.Item) rank.Tier
	requestRefresh func()

	result  news.Result
	hasData bool

	cursor   int
	width    int
	height   int
	ready    bool
	now      time.Time
	trading  bool
	spinner  spinner.Model
	awaiting bool

	filtering  bool
	filterText string

	categoryIdx int // 0 = all, 1.. = index into categories+1
	categories  []news.Category
}

// NewApp builds the stream UI. classify tells the renderer which tier
// an item belongs to; requestRefresh may be nil.
func NewApp(classify func(news.Item) rank.Tier, categories []news.Category, trading bool, requestRefresh func()) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = MetaItem
	return App{
		classify:       classify,
		requestRefresh: requestRefresh,
		categories:     categories,
		trading:        trading,
		now:            time.Now(),
		spinner:        sp,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ClockTick{Now: t}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case NewsUpdated:
		a.result = msg.Result
		a.hasData = true
		a.awaiting = false
		if a.cursor >= len(a.visibleItems()) && a.cursor > 0 {
			a.cursor = len(a.visibleItems()) - 1
			if a.cursor < 0 {
				a.cursor = 0
			}
		}
		return a, nil

	case ClockTick:
		a.now = msg.Now
		return a, clockTick()

	case RefreshRequested:
		a.awaiting = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		switch msg.String() {
		case "esc":
			a.filtering = false
			a.filterText = ""
			a.cursor = 0
			return a, nil
		case "enter":
			a.filtering = false
			return a, nil
		case "backspace":
			if len(a.filterText) > 0 {
				runes := []rune(a.filterText)
				a.filterText = string(runes[:len(runes)-1])
			}
			return a, nil
		default:
			if msg.Type == tea.KeyRunes {
				a.filterText += string(msg.Runes)
				a.cursor = 0
			}
			return a, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < len(a.visibleItems())-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if n := len(a.visibleItems()); n > 0 {
			a.cursor = n - 1
		}
		return a, nil

	case "/":
		a.filtering = true
		a.filterText = ""
		a.cursor = 0
		return a, nil

	case "esc":
		a.filterText = ""
		a.categoryIdx = 0
		a.cursor = 0
		return a, nil

	case "c":
		a.categoryIdx = (a.categoryIdx + 1) % (len(a.categories) + 1)
		a.cursor = 0
		return a, nil

	case "r":
		if a.requestRefresh != nil {
			a.requestRefresh()
			return a, func() tea.Msg { return RefreshRequested{} }
		}
		return a, nil
	}

	return a, nil
}

// activeCategory returns the category filter, or "" for all.
func (a App) activeCategory() news.Category {
	if a.categoryIdx == 0 || a.categoryIdx > len(a.categories) {
		return ""
	}
	return a.categories[a.categoryIdx-1]
}

// visibleItems applies the category and text filters.
func (a App) visibleItems() []news.Item {
	items := a.result.Items
	if cat := a.activeCategory(); cat != "" {
		var out []news.Item
		for _, it := range items {
			if it.Category == cat {
				out = append(out, it)
			}
		}
		items = out
	}
	if a.filterText != "" {
		q := strings.ToLower(a.filterText)
		var out []news.Item
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Title), q) ||
				strings.Contains(strings.ToLower(it.Description), q) {
				out = append(out, it)
			}
		}
		items = out
	}
	return items
}

func (a App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if !a.hasData {
		b.WriteString(HelpStyle.Render(a.spinner.View() + " Fetching news..."))
		return b.String()
	}

	items := a.visibleItems()
	bodyHeight := a.height - 2 // header + status bar
	if a.filtering || a.filterText != "" {
		bodyHeight--
	}
	b.WriteString(RenderStream(items, a.classify, a.cursor, a.width, bodyHeight, a.now))

	if a.filtering || a.filterText != "" {
		b.WriteString(RenderFilterBar(a.filterText, len(items), len(a.result.Items), a.width))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar(len(items)))
	return b.String()
}
