package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
)

// RenderStream renders the item list with the cursor kept visible.
func RenderStream(items []news.Item, classify func(news.Item) rank.Tier, cursor, width, height int, now time.Time) string {
	if len(items) == 0 {
		return HelpStyle.Render("No items match. Press 'esc' to clear filters.") + "\n"
	}
	if height < 1 {
		height = 1
	}
	if cursor >= len(items) {
		cursor = len(items) - 1
	}

	offset := 0
	if cursor >= height {
		offset = cursor - height + 1
	}

	var b strings.Builder
	rendered := 0
	for i := offset; i < len(items) && rendered < height; i++ {
		b.WriteString(renderItemLine(items[i], classify, i == cursor, width, now))
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

func renderItemLine(item news.Item, classify func(news.Item) rank.Tier, selected bool, width int, now time.Time) string {
	tier := rank.TierRegular
	if classify != nil {
		tier = classify(item)
	}

	var badge string
	if tier == rank.TierBreaking {
		badge = BreakingBadge.Render("BREAKING")
	}
	source := SourceBadge.Render(item.Source)
	age := MetaItem.Render(formatAge(item.Published, now))

	used := lipgloss.Width(badge) + lipgloss.Width(source) + lipgloss.Width(age) + 4
	titleWidth := width - used
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := runewidth.Truncate(item.Title, titleWidth, "…")

	var titleStyle lipgloss.Style
	switch {
	case selected:
		titleStyle = SelectedItem
	case tier == rank.TierBreaking:
		titleStyle = BreakingItem
	case tier == rank.TierPrioritySource:
		titleStyle = PriorityItem
	default:
		titleStyle = NormalItem
	}

	return fmt.Sprintf("%s%s%s %s", badge, source, titleStyle.Render(title), age)
}

func formatAge(published, now time.Time) string {
	age := now.Sub(published)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

func (a App) renderHeader() string {
	title := "NEWSTERM"
	if a.trading {
		title = "NEWSTERM · TRADING"
	}
	if cat := a.activeCategory(); cat != "" {
		title += " · " + strings.ToUpper(string(cat))
	}
	left := HeaderStyle.Render(title)
	clock := HeaderClock.Render(a.now.Format("15:04:05"))

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(clock)
	if padding < 0 {
		padding = 0
	}
	fill := HeaderStyle.Render(strings.Repeat(" ", padding))
	return left + fill + clock
}

func (a App) renderStatusBar(visible int) string {
	var left string
	switch {
	case a.awaiting:
		left = " refreshing... "
	case a.result.BreakingNewsCount > 0:
		left = fmt.Sprintf(" %d/%d items · %d sources · %d breaking ",
			visible, len(a.result.Items), a.result.SourceCount, a.result.BreakingNewsCount)
	default:
		left = fmt.Sprintf(" %d/%d items · %d sources ",
			visible, len(a.result.Items), a.result.SourceCount)
	}
	if a.result.UpdateFrequency > 0 {
		left += StatusBarText.Render(fmt.Sprintf("%.1f upd/min ", a.result.UpdateFrequency*60))
	}

	keys := []string{
		StatusBarKey.Render("j/k") + StatusBarText.Render(":nav"),
		StatusBarKey.Render("/") + StatusBarText.Render(":search"),
		StatusBarKey.Render("c") + StatusBarText.Render(":category"),
		StatusBarKey.Render("r") + StatusBarText.Render(":refresh"),
		StatusBarKey.Render("q") + StatusBarText.Render(":quit"),
	}
	keyHints := strings.Join(keys, " ")

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(keyHints)
	if padding < 0 {
		padding = 0
	}
	bar := left + strings.Repeat(" ", padding) + keyHints
	return StatusBar.Width(a.width).Render(bar)
}

// RenderFilterBar renders the search input bar.
func RenderFilterBar(filterText string, filtered, total, width int) string {
	prompt := FilterBarPrompt.Render("/")
	count := FilterBarCount.Render(fmt.Sprintf(" %d/%d", filtered, total))

	content := prompt + filterText + count
	padding := width - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}
	return FilterBar.Width(width).Render(content + strings.Repeat(" ", padding))
}
