package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorBreaking  = lipgloss.Color("196") // Red
	colorPriority  = lipgloss.Color("214") // Orange
)

// HeaderStyle for the top title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// HeaderClock for the clock on the right of the header.
var HeaderClock = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SelectedItem style for the currently highlighted item.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for regular items.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// BreakingItem style for breaking-tier items.
var BreakingItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorBreaking).
	Padding(0, 1)

// PriorityItem style for priority-source items.
var PriorityItem = lipgloss.NewStyle().
	Foreground(colorPriority).
	Padding(0, 1)

// BreakingBadge rendered before breaking titles.
var BreakingBadge = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorBreaking).
	Padding(0, 1).
	MarginRight(1)

// SourceBadge style for source name badges.
var SourceBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// CategoryBadge style for category labels.
var CategoryBadge = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("235")).
	Padding(0, 1).
	MarginRight(1)

// MetaItem for ages and other dim metadata.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FilterBar style for the search input bar.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarPrompt style for the "/" prompt.
var FilterBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FilterBarCount style for the filtered count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)
