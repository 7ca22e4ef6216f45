// Package ui provides the Bubble Tea TUI for the live news stream.
package ui

import (
	"time"

	"github.com/dhowell/newsterm/internal/news"
)

// NewsUpdated is sent by the refresh loop when the stream content
// changed. The UI never fetches on its own; it only receives.
type NewsUpdated struct {
	Result news.Result
}

// ClockTick drives the header clock and relative ages. It is
// independent of data updates: the clock moves even when the
// stream is quiet.
type ClockTick struct {
	Now time.Time
}

// RefreshRequested is sent after the user forces a refresh so the
// status line can acknowledge it before new data lands.
type RefreshRequested struct{}
