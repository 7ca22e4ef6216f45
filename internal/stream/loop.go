// Package stream runs the refresh loop: a single long-lived task that
// drives the aggregation pipeline on a fixed cadence and notifies a
// consumer only when the content actually changed. The display's own
// redraw cadence is its business; this loop only decides when there is
// something new to draw.
package stream

import (
	"context"
	"sync"
	"time"

	"github.com/dhowell/newsterm/internal/logging"
	"github.com/dhowell/newsterm/internal/news"
)

// State is the loop's observable phase.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateUpdated
	StateUnchanged
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateUpdated:
		return "updated"
	case StateUnchanged:
		return "unchanged"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pipeline is the aggregation capability the loop drives.
// Implementations never fail; a bad cycle is an empty Result.
type Pipeline interface {
	Fetch(ctx context.Context, categories []news.Category) news.Result
}

// UpdateFunc receives each changed Result. It must return quickly;
// the next cycle proceeds on schedule regardless.
type UpdateFunc func(news.Result)

// Loop drives the pipeline. Cycles never overlap: the next tick is
// consumed only after the previous cycle finishes.
type Loop struct {
	pipeline   Pipeline
	categories []news.Category
	interval   time.Duration
	backoff    time.Duration
	onUpdate   UpdateFunc

	wg sync.WaitGroup

	mu      sync.Mutex
	state   State
	last    news.Result
	hasLast bool
}

// Config controls the refresh loop.
type Config struct {
	// Interval between cycles. Trading mode runs this down to 500ms.
	Interval time.Duration
	// Backoff after a cycle-level failure before retrying.
	Backoff time.Duration
}

// New creates a Loop. onUpdate may be nil for callers that poll
// the pipeline themselves.
func New(pipeline Pipeline, categories []news.Category, cfg Config, onUpdate UpdateFunc) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	return &Loop{
		pipeline:   pipeline,
		categories: categories,
		interval:   cfg.Interval,
		backoff:    cfg.Backoff,
		onUpdate:   onUpdate,
	}
}

// State returns the loop's current phase.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start begins the loop in a background goroutine. Context
// cancellation is the only stop mechanism. The first cycle runs
// immediately so the display is not empty for a full interval.
func (l *Loop) Start(ctx context.Context) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.setState(StateStopped)

		l.cycle(ctx)

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logging.Info("refresh loop stopping")
				return
			case <-ticker.C:
				l.cycle(ctx)
			}
		}
	}()
}

// Wait blocks until the loop goroutine exits. Call after cancelling
// the context passed to Start.
func (l *Loop) Wait() {
	l.wg.Wait()
}

// cycle runs one fetch and dispatches the result. Anything escaping
// the pipeline is caught here: log, back off, keep going. Only
// cancellation ends the loop.
func (l *Loop) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("refresh cycle panicked", "panic", r)
			l.setState(StateFailed)
			l.sleepBackoff(ctx)
			l.setState(StateIdle)
		}
	}()

	l.setState(StateFetching)
	result := l.pipeline.Fetch(ctx, l.categories)

	if ctx.Err() != nil {
		return
	}

	l.mu.Lock()
	changed := !l.hasLast || !result.Equal(l.last)
	l.last = result
	l.hasLast = true
	if changed {
		l.state = StateUpdated
	} else {
		l.state = StateUnchanged
	}
	l.mu.Unlock()

	if changed && l.onUpdate != nil {
		l.onUpdate(result)
	}
	l.setState(StateIdle)
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// sleepBackoff waits out the failure backoff, or less if cancelled.
func (l *Loop) sleepBackoff(ctx context.Context) {
	timer := time.NewTimer(l.backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
