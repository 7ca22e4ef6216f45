// Package fetch runs all applicable source adapters concurrently and
// collects whatever completes within an overall deadline. One slow or
// broken source never blocks or fails a cycle.
package fetch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dhowell/newsterm/internal/logging"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/sources"
)

const (
	// DefaultConcurrency bounds parallel adapter fetches.
	DefaultConcurrency = 12
	// DefaultTimeout is the per-fetch network timeout.
	DefaultTimeout = 10 * time.Second
)

// Result is the outcome of one (adapter, category) task. Failures are
// carried as data for logging and metrics, never as control flow.
type Result struct {
	Source   string
	Category news.Category
	Items    []news.Item
	Err      error
}

// Failed reports whether the task produced an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Orchestrator fans fetch tasks out over a bounded worker group and
// fans results back in under a combined deadline.
type Orchestrator struct {
	registry    *sources.Registry
	concurrency int
	timeout     time.Duration // per-fetch
	deadline    time.Duration // whole fan-in, > timeout
	perSource   int           // item limit per fetch
}

// Config controls orchestrator behavior.
type Config struct {
	Concurrency    int
	Timeout        time.Duration
	ItemsPerSource int
}

// New creates an Orchestrator over the registered adapters. The
// aggregate deadline is twice the per-fetch timeout, so a straggler
// can still land while the rest of the pool drains.
func New(registry *sources.Registry, cfg Config) *Orchestrator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ItemsPerSource <= 0 {
		cfg.ItemsPerSource = 20
	}
	return &Orchestrator{
		registry:    registry,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		deadline:    2 * cfg.Timeout,
		perSource:   cfg.ItemsPerSource,
	}
}

// task is one (adapter, category) pair to execute.
type task struct {
	source   sources.Source
	category news.Category
}

// Fetch runs one task per (adapter, category) pair and returns the
// union of everything that completed before the deadline. Tasks still
// running at the deadline are abandoned; their eventual results are
// discarded. Fetch never returns an error: a cycle where everything
// failed is an empty slice.
func (o *Orchestrator) Fetch(ctx context.Context, categories []news.Category) []news.Item {
	var tasks []task
	for _, category := range categories {
		for _, src := range o.registry.ForCategory(category) {
			tasks = append(tasks, task{source: src, category: category})
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	// Buffered so abandoned tasks can complete their send and exit
	// after the collector has gone away.
	results := make(chan Result, len(tasks))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			results <- o.run(ctx, t)
			return nil // per-task failure is data, not a group error
		})
	}
	go func() {
		g.Wait()
		close(results)
	}()

	var items []news.Item
	completed, failed := 0, 0
	for {
		select {
		case r, ok := <-results:
			if !ok {
				logging.Debug("fetch cycle complete",
					"tasks", len(tasks), "failed", failed, "items", len(items))
				return items
			}
			completed++
			if r.Failed() {
				failed++
				logging.Warn("source fetch failed",
					"source", r.Source, "category", r.Category, "error", r.Err)
				continue
			}
			items = append(items, r.Items...)
		case <-ctx.Done():
			logging.Warn("fetch deadline elapsed, returning partial results",
				"completed", completed, "tasks", len(tasks), "items", len(items))
			return items
		}
	}
}

// run executes one task with its own timeout, recovering panics so a
// misbehaving adapter reads as a failed result.
func (o *Orchestrator) run(ctx context.Context, t task) (result Result) {
	result = Result{Source: t.source.Name(), Category: t.category}
	defer func() {
		if r := recover(); r != nil {
			result.Err = &panicError{value: r}
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	items, err := t.source.Fetch(fetchCtx, t.category, o.perSource)
	result.Items = items
	result.Err = err
	return result
}

// panicError wraps a recovered panic value as an error.
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("adapter panic: %v", e.value)
}
