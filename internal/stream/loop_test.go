package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dhowell/newsterm/internal/news"
)

// scriptedPipeline returns a fixed sequence of results, repeating the
// last one once the script runs out.
type scriptedPipeline struct {
	mu      sync.Mutex
	script  []news.Result
	calls   int
	panicAt int // 1-based call index that panics, 0 = never
}

func (p *scriptedPipeline) Fetch(ctx context.Context, categories []news.Category) news.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.panicAt > 0 && p.calls == p.panicAt {
		panic("pipeline exploded")
	}
	idx := p.calls - 1
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	if idx < 0 {
		return news.Result{}
	}
	return p.script[idx]
}

func (p *scriptedPipeline) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func resultWith(titles ...string) news.Result {
	items := make([]news.Item, len(titles))
	for i, title := range titles {
		items[i] = news.Item{Title: title, Source: "wire"}
	}
	return news.NewResult(items, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
}

// collector records update callbacks.
type collector struct {
	mu      sync.Mutex
	results []news.Result
}

func (c *collector) record(r news.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestLoopNotifiesOnFirstResult(t *testing.T) {
	pipeline := &scriptedPipeline{script: []news.Result{resultWith("First story of the day")}}
	var got collector

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond}, got.record)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, time.Second, func() bool { return got.count() >= 1 })
	cancel()
	loop.Wait()

	if got.count() < 1 {
		t.Fatal("no update delivered")
	}
}

func TestLoopSkipsUnchangedResults(t *testing.T) {
	same := resultWith("Story one headline", "Story two headline")
	pipeline := &scriptedPipeline{script: []news.Result{same, same, same}}
	var got collector

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond}, got.record)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, time.Second, func() bool { return pipeline.callCount() >= 4 })
	cancel()
	loop.Wait()

	if got.count() != 1 {
		t.Errorf("expected exactly 1 notification for identical cycles, got %d", got.count())
	}
}

func TestLoopNotifiesWhenTitlesChange(t *testing.T) {
	pipeline := &scriptedPipeline{script: []news.Result{
		resultWith("Story one headline"),
		resultWith("Story one headline"),
		resultWith("Completely different headline"),
	}}
	var got collector

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond}, got.record)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, time.Second, func() bool { return got.count() >= 2 })
	cancel()
	loop.Wait()
}

func TestLoopDetectsSameCountDifferentTitles(t *testing.T) {
	pipeline := &scriptedPipeline{script: []news.Result{
		resultWith("Headline alpha for the morning", "Headline beta for the morning"),
		resultWith("Headline alpha for the morning", "Headline gamma replaces beta"),
	}}
	var got collector

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond}, got.record)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, time.Second, func() bool { return got.count() >= 2 })
	cancel()
	loop.Wait()
}

func TestLoopSurvivesPanicAndRetries(t *testing.T) {
	pipeline := &scriptedPipeline{
		script:  []news.Result{resultWith("Recovered and fetched a story")},
		panicAt: 1,
	}
	var got collector

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond, Backoff: 10 * time.Millisecond}, got.record)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, 2*time.Second, func() bool { return got.count() >= 1 })
	cancel()
	loop.Wait()
}

func TestLoopStopsOnCancel(t *testing.T) {
	pipeline := &scriptedPipeline{script: []news.Result{resultWith("A story before shutdown time")}}

	loop := New(pipeline, nil, Config{Interval: 10 * time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)

	waitFor(t, time.Second, func() bool { return pipeline.callCount() >= 2 })
	cancel()
	loop.Wait()

	if loop.State() != StateStopped {
		t.Errorf("state after cancel = %v, want stopped", loop.State())
	}

	calls := pipeline.callCount()
	time.Sleep(50 * time.Millisecond)
	if pipeline.callCount() != calls {
		t.Error("loop kept fetching after cancellation")
	}
}
