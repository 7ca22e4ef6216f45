// Package aggregate wires the cache, orchestrator and ranker into one
// pipeline. The Aggregator is explicitly constructed and injected --
// no package-level instances, the composition root owns it.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowell/newsterm/internal/cache"
	"github.com/dhowell/newsterm/internal/logging"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
)

// Fetcher is the orchestrator capability the aggregator depends on.
type Fetcher interface {
	Fetch(ctx context.Context, categories []news.Category) []news.Item
}

// Aggregator produces one ranked, deduplicated Result per cycle,
// serving cached or stale data when the fetch throttle blocks.
type Aggregator struct {
	fetcher Fetcher
	cache   *cache.Cache
	ranker  *rank.Ranker
	maxAge  time.Duration // 0 = no age cutoff

	mu          sync.Mutex
	current     []news.Item // last cycle's ranked items
	cycleCount  int
	startedAt   time.Time
	lastUpdated time.Time
}

// New creates an Aggregator.
func New(fetcher Fetcher, c *cache.Cache, ranker *rank.Ranker) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		cache:     c,
		ranker:    ranker,
		startedAt: time.Now(),
	}
}

// SetMaxAge installs an age cutoff: fetched items published before
// now-d are dropped before ranking. Call before the first Fetch.
func (a *Aggregator) SetMaxAge(d time.Duration) {
	a.maxAge = d
}

// Fetch runs one aggregation cycle for the category set.
//
// Throttle blocked: serve the cached entry, stale or not. Throttle
// open but TTL still valid: serve the cached entry without an
// upstream call. Otherwise fan out, rank, cache, and return.
// Fetch never fails; a cycle with nothing to show is an empty Result.
func (a *Aggregator) Fetch(ctx context.Context, categories []news.Category) news.Result {
	key := cache.Key(categories)

	if !a.cache.ShouldFetch(key) {
		if items, ok := a.cache.Stale(key); ok {
			logging.Debug("serving cached items (throttled)", "key", key, "items", len(items))
			return a.buildResult(items)
		}
		// Throttled with nothing cached: an empty result beats
		// violating the upstream call budget.
		return a.buildResult(nil)
	}

	if items, ok := a.cache.Get(key); ok {
		logging.Debug("serving cached items (fresh)", "key", key, "items", len(items))
		return a.buildResult(items)
	}

	raw := a.fetcher.Fetch(ctx, categories)
	if a.maxAge > 0 {
		raw = rank.Recent(raw, time.Now().Add(-a.maxAge))
	}
	ranked := a.ranker.Rank(raw)
	a.cache.Set(key, ranked)

	a.mu.Lock()
	a.current = ranked
	a.cycleCount++
	a.lastUpdated = time.Now()
	a.mu.Unlock()

	logging.Info("aggregation cycle complete",
		"key", key, "raw", len(raw), "ranked", len(ranked))
	return a.buildResult(ranked)
}

// buildResult assembles the Result with streaming metrics.
func (a *Aggregator) buildResult(items []news.Item) news.Result {
	a.mu.Lock()
	cycles := a.cycleCount
	updated := a.lastUpdated
	started := a.startedAt
	a.mu.Unlock()

	result := news.NewResult(items, time.Now())
	if !updated.IsZero() {
		result.GeneratedAt = updated
	}
	if elapsed := time.Since(started).Seconds(); elapsed > 0 {
		result.UpdateFrequency = float64(cycles) / elapsed
	}
	result.BreakingNewsCount = a.ranker.CountBreaking(items)
	return result
}

// ByCategory returns the current cycle's items for one category.
func (a *Aggregator) ByCategory(category news.Category) []news.Item {
	a.mu.Lock()
	defer a.mu.Unlock()

	var items []news.Item
	for _, item := range a.current {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items
}

// Search returns current items whose title or description contains
// the query, case-insensitive.
func (a *Aggregator) Search(query string) []news.Item {
	a.mu.Lock()
	defer a.mu.Unlock()

	q := strings.ToLower(query)
	var items []news.Item
	for _, item := range a.current {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			items = append(items, item)
		}
	}
	return items
}

// SourceCount is one source's contribution to the current cycle.
type SourceCount struct {
	Source string
	Count  int
}

// TopSources returns sources by item count, descending.
func (a *Aggregator) TopSources(limit int) []SourceCount {
	a.mu.Lock()
	defer a.mu.Unlock()

	counts := make(map[string]int)
	for _, item := range a.current {
		counts[item.Source]++
	}
	result := make([]SourceCount, 0, len(counts))
	for source, count := range counts {
		result = append(result, SourceCount{Source: source, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Source < result[j].Source
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Refresh drops all cached entries, forcing the next cycle upstream.
func (a *Aggregator) Refresh() {
	a.cache.Clear()
	logging.Debug("cache cleared")
}
