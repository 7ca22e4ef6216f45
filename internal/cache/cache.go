// Package cache provides a short-TTL item cache with upstream call
// throttling. Content validity (TTL) and call throttling are separate
// timers: a cycle may be blocked from fetching while its cached entry
// has already gone stale, in which case the stale entry is served.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowell/newsterm/internal/news"
)

// entry is one cached aggregation keyed by category set.
type entry struct {
	items    []news.Item
	storedAt time.Time
}

// Cache is safe for concurrent use. A single mutex guards both the
// entry map and the last-fetch map; network I/O happens outside it.
type Cache struct {
	mu        sync.Mutex
	ttl       time.Duration
	throttle  time.Duration
	entries   map[string]entry
	lastFetch map[string]time.Time

	// now is injected for tests.
	now func() time.Time
}

// New creates a cache with the given content TTL and fetch throttle.
func New(ttl, throttle time.Duration) *Cache {
	return &Cache{
		ttl:       ttl,
		throttle:  throttle,
		entries:   make(map[string]entry),
		lastFetch: make(map[string]time.Time),
		now:       time.Now,
	}
}

// NewWithClock creates a cache with an injected clock for tests.
func NewWithClock(ttl, throttle time.Duration, now func() time.Time) *Cache {
	c := New(ttl, throttle)
	c.now = now
	return c
}

// Key derives the cache key from a category set. The set is sorted so
// the same categories always map to the same key regardless of order.
func Key(categories []news.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	sort.Strings(names)
	return strings.Join(names, "-")
}

// ShouldFetch reports whether a real upstream call is allowed for key.
// True when the throttle interval has elapsed since the last real
// fetch. Clock skew producing a negative interval fails open: better
// one extra upstream call than stuck serving stale data.
func (c *Cache) ShouldFetch(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.lastFetch[key]
	if !ok {
		return true
	}
	elapsed := c.now().Sub(last)
	if elapsed < 0 {
		return true
	}
	return elapsed >= c.throttle
}

// Get returns the cached items for key while within TTL.
func (c *Cache) Get(key string) ([]news.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	age := c.now().Sub(e.storedAt)
	if age < 0 || age >= c.ttl {
		return nil, false
	}
	return e.items, true
}

// Stale returns the cached items for key regardless of TTL. Used when
// the throttle blocks a refresh: serving yesterday's headline beats
// hammering the upstream.
func (c *Cache) Stale(key string) ([]news.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.items, true
}

// Set stores items for key and records the upstream call, atomically
// with respect to concurrent readers. The throttle timestamp moves
// only here: cache hits never count as upstream calls.
func (c *Cache) Set(key string, items []news.Item) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{items: items, storedAt: now}
	c.lastFetch[key] = now
}

// Clear drops all entries and throttle state.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.lastFetch = make(map[string]time.Time)
}
