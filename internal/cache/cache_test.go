package cache

import (
	"testing"
	"time"

	"github.com/dhowell/newsterm/internal/news"
)

// fakeClock lets tests move time by hand.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func testItems(n int) []news.Item {
	items := make([]news.Item, n)
	for i := range items {
		items[i] = news.Item{Title: "headline", Source: "wire"}
	}
	return items
}

func TestKey(t *testing.T) {
	a := Key([]news.Category{news.CategoryTechnology, news.CategoryGeneral})
	b := Key([]news.Category{news.CategoryGeneral, news.CategoryTechnology})
	if a != b {
		t.Errorf("key depends on category order: %q vs %q", a, b)
	}
	if a != "general-technology" {
		t.Errorf("unexpected key: %q", a)
	}
}

func TestShouldFetchFirstCall(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	if !c.ShouldFetch("general") {
		t.Error("first call should always be allowed")
	}
}

func TestThrottleBlocksThenAllows(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	c.Set("general", testItems(3))

	if c.ShouldFetch("general") {
		t.Error("fetch allowed immediately after Set")
	}

	clock.advance(9 * time.Second)
	if c.ShouldFetch("general") {
		t.Error("fetch allowed before throttle elapsed")
	}

	clock.advance(time.Second)
	if !c.ShouldFetch("general") {
		t.Error("fetch blocked after throttle elapsed")
	}
}

func TestGetRespectsTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	c.Set("general", testItems(3))

	items, ok := c.Get("general")
	if !ok || len(items) != 3 {
		t.Fatalf("expected fresh hit with 3 items, got ok=%v len=%d", ok, len(items))
	}

	clock.advance(59 * time.Second)
	if _, ok := c.Get("general"); !ok {
		t.Error("entry expired before TTL")
	}

	clock.advance(time.Second)
	if _, ok := c.Get("general"); ok {
		t.Error("entry still fresh after TTL")
	}
}

func TestStaleServesExpiredEntry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(30*time.Second, 10*time.Minute, clock.now)

	c.Set("general", testItems(2))
	clock.advance(5 * time.Minute)

	if _, ok := c.Get("general"); ok {
		t.Fatal("entry should be past TTL")
	}
	items, ok := c.Stale("general")
	if !ok || len(items) != 2 {
		t.Errorf("stale read failed: ok=%v len=%d", ok, len(items))
	}
}

func TestStaleMissingKey(t *testing.T) {
	c := New(time.Minute, time.Second)
	if _, ok := c.Stale("nothing"); ok {
		t.Error("stale hit for key never stored")
	}
}

func TestClockSkewFailsOpen(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	c.Set("general", testItems(1))

	// Wall clock steps backwards past the stored timestamps.
	clock.t = clock.t.Add(-time.Hour)

	if !c.ShouldFetch("general") {
		t.Error("negative elapsed time should allow fetching")
	}
	if _, ok := c.Get("general"); ok {
		t.Error("entry stored in the future should not be served as fresh")
	}
}

func TestClearDropsEverything(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	c.Set("general", testItems(1))
	c.Clear()

	if _, ok := c.Stale("general"); ok {
		t.Error("entry survived Clear")
	}
	if !c.ShouldFetch("general") {
		t.Error("throttle state survived Clear")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(60*time.Second, 10*time.Second, clock.now)

	c.Set("general", testItems(1))

	if c.ShouldFetch("general") {
		t.Error("general should be throttled")
	}
	if !c.ShouldFetch("technology") {
		t.Error("technology should not be throttled by general's fetch")
	}
}
