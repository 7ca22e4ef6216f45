package news

import "time"

// Result is one aggregation cycle's output: a deduplicated, priority-ordered
// list of items plus streaming metadata for the display layer.
type Result struct {
	Items       []Item
	GeneratedAt time.Time

	// Distinct source names contributing to Items.
	SourceCount int
	// Distinct categories present in Items.
	Categories map[Category]bool

	// Streaming metrics.
	UpdateFrequency   float64 // completed cycles per second since start
	BreakingNewsCount int
}

// NewResult builds a Result from ranked items, computing the
// source/category breakdown.
func NewResult(items []Item, generatedAt time.Time) Result {
	sources := make(map[string]bool)
	categories := make(map[Category]bool)
	for _, item := range items {
		sources[item.Source] = true
		categories[item.Category] = true
	}
	return Result{
		Items:       items,
		GeneratedAt: generatedAt,
		SourceCount: len(sources),
		Categories:  categories,
	}
}

// TitleSet returns the set of item titles, used by the refresh loop to
// detect cycles that produced no new content.
func (r Result) TitleSet() map[string]bool {
	titles := make(map[string]bool, len(r.Items))
	for _, item := range r.Items {
		titles[item.Title] = true
	}
	return titles
}

// Equal reports whether two results carry the same content: same item
// count and same set of titles. Ordering changes alone do not count as
// new content for display purposes.
func (r Result) Equal(other Result) bool {
	if len(r.Items) != len(other.Items) {
		return false
	}
	titles := other.TitleSet()
	for _, item := range r.Items {
		if !titles[item.Title] {
			return false
		}
	}
	return true
}
