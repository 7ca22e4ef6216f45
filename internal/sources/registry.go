package sources

import "github.com/dhowell/newsterm/internal/news"

// Registry holds the constructed adapters and knows which categories
// each one covers. Adding a source kind means registering it here;
// the orchestrator and ranker never change.
type Registry struct {
	entries []entry
}

type entry struct {
	source Source
	covers map[news.Category]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter covering the given categories.
func (r *Registry) Register(src Source, categories ...news.Category) {
	covers := make(map[news.Category]bool, len(categories))
	for _, c := range categories {
		covers[c] = true
	}
	r.entries = append(r.entries, entry{source: src, covers: covers})
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ForCategory returns the adapters applicable to one category.
func (r *Registry) ForCategory(category news.Category) []Source {
	var result []Source
	for _, e := range r.entries {
		if e.covers[category] {
			result = append(result, e.source)
		}
	}
	return result
}
