// Package sources defines the source adapter contract and the static
// catalog of configured upstreams.
package sources

import (
	"context"
	"strings"

	"github.com/dhowell/newsterm/internal/news"
)

// Source is the capability every upstream adapter implements.
// Implementations are stateless and safe for concurrent use.
type Source interface {
	// Name returns the human-readable source name.
	Name() string

	// Fetch retrieves up to limit items for the given category.
	// Asked for a category the source does not cover, it returns an
	// empty slice rather than an error. Transport and payload errors
	// are returned; the orchestrator maps them to empty results.
	Fetch(ctx context.Context, category news.Category, limit int) ([]news.Item, error)
}

// Priority levels for Descriptor.Priority.
const (
	PriorityBackground = 1 // background coverage
	PrioritySecondary  = 2 // solid secondary coverage
	PriorityWire       = 3 // wire-speed trusted outlets
)

// Descriptor is the static configuration for one upstream feed.
// Loaded once, immutable for the process lifetime.
type Descriptor struct {
	Name     string
	URL      string
	Category news.Category
	Priority int // higher = more trusted / closer to real-time
}

// PrioritySourceNames returns the names of the wire-priority feeds,
// deduplicated case-insensitively, in catalog order. The ranker folds
// these into its priority-source list.
func PrioritySourceNames(feeds []Descriptor) []string {
	seen := make(map[string]struct{}, len(feeds))
	var names []string
	for _, d := range feeds {
		if d.Priority < PriorityWire {
			continue
		}
		key := strings.ToLower(d.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, d.Name)
	}
	return names
}
