// Package rank merges one cycle's items across adapters: drops noise,
// deduplicates by normalized title, and orders by priority tier then
// recency. Tier dominates recency on purpose -- for a trading display
// a two-hour-old halt notice still outranks a fresh wire recap.
package rank

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dhowell/newsterm/internal/news"
)

// Tier is the priority classification used as the primary sort key.
type Tier int

const (
	TierBreaking Tier = iota
	TierPrioritySource
	TierRegular
)

func (t Tier) String() string {
	switch t {
	case TierBreaking:
		return "breaking"
	case TierPrioritySource:
		return "priority"
	default:
		return "regular"
	}
}

// DefaultBreakingKeywords flag urgent items from title or description.
var DefaultBreakingKeywords = []string{
	"breaking", "urgent", "alert", "flash", "developing",
	"halt", "suspend", "emergency", "crash", "surge",
}

// DefaultPrioritySources are trusted real-time outlets.
var DefaultPrioritySources = []string{
	"Bloomberg", "Reuters", "Financial Times", "MarketWatch",
	"Yahoo Finance", "CNBC", "Wall Street Journal",
}

// Config controls the ranking pipeline.
type Config struct {
	// MinTitleLength discards items whose normalized title is shorter.
	MinTitleLength int
	// MaxItems truncates the ranked output.
	MaxItems int
	// BreakingKeywords matched (case-insensitive) against title and
	// description.
	BreakingKeywords []string
	// PrioritySources matched as case-insensitive substrings of the
	// item's source name.
	PrioritySources []string
}

// DefaultConfig returns the standard ranking configuration.
func DefaultConfig() Config {
	return Config{
		MinTitleLength:   10,
		MaxItems:         150,
		BreakingKeywords: DefaultBreakingKeywords,
		PrioritySources:  DefaultPrioritySources,
	}
}

// Ranker classifies and orders items.
type Ranker struct {
	cfg Config
}

// New creates a Ranker. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Ranker {
	def := DefaultConfig()
	if cfg.MinTitleLength <= 0 {
		cfg.MinTitleLength = def.MinTitleLength
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	if len(cfg.BreakingKeywords) == 0 {
		cfg.BreakingKeywords = def.BreakingKeywords
	}
	if len(cfg.PrioritySources) == 0 {
		cfg.PrioritySources = def.PrioritySources
	}
	return &Ranker{cfg: cfg}
}

// normalizeTitle is the dedup key: case-folded and trimmed.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Classify returns the priority tier for one item. Evaluated in
// order; first match wins.
func (r *Ranker) Classify(item news.Item) Tier {
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	for _, kw := range r.cfg.BreakingKeywords {
		if strings.Contains(title, kw) || strings.Contains(desc, kw) {
			return TierBreaking
		}
	}

	source := strings.ToLower(item.Source)
	for _, ps := range r.cfg.PrioritySources {
		if strings.Contains(source, strings.ToLower(ps)) {
			return TierPrioritySource
		}
	}
	return TierRegular
}

// Rank runs the full pipeline: noise filter, title dedup (first
// occurrence wins), tier classification, newest-first within tier,
// tiers concatenated breaking -> priority -> regular, truncated to
// the display maximum.
func (r *Ranker) Rank(items []news.Item) []news.Item {
	seen := make(map[string]bool, len(items))
	var breaking, priority, regular []news.Item

	for _, item := range items {
		key := normalizeTitle(item.Title)
		if utf8.RuneCountInString(key) < r.cfg.MinTitleLength {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		switch r.Classify(item) {
		case TierBreaking:
			breaking = append(breaking, item)
		case TierPrioritySource:
			priority = append(priority, item)
		default:
			regular = append(regular, item)
		}
	}

	sortNewestFirst(breaking)
	sortNewestFirst(priority)
	sortNewestFirst(regular)

	ranked := make([]news.Item, 0, len(breaking)+len(priority)+len(regular))
	ranked = append(ranked, breaking...)
	ranked = append(ranked, priority...)
	ranked = append(ranked, regular...)

	if len(ranked) > r.cfg.MaxItems {
		ranked = ranked[:r.cfg.MaxItems]
	}
	return ranked
}

// CountBreaking returns how many items classify as breaking.
func (r *Ranker) CountBreaking(items []news.Item) int {
	count := 0
	for _, item := range items {
		if r.Classify(item) == TierBreaking {
			count++
		}
	}
	return count
}

// sortNewestFirst orders by published time descending. The stable
// sort keeps input order for equal timestamps.
func sortNewestFirst(items []news.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
}

// Recent filters items published after cutoff, preserving order.
func Recent(items []news.Item, cutoff time.Time) []news.Item {
	var recent []news.Item
	for _, item := range items {
		if item.Published.After(cutoff) {
			recent = append(recent, item)
		}
	}
	return recent
}
