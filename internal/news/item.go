// Package news defines the normalized article model shared by all
// source adapters and the aggregation pipeline.
package news

import "time"

// Category identifies the topic bucket an item belongs to.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryBusiness   Category = "business"
	CategoryTechnology Category = "technology"
	CategoryFinancial  Category = "financial"
	CategoryCrypto     Category = "crypto"
	CategoryEarnings   Category = "earnings"
	CategoryPolitics   Category = "politics"
	CategoryScience    Category = "science"
)

// Categories returns the fixed category vocabulary.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryBusiness,
		CategoryTechnology,
		CategoryFinancial,
		CategoryCrypto,
		CategoryEarnings,
		CategoryPolitics,
		CategoryScience,
	}
}

// ParseCategory maps a string to a known category. Unknown strings
// return false; adapters asked for an unknown category return nothing
// rather than erroring.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Item is a single normalized article from any source.
// Items are values: created by an adapter at fetch time, never mutated.
type Item struct {
	Title       string
	Description string
	URL         string
	Source      string // "Bloomberg", "r/technology", "Hacker News"
	Published   time.Time
	Category    Category
}
