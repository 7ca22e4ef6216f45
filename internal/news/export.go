package news

import (
	"encoding/json"
	"io"
	"time"
)

// Record is the flat wire shape for exporting items to another process.
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"` // ISO-8601
	Category    string `json:"category"`
}

// Records converts items to their export shape.
func Records(items []Item) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, Record{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: item.Published.Format(time.RFC3339),
			Category:    string(item.Category),
		})
	}
	return records
}

// WriteJSON writes items as an indented JSON array.
func WriteJSON(w io.Writer, items []Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(items))
}
