// Package rss adapts RSS and Atom feeds to the normalized item model.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dhowell/newsterm/internal/httpclient"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/sources"
)

// maxDescriptionLen caps stored descriptions; feeds routinely ship
// entire article bodies in the summary field.
const maxDescriptionLen = 300

// Source fetches items from a single RSS/Atom feed.
type Source struct {
	descriptor sources.Descriptor
	client     *http.Client
}

// New creates an adapter for one configured feed.
func New(descriptor sources.Descriptor) *Source {
	return &Source{
		descriptor: descriptor,
		client:     httpclient.Default(),
	}
}

func (s *Source) Name() string {
	return s.descriptor.Name
}

// Fetch retrieves the feed and converts its entries. A category the
// feed is not configured for yields an empty result.
func (s *Source) Fetch(ctx context.Context, category news.Category, limit int) ([]news.Item, error) {
	if category != s.descriptor.Category {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.descriptor.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	items := make([]news.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		item, ok := s.convertEntry(entry, now)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// convertEntry maps one feed entry to a news.Item. Entries without a
// usable title or link are dropped.
func (s *Source) convertEntry(entry *gofeed.Item, now time.Time) (news.Item, bool) {
	title := strings.TrimSpace(entry.Title)
	if title == "" || entry.Link == "" {
		return news.Item{}, false
	}

	published := now
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		published = *entry.UpdatedParsed
	}

	desc := entry.Description
	if desc == "" {
		desc = entry.Content
	}
	desc = truncate(stripHTML(desc), maxDescriptionLen)

	return news.Item{
		Title:       title,
		Description: desc,
		URL:         entry.Link,
		Source:      s.descriptor.Name,
		Published:   published.Local(),
		Category:    s.descriptor.Category,
	}, true
}

// stripHTML removes tags, leaving just the text content.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
