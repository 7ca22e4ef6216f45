// Package hackernews adapts the Hacker News Firebase API.
// Free, no key required.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dhowell/newsterm/internal/httpclient"
	"github.com/dhowell/newsterm/internal/news"
)

const (
	defaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	maxConcurrent  = 10 // parallel story fetches
	maxDescription = 200
)

// story is a Hacker News item from the API.
type story struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"` // Ask HN etc.
	Time  int64  `json:"time"`
}

// Source fetches top stories from Hacker News.
type Source struct {
	baseURL string
	client  *http.Client
}

// New creates a Hacker News source.
func New() *Source {
	return &Source{
		baseURL: defaultBaseURL,
		client:  httpclient.Default(),
	}
}

// NewWithBaseURL creates a source against a custom endpoint (testing).
func NewWithBaseURL(baseURL string) *Source {
	return &Source{
		baseURL: baseURL,
		client:  httpclient.Default(),
	}
}

func (s *Source) Name() string {
	return "Hacker News"
}

// Fetch retrieves top stories. Hacker News only carries technology
// content; other categories yield an empty result.
func (s *Source) Fetch(ctx context.Context, category news.Category, limit int) ([]news.Item, error) {
	if category != news.CategoryTechnology {
		return nil, nil
	}

	ids, err := s.fetchStoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	// Fan out over story IDs with bounded concurrency, preserving
	// the API's ranking order in the output.
	results := make([]*story, len(ids))
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(i, id int) {
			defer wg.Done()
			defer func() { <-sem }()
			st, err := s.fetchStory(ctx, id)
			if err != nil {
				return // one bad story never fails the batch
			}
			results[i] = st
		}(i, id)
	}
	wg.Wait()

	items := make([]news.Item, 0, len(results))
	for _, st := range results {
		if st == nil || st.Type != "story" || st.URL == "" {
			continue
		}
		title := strings.TrimSpace(st.Title)
		if title == "" {
			continue
		}
		desc := st.Text
		if len(desc) > maxDescription {
			desc = desc[:maxDescription]
		}
		items = append(items, news.Item{
			Title:       title,
			Description: desc,
			URL:         st.URL,
			Source:      "Hacker News",
			Published:   time.Unix(st.Time, 0),
			Category:    category,
		})
	}
	return items, nil
}

func (s *Source) fetchStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := s.getJSON(ctx, s.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch story ids: %w", err)
	}
	return ids, nil
}

func (s *Source) fetchStory(ctx context.Context, id int) (*story, error) {
	var st story
	if err := s.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", s.baseURL, id), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Source) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
