// Package reddit adapts Reddit's public JSON listings.
// Free, no key required.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dhowell/newsterm/internal/httpclient"
	"github.com/dhowell/newsterm/internal/news"
)

const (
	defaultBaseURL = "https://www.reddit.com"
	maxDescription = 200
)

// subreddits maps categories to the subreddit carrying that topic.
var subreddits = map[news.Category]string{
	news.CategoryGeneral:    "news",
	news.CategoryTechnology: "technology",
	news.CategoryBusiness:   "business",
	news.CategoryFinancial:  "finance",
	news.CategoryCrypto:     "CryptoCurrency",
	news.CategoryScience:    "science",
	news.CategoryPolitics:   "politics",
}

// Categories returns the categories this adapter covers.
func Categories() []news.Category {
	cats := make([]news.Category, 0, len(subreddits))
	for c := range subreddits {
		cats = append(cats, c)
	}
	return cats
}

// listing is the Reddit JSON envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	URL        string  `json:"url"`
	IsSelf     bool    `json:"is_self"`
	CreatedUTC float64 `json:"created_utc"`
}

// Source fetches hot posts from per-category news subreddits.
type Source struct {
	baseURL string
	client  *http.Client
}

// New creates a Reddit source.
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
	return "Reddit"
}

// Fetch retrieves hot link posts from the subreddit mapped to category.
// Self posts are skipped; they carry discussion, not news.
func (s *Source) Fetch(ctx context.Context, category news.Category, limit int) ([]news.Item, error) {
	subreddit, ok := subreddits[category]
	if !ok {
		return nil, nil
	}

	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, subreddit, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var payload listing
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	items := make([]news.Item, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		p := child.Data
		title := strings.TrimSpace(p.Title)
		if p.IsSelf || p.URL == "" || title == "" {
			continue
		}
		desc := p.SelfText
		if len(desc) > maxDescription {
			desc = desc[:maxDescription]
		}
		items = append(items, news.Item{
			Title:       title,
			Description: desc,
			URL:         p.URL,
			Source:      "r/" + subreddit,
			Published:   time.Unix(int64(p.CreatedUTC), 0),
			Category:    category,
		})
	}
	return items, nil
}
