// Package newsapi adapts the NewsAPI.org top-headlines endpoint.
// Requires an API key (free tier works).
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dhowell/newsterm/internal/httpclient"
	"github.com/dhowell/newsterm/internal/news"
)

const defaultBaseURL = "https://newsapi.org/v2"

// categoryParams maps our category vocabulary onto NewsAPI's.
// Categories NewsAPI has no bucket for fold into the nearest one.
var categoryParams = map[news.Category]string{
	news.CategoryGeneral:    "general",
	news.CategoryBusiness:   "business",
	news.CategoryTechnology: "technology",
	news.CategoryScience:    "science",
	news.CategoryFinancial:  "business",
	news.CategoryEarnings:   "business",
	news.CategoryPolitics:   "general",
}

// Categories returns the categories this adapter covers.
func Categories() []news.Category {
	cats := make([]news.Category, 0, len(categoryParams))
	for c := range categoryParams {
		cats = append(cats, c)
	}
	return cats
}

// Source fetches top headlines from NewsAPI.
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a NewsAPI source. The free tier allows a request a
// second or so; the limiter keeps a tight refresh cadence from
// burning the quota.
func New(apiKey string) *Source {
	return &Source{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  httpclient.Default(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1), // ~60 RPM
	}
}

// NewWithBaseURL creates a source against a custom endpoint (testing).
func NewWithBaseURL(apiKey, baseURL string) *Source {
	s := New(apiKey)
	s.baseURL = baseURL
	return s
}

func (s *Source) Name() string {
	return "NewsAPI"
}

// topHeadlinesResponse is the NewsAPI payload shape.
type topHeadlinesResponse struct {
	Status   string       `json:"status"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
}

type apiSource struct {
	Name string `json:"name"`
}

// Fetch retrieves top headlines for a category.
func (s *Source) Fetch(ctx context.Context, category news.Category, limit int) ([]news.Item, error) {
	if s.apiKey == "" {
		return nil, nil
	}
	param, ok := categoryParams[category]
	if !ok {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageSize := limit
	if pageSize > 100 {
		pageSize = 100
	}
	query := url.Values{
		"category": {param},
		"language": {"en"},
		"pageSize": {strconv.Itoa(pageSize)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/top-headlines?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("User-Agent", httpclient.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var payload topHeadlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	now := time.Now()
	items := make([]news.Item, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		item, ok := convertArticle(article, category, now)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// convertArticle maps one API article, dropping removed or unusable
// entries. NewsAPI replaces retracted articles with a "[Removed]"
// placeholder that must never reach the pipeline.
func convertArticle(article apiArticle, category news.Category, now time.Time) (news.Item, bool) {
	title := strings.TrimSpace(article.Title)
	if title == "" || title == "[Removed]" || article.URL == "" {
		return news.Item{}, false
	}

	published := now
	if article.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			published = t.Local()
		}
	}

	source := article.Source.Name
	if source == "" {
		source = "NewsAPI"
	}

	return news.Item{
		Title:       title,
		Description: article.Description,
		URL:         article.URL,
		Source:      source,
		Published:   published,
		Category:    category,
	}, true
}
