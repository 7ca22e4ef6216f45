package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhowell/newsterm/internal/news"
)

const testListing = `{
  "data": {
    "children": [
      {"data": {
        "title": "Chipmaker unveils new processor line",
        "url": "http://example.com/chips",
        "is_self": false,
        "created_utc": 1773057600
      }},
      {"data": {
        "title": "What do you all think about this?",
        "url": "http://reddit.com/r/technology/self",
        "selftext": "discussion post",
        "is_self": true,
        "created_utc": 1773057600
      }},
      {"data": {
        "title": "",
        "url": "http://example.com/untitled",
        "is_self": false,
        "created_utc": 1773057600
      }}
    ]
  }
}`

func TestFetchParsesListing(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(testListing))
	}))
	defer server.Close()

	s := NewWithBaseURL(server.URL)
	items, err := s.Fetch(context.Background(), news.CategoryTechnology, 25)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotPath != "/r/technology/hot.json" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item (self and untitled posts dropped), got %d", len(items))
	}
	if items[0].Title != "Chipmaker unveils new processor line" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
	if items[0].Source != "r/technology" {
		t.Errorf("unexpected source: %q", items[0].Source)
	}
	if items[0].Published.IsZero() {
		t.Error("published time not set from created_utc")
	}
}

func TestFetchSubredditPerCategory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer server.Close()

	s := NewWithBaseURL(server.URL)

	tests := []struct {
		category news.Category
		want     string
	}{
		{news.CategoryGeneral, "/r/news/hot.json"},
		{news.CategoryCrypto, "/r/CryptoCurrency/hot.json"},
		{news.CategoryFinancial, "/r/finance/hot.json"},
	}
	for _, tt := range tests {
		if _, err := s.Fetch(context.Background(), tt.category, 10); err != nil {
			t.Fatalf("Fetch(%s) failed: %v", tt.category, err)
		}
		if gotPath != tt.want {
			t.Errorf("category %s hit %q, want %q", tt.category, gotPath, tt.want)
		}
	}
}

func TestFetchUncoveredCategory(t *testing.T) {
	s := NewWithBaseURL("http://unreachable.invalid")
	items, err := s.Fetch(context.Background(), news.CategoryEarnings, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestFetchPropagatesLimit(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer server.Close()

	s := NewWithBaseURL(server.URL)
	if _, err := s.Fetch(context.Background(), news.CategoryGeneral, 7); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotLimit != "7" {
		t.Errorf("limit param = %q, want 7", gotLimit)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewWithBaseURL(server.URL)
	_, err := s.Fetch(context.Background(), news.CategoryGeneral, 10)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected 429 error, got %v", err)
	}
}
