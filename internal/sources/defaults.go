package sources

import "github.com/dhowell/newsterm/internal/news"

// DefaultFeeds is the curated list of RSS upstreams, organized by
// category. Priority: 3 = wire-speed trusted outlets, 2 = solid
// secondary coverage, 1 = background.
var DefaultFeeds = []Descriptor{
	// Financial (fast-moving, highest priority for trading)
	{Name: "Reuters Business", URL: "https://feeds.reuters.com/reuters/businessNews", Category: news.CategoryFinancial, Priority: 3},
	{Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/realtimeheadlines/", Category: news.CategoryFinancial, Priority: 3},
	{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss", Category: news.CategoryFinancial, Priority: 3},
	{Name: "Financial Times", URL: "https://www.ft.com/rss/home", Category: news.CategoryFinancial, Priority: 3},
	{Name: "Wall Street Journal", URL: "https://feeds.a.dj.com/rss/RSSMarketsMain.xml", Category: news.CategoryFinancial, Priority: 3},
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex", Category: news.CategoryFinancial, Priority: 2},
	{Name: "CNN Business", URL: "http://rss.cnn.com/rss/money_latest.rss", Category: news.CategoryFinancial, Priority: 2},
	{Name: "Seeking Alpha", URL: "https://seekingalpha.com/feed.xml", Category: news.CategoryFinancial, Priority: 2},

	// Earnings
	{Name: "Earnings Whispers", URL: "https://www.earningswhispers.com/rss/epsrss.asp", Category: news.CategoryEarnings, Priority: 3},
	{Name: "Yahoo Earnings", URL: "https://feeds.finance.yahoo.com/rss/2.0/headline?s=earnings", Category: news.CategoryEarnings, Priority: 3},

	// Technology
	{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Category: news.CategoryTechnology, Priority: 3},
	{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Category: news.CategoryTechnology, Priority: 3},
	{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Category: news.CategoryTechnology, Priority: 2},
	{Name: "Wired", URL: "https://www.wired.com/feed/rss", Category: news.CategoryTechnology, Priority: 2},
	{Name: "VentureBeat", URL: "https://venturebeat.com/feed/", Category: news.CategoryTechnology, Priority: 2},

	// Crypto
	{Name: "CoinDesk", URL: "https://www.coindesk.com/arc/outboundfeeds/rss/", Category: news.CategoryCrypto, Priority: 3},
	{Name: "Cointelegraph", URL: "https://cointelegraph.com/rss", Category: news.CategoryCrypto, Priority: 2},
	{Name: "Decrypt", URL: "https://decrypt.co/feed", Category: news.CategoryCrypto, Priority: 2},

	// General
	{Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml", Category: news.CategoryGeneral, Priority: 3},
	{Name: "Reuters World", URL: "https://feeds.reuters.com/Reuters/worldNews", Category: news.CategoryGeneral, Priority: 3},
	{Name: "AP News", URL: "https://feeds.apnews.com/apnews/World", Category: news.CategoryGeneral, Priority: 2},
	{Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml", Category: news.CategoryGeneral, Priority: 2},

	// Politics
	{Name: "Politico", URL: "https://www.politico.com/rss/politics08.xml", Category: news.CategoryPolitics, Priority: 3},
	{Name: "Reuters Politics", URL: "https://feeds.reuters.com/reuters/politicsNews", Category: news.CategoryPolitics, Priority: 2},
	{Name: "The Hill", URL: "https://thehill.com/news/feed/", Category: news.CategoryPolitics, Priority: 2},

	// Science
	{Name: "Nature", URL: "https://www.nature.com/nature.rss", Category: news.CategoryScience, Priority: 3},
	{Name: "Phys.org", URL: "https://phys.org/rss-feed/", Category: news.CategoryScience, Priority: 2},

	// Business
	{Name: "CNBC Top", URL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=100003114", Category: news.CategoryBusiness, Priority: 3},
	{Name: "Forbes", URL: "https://www.forbes.com/real-time/feed2/", Category: news.CategoryBusiness, Priority: 1},
}

// FeedsByCategory returns the default feeds for one category.
func FeedsByCategory(category news.Category) []Descriptor {
	var result []Descriptor
	for _, d := range DefaultFeeds {
		if d.Category == category {
			result = append(result, d)
		}
	}
	return result
}
