package main

import (
	"fmt"
	"strings"

	"github.com/dhowell/newsterm/internal/aggregate"
	"github.com/dhowell/newsterm/internal/cache"
	"github.com/dhowell/newsterm/internal/config"
	"github.com/dhowell/newsterm/internal/fetch"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
	"github.com/dhowell/newsterm/internal/sources"
	"github.com/dhowell/newsterm/internal/sources/hackernews"
	"github.com/dhowell/newsterm/internal/sources/newsapi"
	"github.com/dhowell/newsterm/internal/sources/reddit"
	"github.com/dhowell/newsterm/internal/sources/rss"
)

// loadConfig reads the config file and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagTrading {
		cfg.Mode = config.ModeTrading
	}
	if len(flagCategories) > 0 {
		cfg.Categories = flagCategories
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// activeFeeds returns the configured feeds, falling back to the
// built-in defaults when the config names none.
func activeFeeds(cfg *config.Config) []sources.Descriptor {
	feeds := configuredFeeds(cfg)
	if len(feeds) == 0 {
		feeds = sources.DefaultFeeds
	}
	return feeds
}

// buildRegistry assembles the source set: the given feeds, the JSON
// APIs, and NewsAPI when a key is set.
func buildRegistry(cfg *config.Config, feeds []sources.Descriptor) *sources.Registry {
	registry := sources.NewRegistry()

	for _, d := range feeds {
		registry.Register(rss.New(d), d.Category)
	}

	registry.Register(hackernews.New(), news.CategoryTechnology)
	registry.Register(reddit.New(), reddit.Categories()...)

	if key := cfg.APIKey(); key != "" {
		registry.Register(newsapi.New(key), newsapi.Categories()...)
	}

	return registry
}

func configuredFeeds(cfg *config.Config) []sources.Descriptor {
	var out []sources.Descriptor
	for _, s := range cfg.EnabledSources() {
		cat := news.CategoryGeneral
		if c, ok := news.ParseCategory(s.Category); ok {
			cat = c
		}
		out = append(out, sources.Descriptor{
			Name:     s.Name,
			URL:      s.URL,
			Category: cat,
			Priority: s.Priority,
		})
	}
	return out
}

// buildPipeline wires registry, orchestrator, cache, ranker and
// aggregator from the config. This is the composition root; nothing
// below cmd knows about config.
func buildPipeline(cfg *config.Config) (*aggregate.Aggregator, *rank.Ranker) {
	feeds := activeFeeds(cfg)
	registry := buildRegistry(cfg, feeds)

	orchestrator := fetch.New(registry, fetch.Config{
		Concurrency:    cfg.GetConcurrency(),
		Timeout:        cfg.TimeoutDuration(),
		ItemsPerSource: cfg.GetItemsPerSource(),
	})

	rankCfg := rank.DefaultConfig()
	rankCfg.MinTitleLength = cfg.GetMinTitleLength()
	rankCfg.MaxItems = cfg.GetMaxItems()
	if len(cfg.BreakingKeywords) > 0 {
		rankCfg.BreakingKeywords = cfg.BreakingKeywords
	}
	if len(cfg.PrioritySources) > 0 {
		rankCfg.PrioritySources = cfg.PrioritySources
	}
	rankCfg.PrioritySources = mergeSourceNames(rankCfg.PrioritySources, sources.PrioritySourceNames(feeds))
	ranker := rank.New(rankCfg)

	store := cache.New(cfg.CacheTTLDuration(), cfg.FetchThrottleDuration())

	aggregator := aggregate.New(orchestrator, store, ranker)
	aggregator.SetMaxAge(cfg.MaxAgeDuration())
	return aggregator, ranker
}

func mergeSourceNames(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, name := range list {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
