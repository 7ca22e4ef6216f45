package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dhowell/newsterm/internal/news"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Mode selects a timing preset. Trading mode shortens every timer so
// the stream tracks fast-moving markets; standard mode is easier on
// the upstream feeds.
const (
	ModeStandard = "standard"
	ModeTrading  = "trading"
)

// Source is one configured feed. An empty Sources list in the config
// file means "use the built-in feed set".
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Priority int    `yaml:"priority,omitempty"`
	Enabled  bool   `yaml:"enabled"`
}

type Config struct {
	Mode       string   `yaml:"mode"`
	Categories []string `yaml:"categories,omitempty"`

	Concurrency    int    `yaml:"concurrency,omitempty"`
	RequestTimeout string `yaml:"request_timeout,omitempty"`
	ItemsPerSource int    `yaml:"items_per_source,omitempty"`

	MaxItems       int    `yaml:"max_items,omitempty"`
	MinTitleLength int    `yaml:"min_title_length,omitempty"`
	MaxItemAge     string `yaml:"max_item_age,omitempty"`

	CacheTTL        string `yaml:"cache_ttl,omitempty"`
	FetchThrottle   string `yaml:"fetch_throttle,omitempty"`
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	FailureBackoff  string `yaml:"failure_backoff,omitempty"`

	PrioritySources  []string `yaml:"priority_sources,omitempty"`
	BreakingKeywords []string `yaml:"breaking_keywords,omitempty"`

	NewsAPIKey string `yaml:"newsapi_key,omitempty"`

	Sources []Source `yaml:"sources,omitempty"`
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsterm", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path, falling back to the embedded
// defaults on first run (and writing them out so the user has a file
// to edit). A .env file in the working directory supplies API keys.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configs that would misbehave at runtime rather
// than letting bad values surface as odd fetch behavior later.
func Validate(cfg *Config) error {
	switch cfg.Mode {
	case "", ModeStandard, ModeTrading:
	default:
		return fmt.Errorf("unknown mode %q (valid: %s, %s)", cfg.Mode, ModeStandard, ModeTrading)
	}
	for _, c := range cfg.Categories {
		if _, ok := news.ParseCategory(c); !ok {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	for _, field := range []struct{ name, val string }{
		{"request_timeout", cfg.RequestTimeout},
		{"cache_ttl", cfg.CacheTTL},
		{"fetch_throttle", cfg.FetchThrottle},
		{"refresh_interval", cfg.RefreshInterval},
		{"failure_backoff", cfg.FailureBackoff},
		{"max_item_age", cfg.MaxItemAge},
	} {
		if field.val == "" {
			continue
		}
		if _, err := time.ParseDuration(field.val); err != nil {
			return fmt.Errorf("%s: invalid duration %q", field.name, field.val)
		}
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if s.Category != "" {
			if _, ok := news.ParseCategory(s.Category); !ok {
				return fmt.Errorf("source %q: unknown category %q", s.Name, s.Category)
			}
		}
	}
	return nil
}

// Trading reports whether the fast timing preset is active.
func (c *Config) Trading() bool {
	return c.Mode == ModeTrading
}

func (c *Config) duration(val string, standard, trading time.Duration) time.Duration {
	if val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	if c.Trading() {
		return trading
	}
	return standard
}

// CacheTTLDuration is how long a fetched batch stays fresh.
func (c *Config) CacheTTLDuration() time.Duration {
	return c.duration(c.CacheTTL, 60*time.Second, 30*time.Second)
}

// FetchThrottleDuration is the minimum gap between upstream fetches.
func (c *Config) FetchThrottleDuration() time.Duration {
	return c.duration(c.FetchThrottle, 10*time.Second, 500*time.Millisecond)
}

// RefreshDuration is the refresh loop cadence.
func (c *Config) RefreshDuration() time.Duration {
	return c.duration(c.RefreshInterval, 3*time.Second, 500*time.Millisecond)
}

// BackoffDuration is the pause after a failed refresh cycle.
func (c *Config) BackoffDuration() time.Duration {
	return c.duration(c.FailureBackoff, 2*time.Second, 2*time.Second)
}

// TimeoutDuration is the per-request timeout. Both modes use the same
// value; slow feeds are slow regardless of how often we ask.
func (c *Config) TimeoutDuration() time.Duration {
	return c.duration(c.RequestTimeout, 10*time.Second, 10*time.Second)
}

// GetConcurrency returns the fetch worker count, defaulting to 12.
func (c *Config) GetConcurrency() int {
	if c.Concurrency <= 0 {
		return 12
	}
	return c.Concurrency
}

// GetItemsPerSource returns the per-source fetch limit, defaulting to 20.
func (c *Config) GetItemsPerSource() int {
	if c.ItemsPerSource <= 0 {
		return 20
	}
	return c.ItemsPerSource
}

// GetMaxItems returns the display cap, defaulting to 150.
func (c *Config) GetMaxItems() int {
	if c.MaxItems <= 0 {
		return 150
	}
	return c.MaxItems
}

// GetMinTitleLength returns the junk-title floor, defaulting to 10.
func (c *Config) GetMinTitleLength() int {
	if c.MinTitleLength <= 0 {
		return 10
	}
	return c.MinTitleLength
}

// MaxAgeDuration is the oldest an item may be and still be shown.
// Zero disables the cutoff.
func (c *Config) MaxAgeDuration() time.Duration {
	if c.MaxItemAge == "" {
		return 0
	}
	d, err := time.ParseDuration(c.MaxItemAge)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetCategories returns the configured categories, parsed. Empty
// config means all known categories.
func (c *Config) GetCategories() []news.Category {
	if len(c.Categories) == 0 {
		return news.Categories()
	}
	var out []news.Category
	for _, s := range c.Categories {
		if cat, ok := news.ParseCategory(s); ok {
			out = append(out, cat)
		}
	}
	return out
}

// APIKey resolves the NewsAPI key: config file first, then the
// NEWS_API_KEY environment variable (which godotenv may have loaded
// from a .env file). Empty means the NewsAPI source stays off.
func (c *Config) APIKey() string {
	if c.NewsAPIKey != "" {
		return c.NewsAPIKey
	}
	return os.Getenv("NEWS_API_KEY")
}

// EnabledSources returns the configured feeds that are switched on.
func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
