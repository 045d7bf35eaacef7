// Package config holds the consultant's layered configuration: built-in
// defaults, an optional JSON config file, CLI flags and a couple of
// environment variables for credentials. Flags win over the file, the
// file wins over defaults, and env vars win for secrets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default values applied when neither the config file nor CLI flags set one.
const (
	DefaultMaxPages     = 10
	DefaultCrawlDelayMS = 1000
	DefaultConcurrency  = 3
	DefaultCacheTTLMin  = 30
	DefaultMetricsDB    = "seo_metrics.db"
	DefaultPort         = 8080
)

// Config is the file-loadable configuration. Every field is optional;
// whatever the file leaves out comes from defaults or flags.
type Config struct {
	// Targets
	Website     string   `json:"website,omitempty"`     // Default website URL for audits and tracking
	Competitors []string `json:"competitors,omitempty"` // Default competitor URLs for comparisons

	// Credentials and storage
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for session storage
	MetricsDB   string `json:"metrics_db,omitempty"`   // SQLite file holding performance series

	// Crawl and analysis limits
	MaxPages     int `json:"max_pages,omitempty"`         // Page budget per crawl
	CrawlDelayMS int `json:"crawl_delay_ms,omitempty"`    // Delay between page fetches in milliseconds
	Concurrency  int `json:"concurrency,omitempty"`       // Parallel competitor analyses
	CacheTTLMin  int `json:"cache_ttl_minutes,omitempty"` // Page and analysis cache lifetime

	// Model overrides (per tier; empty uses the provider defaults)
	ModelLite     string `json:"model_lite,omitempty"`
	ModelStandard string `json:"model_standard,omitempty"`
	ModelAdvanced string `json:"model_advanced,omitempty"`

	// Server
	Port       int    `json:"port,omitempty"`
	CORSOrigin string `json:"cors_origin,omitempty"` // Access-Control-Allow-Origin value

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for JS-rendered sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// DefaultConfig returns the built-in defaults for everything that has one.
func DefaultConfig() Config {
	return Config{
		MetricsDB:    DefaultMetricsDB,
		MaxPages:     DefaultMaxPages,
		CrawlDelayMS: DefaultCrawlDelayMS,
		Concurrency:  DefaultConcurrency,
		CacheTTLMin:  DefaultCacheTTLMin,
		Port:         DefaultPort,
		CORSOrigin:   "*",
	}
}

// LoadConfig reads and parses a JSON config file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate rejects nonsense values. It does not demand required fields;
// which fields a command actually needs is checked after flag merging.
func (c *Config) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"max_pages", c.MaxPages},
		{"crawl_delay_ms", c.CrawlDelayMS},
		{"concurrency", c.Concurrency},
		{"cache_ttl_minutes", c.CacheTTLMin},
	}
	for _, field := range counts {
		if field.value < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", field.name)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// orDefault keeps value unless it is the zero of its type.
func orDefault[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}
	return value
}

// MergeWithDefaults fills the receiver's unset fields from defaults and
// returns the result. Bools are left alone: a JSON false cannot be told
// apart from unset, so boolean flags own the final word.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	out := *c

	out.Website = orDefault(out.Website, defaults.Website)
	if len(out.Competitors) == 0 {
		out.Competitors = defaults.Competitors
	}
	out.APIKey = orDefault(out.APIKey, defaults.APIKey)
	out.DatabaseURL = orDefault(out.DatabaseURL, defaults.DatabaseURL)
	out.MetricsDB = orDefault(out.MetricsDB, defaults.MetricsDB)
	out.ModelLite = orDefault(out.ModelLite, defaults.ModelLite)
	out.ModelStandard = orDefault(out.ModelStandard, defaults.ModelStandard)
	out.ModelAdvanced = orDefault(out.ModelAdvanced, defaults.ModelAdvanced)
	out.CORSOrigin = orDefault(out.CORSOrigin, defaults.CORSOrigin)

	out.MaxPages = orDefault(out.MaxPages, defaults.MaxPages)
	out.CrawlDelayMS = orDefault(out.CrawlDelayMS, defaults.CrawlDelayMS)
	out.Concurrency = orDefault(out.Concurrency, defaults.Concurrency)
	out.CacheTTLMin = orDefault(out.CacheTTLMin, defaults.CacheTTLMin)
	out.Port = orDefault(out.Port, defaults.Port)

	return out
}

// CrawlDelay returns the inter-request delay as a duration.
func (c *Config) CrawlDelay() time.Duration {
	return time.Duration(c.CrawlDelayMS) * time.Millisecond
}

// CacheTTL returns the cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMin) * time.Minute
}

// ResolveAPIKey returns the Gemini API key, preferring the GEMINI_API_KEY
// environment variable over the config file value.
func (c *Config) ResolveAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}

// ResolveDatabaseURL returns the session database URL, preferring the
// DATABASE_URL environment variable over the config file value.
func (c *Config) ResolveDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return c.DatabaseURL
}
