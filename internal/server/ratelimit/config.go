package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one path and method. A trailing slash in
// Path makes it a prefix rule, so "/sessions/" covers "/sessions/{id}".
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit when 0
}

// LoadConfig reads limiter settings from RATE_LIMIT_* environment
// variables, falling back to built-in defaults. RATE_LIMIT_ENABLED=false
// turns the limiter off entirely.
func LoadConfig() *Config {
	if !envValue("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envValue("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envValue("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       ipSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       ipSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Crawl-backed
// routes are the most expensive since one request fans out into many page
// fetches, chat burns model quota, and local writes are cheap. Plain reads
// ride on the default limit, and /health is exempted in MatchEndpoint.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/analyze/stream", Method: "GET", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/compare", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/chat", Method: "POST", Limit: 120, Window: time.Hour, Burst: 20},

		{Path: "/track", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// envValue parses one environment variable, returning fallback when the
// variable is unset or malformed.
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ipSet splits a comma-separated address list into a membership set.
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
