// Package ratelimit provides rate limiting functionality using token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long a bucket may go unused before cleanup removes it.
const staleAfter = time.Hour

// bucket is a token bucket for one client+endpoint+method combination.
// Tokens refill continuously at refillRate per second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // a fresh client gets the full burst
		lastRefill: now,
		lastSeen:   now,
	}
}

// take consumes one token if available and reports the bucket state. The
// reset time is when the bucket will be full again.
func (b *bucket) take() (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(b.capacity), b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	if b.tokens < float64(b.capacity) {
		deficit := float64(b.capacity) - b.tokens
		reset = now.Add(time.Duration(deficit / b.refillRate * float64(time.Second)))
	} else {
		reset = now
	}
	return allowed, remaining, reset
}

// idleSince reports whether the bucket has gone untouched since the cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter manages rate limiting for multiple clients using token buckets.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	done    chan struct{}
}

func defaultLimiterConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
	}
}

// NewLimiter builds a limiter and, when enabled, starts its cleanup
// goroutine. Callers must Stop it to shut that goroutine down.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = defaultLimiterConfig()
	}

	limiter := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		limiter.ticker = time.NewTicker(config.CleanupInterval)
		limiter.done = make(chan struct{})
		go limiter.cleanupLoop()
	}
	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	if l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if rule == nil {
		rule = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if rule.Limit <= 0 {
		// Exempt endpoint, such as the health check.
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	allowed, remaining, reset := l.bucket(key, rule).take()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(reset); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retryAfter,
	}
}

// bucket gets or creates the token bucket for the given key.
func (l *Limiter) bucket(key string, cfg *EndpointConfig) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return b
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}
	refillRate := float64(cfg.Limit) / cfg.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another request may have created it while we waited for the lock.
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	b = newBucket(capacity, refillRate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.removeStale()
		case <-l.done:
			return
		}
	}
}

// removeStale drops buckets that have gone unused, so one-off clients do not
// accumulate forever.
func (l *Limiter) removeStale() {
	cutoff := time.Now().Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
