package analysis

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/jonathan/seo-consultant/internal/types"
)

// DefaultCacheTTL bounds how long a SiteAnalysis stays reusable before a
// fresh crawl is required.
const DefaultCacheTTL = 30 * time.Minute

const (
	cacheNumCounters = 10_000
	cacheMaxCost     = 1_000
	cacheBufferItems = 64
)

// Cache is a TTL-bounded in-memory store of SiteAnalysis records keyed by
// domain. Analyses are modest in size, so each entry costs one unit.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration
}

// NewCache creates a cache whose entries expire after ttl. A non-positive
// ttl falls back to DefaultCacheTTL.
func NewCache(ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cacheNumCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, ttl: ttl}, nil
}

// Get returns the cached analysis for domain, if present and unexpired.
func (c *Cache) Get(domain string) (*types.SiteAnalysis, bool) {
	value, ok := c.store.Get(cacheKey(domain))
	if !ok {
		return nil, false
	}
	result, ok := value.(*types.SiteAnalysis)
	return result, ok
}

// Set stores the analysis under its domain and blocks until the entry is
// visible to Get.
func (c *Cache) Set(result *types.SiteAnalysis) {
	c.store.SetWithTTL(cacheKey(result.Domain), result, 1, c.ttl)
	c.store.Wait()
}

// Invalidate drops any cached analysis for domain.
func (c *Cache) Invalidate(domain string) {
	c.store.Del(cacheKey(domain))
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.store.Close()
}

func cacheKey(domain string) string {
	return "analysis:" + normalizeDomain(domain)
}
