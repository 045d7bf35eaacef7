package fetch

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// DefaultPageCacheTTL bounds how long a fetched page stays reusable before
// a fresh fetch is required.
const DefaultPageCacheTTL = 30 * time.Minute

const (
	pageCacheNumCounters = 100_000
	pageCacheMaxCost     = 64 << 20 // bytes of cached HTML
	pageCacheBufferItems = 64
)

// CachedFetcher puts an in-memory TTL cache in front of URL, so a domain
// analyzed twice in one session (say, as a primary and again as a
// competitor) is fetched once.
type CachedFetcher struct {
	pages  *ristretto.Cache
	opts   *Options
	ttl    time.Duration
	bypass bool // fetch fresh every time, for tests
}

// CachedFetcherConfig configures the cache in front of the fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns the stock cache settings.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{CacheTTL: DefaultPageCacheTTL, Options: DefaultOptions()}
}

// withDefaults fills the zero-valued fields of a config.
func (c *CachedFetcherConfig) withDefaults() *CachedFetcherConfig {
	if c == nil {
		return DefaultCachedFetcherConfig()
	}

	out := *c
	if out.Options == nil {
		out.Options = DefaultOptions()
	}
	if out.CacheTTL == 0 {
		out.CacheTTL = DefaultPageCacheTTL
	}
	return &out
}

// NewCachedFetcher builds a fetcher whose pages expire after the configured
// TTL. A nil config gets the defaults.
func NewCachedFetcher(config *CachedFetcherConfig) (*CachedFetcher, error) {
	config = config.withDefaults()

	pages, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: pageCacheNumCounters,
		MaxCost:     pageCacheMaxCost,
		BufferItems: pageCacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &CachedFetcher{
		pages:  pages,
		opts:   config.Options,
		ttl:    config.CacheTTL,
		bypass: config.SkipCache,
	}, nil
}

// CachedResult is a Result plus where it came from.
type CachedResult struct {
	*Result
	FromCache bool
}

// lookup returns the cached page for a URL, if one is still live.
func (f *CachedFetcher) lookup(urlStr string) (*Result, bool) {
	if f.bypass {
		return nil, false
	}
	value, ok := f.pages.Get(urlStr)
	if !ok {
		return nil, false
	}
	cached, ok := value.(*Result)
	return cached, ok
}

// Fetch returns the page at urlStr, from cache when a live copy exists.
// Fresh fetches get their main text extracted before caching. Failed
// fetches are never cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if cached, ok := f.lookup(urlStr); ok {
		return &CachedResult{Result: cached, FromCache: true}, nil
	}

	result, err := URL(ctx, urlStr, f.opts)
	if err != nil {
		return nil, err
	}
	result.Text, _ = ExtractMainText(result.HTML, DefaultTextSelectors())

	f.pages.SetWithTTL(urlStr, result, int64(len(result.HTML))+1, f.ttl)
	f.pages.Wait()

	return &CachedResult{Result: result}, nil
}

// FetchMultiple fetches every URL in order. The i-th slot of exactly one of
// the two returned slices is set: a result on success, an error otherwise.
func (f *CachedFetcher) FetchMultiple(ctx context.Context, urls []string) ([]*CachedResult, []error) {
	results := make([]*CachedResult, len(urls))
	errs := make([]error, len(urls))
	for i, u := range urls {
		results[i], errs[i] = f.Fetch(ctx, u)
	}
	return results, errs
}

// InvalidateCache drops a cached page, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(urlStr string) {
	f.pages.Del(urlStr)
}

// Close releases the cache's background resources.
func (f *CachedFetcher) Close() {
	f.pages.Close()
}
