package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, config *CachedFetcherConfig) *CachedFetcher {
	t.Helper()
	fetcher, err := NewCachedFetcher(config)
	require.NoError(t, err)
	t.Cleanup(fetcher.Close)
	return fetcher
}

func newCountingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestCachedFetcher_SecondFetchHitsCache(t *testing.T) {
	server, requests := newCountingServer(t, "<html><body><main><p>Fresh roast drops every Friday.</p></main></body></html>")
	fetcher := newTestFetcher(t, nil)

	first, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Contains(t, first.HTML, "Fresh roast")
	assert.Contains(t, first.Text, "Fresh roast drops every Friday.")

	second, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, int64(1), requests.Load())
}

func TestCachedFetcher_SkipCacheAlwaysFetches(t *testing.T) {
	server, requests := newCountingServer(t, "<html><body>hello</body></html>")
	fetcher := newTestFetcher(t, &CachedFetcherConfig{SkipCache: true})

	for i := 0; i < 2; i++ {
		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.False(t, result.FromCache)
	}
	assert.Equal(t, int64(2), requests.Load())
}

func TestCachedFetcher_InvalidateForcesRefetch(t *testing.T) {
	server, requests := newCountingServer(t, "<html><body>hello</body></html>")
	fetcher := newTestFetcher(t, nil)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	fetcher.InvalidateCache(server.URL)

	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int64(2), requests.Load())
}

func TestCachedFetcher_FailedFetchesAreNotCached(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := newTestFetcher(t, nil)

	for i := 0; i < 2; i++ {
		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Nil(t, result)
	}
	assert.Equal(t, int64(2), requests.Load())
}

func TestCachedFetcher_FetchMultiplePreservesOrder(t *testing.T) {
	good, _ := newCountingServer(t, "<html><body>page</body></html>")
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	fetcher := newTestFetcher(t, nil)

	urls := []string{good.URL, bad.URL + "/missing"}
	results, errs := fetcher.FetchMultiple(context.Background(), urls)

	require.Len(t, results, 2)
	require.Len(t, errs, 2)

	require.NotNil(t, results[0])
	assert.Equal(t, good.URL, results[0].URL)
	assert.NoError(t, errs[0])

	assert.Nil(t, results[1])
	assert.Error(t, errs[1])
}

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()
	assert.Equal(t, DefaultPageCacheTTL, config.CacheTTL)
	assert.False(t, config.SkipCache)
	require.NotNil(t, config.Options)
	assert.Equal(t, DefaultTimeout, config.Options.Timeout)
}

func TestNewCachedFetcher_NilConfigUsesDefaults(t *testing.T) {
	fetcher := newTestFetcher(t, nil)
	assert.Equal(t, DefaultPageCacheTTL, fetcher.ttl)
	assert.False(t, fetcher.bypass)
	require.NotNil(t, fetcher.opts)
}

func TestNewCachedFetcher_ZeroTTLUsesDefault(t *testing.T) {
	fetcher := newTestFetcher(t, &CachedFetcherConfig{CacheTTL: 0})
	assert.Equal(t, DefaultPageCacheTTL, fetcher.ttl)
}

func TestCachedFetcher_CustomTTL(t *testing.T) {
	fetcher := newTestFetcher(t, &CachedFetcherConfig{CacheTTL: 5 * time.Minute})
	assert.Equal(t, 5*time.Minute, fetcher.ttl)
}
