package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-consultant/internal/types"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	cache, err := NewCache(ttl)
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return cache
}

func TestCache_SetGet(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	cache.Set(&types.SiteAnalysis{Domain: "example.com", SiteOverall: 61.5})

	got, ok := cache.Get("example.com")
	require.True(t, ok)
	assert.Equal(t, "example.com", got.Domain)
	assert.InDelta(t, 61.5, got.SiteOverall, 1e-9)
}

func TestCache_MissForUnknownDomain(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	got, ok := cache.Get("unknown.example")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_KeyIsCaseInsensitive(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	cache.Set(&types.SiteAnalysis{Domain: "Example.COM"})

	_, ok := cache.Get("example.com")
	assert.True(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	cache.Set(&types.SiteAnalysis{Domain: "example.com"})
	cache.Invalidate("example.com")

	_, ok := cache.Get("example.com")
	assert.False(t, ok)
}

func TestCache_EntriesExpire(t *testing.T) {
	cache := newTestCache(t, 10*time.Millisecond)

	cache.Set(&types.SiteAnalysis{Domain: "example.com"})
	time.Sleep(50 * time.Millisecond)

	_, ok := cache.Get("example.com")
	assert.False(t, ok)
}
