package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"website": "https://quluq.coffee",
		"competitors": ["https://rivalroast.com", "https://beanbarn.example"],
		"max_pages": 5,
		"concurrency": 2,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://quluq.coffee", cfg.Website)
	assert.Equal(t, []string{"https://rivalroast.com", "https://beanbarn.example"}, cfg.Competitors)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
	assert.Zero(t, cfg.Port, "unset fields stay zero until merged")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "empty path",
			path:    func(*testing.T) string { return "" },
			wantErr: "config path is empty",
		},
		{
			name:    "missing file",
			path:    func(*testing.T) string { return "/nonexistent/path/config.json" },
			wantErr: "failed to read config file",
		},
		{
			name:    "malformed JSON",
			path:    func(t *testing.T) string { return writeConfigFile(t, `{ not json }`) },
			wantErr: "failed to parse config JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "all values sane",
			cfg:  Config{Website: "https://quluq.coffee", MaxPages: 10, Concurrency: 3, Port: 8080},
		},
		{
			name: "zero values are fine",
			cfg:  Config{},
		},
		{
			name:    "negative page budget",
			cfg:     Config{MaxPages: -1},
			wantErr: "max_pages",
		},
		{
			name:    "negative crawl delay",
			cfg:     Config{CrawlDelayMS: -200},
			wantErr: "crawl_delay_ms",
		},
		{
			name:    "negative cache TTL",
			cfg:     Config{CacheTTLMin: -5},
			wantErr: "cache_ttl_minutes",
		},
		{
			name:    "port beyond range",
			cfg:     Config{Port: 70000},
			wantErr: "port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{Website: "https://quluq.coffee", MaxPages: 5}
	merged := partial.MergeWithDefaults(DefaultConfig())

	// File values survive the merge.
	assert.Equal(t, "https://quluq.coffee", merged.Website)
	assert.Equal(t, 5, merged.MaxPages)

	// Gaps get the built-in defaults.
	assert.Equal(t, DefaultMetricsDB, merged.MetricsDB)
	assert.Equal(t, DefaultCrawlDelayMS, merged.CrawlDelayMS)
	assert.Equal(t, DefaultConcurrency, merged.Concurrency)
	assert.Equal(t, DefaultCacheTTLMin, merged.CacheTTLMin)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, "*", merged.CORSOrigin)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Website: "https://quluq.coffee", MetricsDB: "custom.db"}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://quluq.coffee", merged.Website)
	assert.Equal(t, "custom.db", merged.MetricsDB)
}

func TestDurationAccessors(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "1s", cfg.CrawlDelay().String())
	assert.Equal(t, "30m0s", cfg.CacheTTL().String())
}

func TestResolveAPIKey(t *testing.T) {
	cfg := &Config{APIKey: "file-key"}

	t.Setenv("GEMINI_API_KEY", "env-key")
	assert.Equal(t, "env-key", cfg.ResolveAPIKey(), "environment wins")

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "file-key", cfg.ResolveAPIKey(), "file value is the fallback")
}

func TestResolveDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://file/db"}

	t.Setenv("DATABASE_URL", "postgres://env/db")
	assert.Equal(t, "postgres://env/db", cfg.ResolveDatabaseURL())

	t.Setenv("DATABASE_URL", "")
	assert.Equal(t, "postgres://file/db", cfg.ResolveDatabaseURL())
}
