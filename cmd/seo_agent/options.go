package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/seo-consultant/internal/config"
	"github.com/jonathan/seo-consultant/internal/llm"
	"github.com/jonathan/seo-consultant/internal/pipeline"
)

// loadConfig resolves the effective configuration: the --config file when
// given, filled out with the built-in defaults. The verbose flag always
// wins because a JSON false is indistinguishable from unset.
func loadConfig() (config.Config, error) {
	var cfg config.Config

	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if rootVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", rootConfigPath)
		}
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if rootVerbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// pipelineOptions maps the resolved config onto pipeline options.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		MaxPages:    cfg.MaxPages,
		CrawlDelay:  cfg.CrawlDelay(),
		Concurrency: cfg.Concurrency,
		CacheTTL:    cfg.CacheTTL(),
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
		MetricsDB:   cfg.MetricsDB,
		DatabaseURL: cfg.ResolveDatabaseURL(),
	}
}

// modelConfig applies the per-tier model overrides onto the Gemini defaults.
func modelConfig(cfg config.Config) *llm.Config {
	models := llm.DefaultGeminiConfig()
	if cfg.ModelLite != "" {
		models = models.WithModel(llm.TierLite, cfg.ModelLite)
	}
	if cfg.ModelStandard != "" {
		models = models.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		models = models.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}
	return models
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}
