// Package llm wraps the Gemini API behind a small client interface and a
// tiered model configuration. Callers pick a capability tier rather than a
// model name, so swapping models is a config change instead of a code change.
package llm

import "maps"

// ModelTier names a capability level. The consultant routes cheap
// classification work to the lite tier and reserves the advanced tier for
// strategy synthesis.
type ModelTier string

const (
	// TierLite handles intent classification and entity extraction.
	TierLite ModelTier = "lite"
	// TierStandard handles conversational replies and structured output.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles consulting synthesis over full analysis reports.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the model backend.
type Provider string

// ProviderGemini is the only wired backend. The field exists so a second
// provider can slot in without touching call sites.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig maps the three tiers onto the Gemini 2.5 family.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// fallbackOrder is consulted when a tier has no model of its own.
var fallbackOrder = [...]ModelTier{TierStandard, TierLite}

// GetModel resolves a tier to a model name, falling back to standard and
// then lite. Returns "" when nothing is configured at all.
func (c *Config) GetModel(tier ModelTier) string {
	if name, ok := c.Models[tier]; ok {
		return name
	}
	for _, fb := range fallbackOrder {
		if name, ok := c.Models[fb]; ok {
			return name
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden. The
// receiver is left untouched.
func (c *Config) WithModel(tier ModelTier, name string) *Config {
	models := maps.Clone(c.Models)
	if models == nil {
		models = make(map[ModelTier]string, 1)
	}
	models[tier] = name

	return &Config{Provider: c.Provider, Models: models}
}
