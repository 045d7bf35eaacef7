package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is the model surface the rest of the application talks to. The
// consultant only ever needs plain text or a JSON document back, so the
// interface stays at that level.
type Client interface {
	// GenerateContent returns the model's text reply for a prompt.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON returns a JSON document, stripped of markdown fences
	// and conversational padding.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel reports the model name a tier resolves to.
	GetModel(tier ModelTier) string
	// Close releases the underlying API connection.
	Close() error
}

// NewClient builds a client for the configured provider. A nil config gets
// the defaults. Gemini is currently the only backend.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client on the Google Gemini API.
type GeminiClient struct {
	api    *genai.Client
	models *Config
}

// NewGeminiClient opens a Gemini API connection. The key comes from the
// caller, not the environment, so tests can inject a fake.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty")
	}

	api, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{api: api, models: config}, nil
}

// model resolves a tier and prepares a generative model for it.
func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	name := c.models.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	m := c.api.GenerativeModel(name)
	// Near-greedy sampling keeps audit summaries stable across turns.
	m.SetTemperature(0.1)
	return m, nil
}

// GenerateContent asks the tier's model for a plain text reply.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m, err := c.model(tier)
	if err != nil {
		return "", err
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

// GenerateJSON asks the tier's model for a JSON reply. JSON mode is
// requested from the API, and the response is still run through
// CleanJSONBlock because models occasionally fence their output anyway.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m, err := c.model(tier)
	if err != nil {
		return "", err
	}
	m.ResponseMIMEType = "application/json"

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel reports the model name a tier resolves to.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.models.GetModel(tier)
}

// Close shuts down the API connection.
func (c *GeminiClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// responseText flattens the first candidate's parts into one string.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("model candidate has no content")
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model response has no text parts")
	}
	return b.String(), nil
}
