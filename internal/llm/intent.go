// Package llm - intent.go provides chat intent classification.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/seo-consultant/internal/schemas"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "IntentClassification")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// Intent types the consultant knows how to act on. Anything the classifier
// cannot place lands on IntentGeneralQuestion.
const (
	IntentWebsiteAudit        = "website_audit"
	IntentCompetitorAnalysis  = "competitor_analysis"
	IntentPerformanceTracking = "performance_tracking"
	IntentGeneralQuestion     = "general_question"
	IntentGreeting            = "greeting"
)

// Urgency levels attached to a classified intent.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Intent is the classification of a single chat message: whether it calls
// for running analysis tools, which consulting action it maps to, and any
// URLs or names mentioned.
type Intent struct {
	NeedsAnalysis bool     `json:"needs_analysis"`
	IntentType    string   `json:"intent_type"`
	Urgency       string   `json:"urgency"`
	Entities      []string `json:"entities"`
}

// IntentSchema returns the extraction schema for chat intent classification.
func IntentSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "IntentClassification",
		Description: `You are the routing layer of an SEO consulting assistant. Classify the user's message.
Decide whether the message requires running SEO analysis tools or is conversational.
A website audit needs one URL. A competitor comparison needs the user's URL plus at least one competitor URL.
Performance tracking refers to rankings, traffic, or visibility over time.`,
		Fields: []SchemaField{
			{
				Name:        "needs_analysis",
				Type:        "true/false",
				Description: "true when the message asks for an audit, comparison, or performance check",
				Required:    true,
			},
			{
				Name:        "intent_type",
				Type:        "\"string\"",
				Description: "one of: website_audit, competitor_analysis, performance_tracking, general_question, greeting",
				Required:    true,
			},
			{
				Name:        "urgency",
				Type:        "\"string\"",
				Description: "one of: high, medium, low",
				Required:    true,
			},
			{
				Name:        "entities",
				Type:        "[\"string\"]",
				Description: "URLs, domains, company names, or keywords mentioned in the message",
				Required:    false,
			},
		},
	}
}

// analysisKeywords drive the heuristic guess when the model returns an
// unusable payload.
var analysisKeywords = []string{"analyze", "audit", "check", "compare", "competitor"}

// ClassifyIntent determines what a chat message is asking for. It never
// returns an error: without a client the message is classified by keyword
// and URL heuristics, a failed generation is treated as conversational, and
// a payload that fails schema validation falls back to a keyword scan.
func ClassifyIntent(ctx context.Context, client Client, message string) *Intent {
	if client == nil {
		return heuristicIntent(message)
	}

	prompt := BuildExtractionPrompt(IntentSchema(), message)
	raw, err := client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return offlineIntent()
	}
	if err := schemas.ValidateIntent(raw); err != nil {
		return keywordIntent(message)
	}

	var intent Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return keywordIntent(message)
	}
	if intent.Urgency == "" {
		intent.Urgency = UrgencyMedium
	}
	if intent.Entities == nil {
		intent.Entities = []string{}
	}
	return &intent
}

// keywordIntent scans the message for analysis verbs. It cannot recover
// which tool the user meant, so the type stays general_question and the
// consultant asks for details.
func keywordIntent(message string) *Intent {
	lower := strings.ToLower(message)
	needsAnalysis := false
	for _, kw := range analysisKeywords {
		if strings.Contains(lower, kw) {
			needsAnalysis = true
			break
		}
	}
	return &Intent{
		NeedsAnalysis: needsAnalysis,
		IntentType:    IntentGeneralQuestion,
		Urgency:       UrgencyMedium,
		Entities:      []string{},
	}
}

func offlineIntent() *Intent {
	return &Intent{
		NeedsAnalysis: false,
		IntentType:    IntentGeneralQuestion,
		Urgency:       UrgencyLow,
		Entities:      []string{},
	}
}

// heuristicIntent classifies without a model: keyword scan for the action,
// URL-looking tokens for the targets. It keeps the chat surface usable when
// no API key is configured.
func heuristicIntent(message string) *Intent {
	lower := strings.ToLower(message)
	urls := urlTokens(message)

	intent := &Intent{
		IntentType: IntentGeneralQuestion,
		Urgency:    UrgencyMedium,
		Entities:   urls,
	}

	switch {
	case len(urls) >= 2 && containsAny(lower, "compare", "competitor", " vs "):
		intent.NeedsAnalysis = true
		intent.IntentType = IntentCompetitorAnalysis
	case containsAny(lower, "track", "perform", "trend", "progress", "rank"):
		intent.NeedsAnalysis = true
		intent.IntentType = IntentPerformanceTracking
	case len(urls) >= 1:
		intent.NeedsAnalysis = true
		intent.IntentType = IntentWebsiteAudit
	case containsAny(lower, analysisKeywords...):
		intent.NeedsAnalysis = true
	}
	return intent
}

// urlTokens pulls URL-looking tokens out of free text, with surrounding
// punctuation stripped.
func urlTokens(message string) []string {
	urls := []string{}
	for _, token := range strings.Fields(message) {
		token = strings.Trim(token, ".,!?;:()\"'")
		if token != "" && looksLikeURL(token) {
			urls = append(urls, token)
		}
	}
	return urls
}

// looksLikeURL accepts an explicit scheme or a dotted token without spaces.
func looksLikeURL(text string) bool {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return true
	}
	return strings.Contains(text, ".") && !strings.Contains(text, " ")
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
