package extraction

import (
	"github.com/jdkato/prose/v2"

	"github.com/jonathan/seo-consultant/internal/types"
)

// EntityExtractor is the optional NLP collaborator for named-entity
// recognition over page text. Implementations must be safe to call with
// arbitrary text; extraction is best-effort and never fatal.
type EntityExtractor interface {
	Extract(text string) []types.Entity
}

const (
	maxEntityInput = 10000 // chars of text handed to the NLP model
	maxEntities    = 20
)

// ProseExtractor extracts named entities with the prose NLP library.
type ProseExtractor struct{}

// NewProseExtractor returns a prose-backed entity extractor. The underlying
// model is loaded per call; callers that analyze many pages should reuse a
// single extractor and treat it as read-only.
func NewProseExtractor() *ProseExtractor {
	return &ProseExtractor{}
}

// Extract returns up to 20 named entities found in text. Failures and empty
// input return an empty list, never an error.
func (p *ProseExtractor) Extract(text string) []types.Entity {
	if text == "" {
		return nil
	}
	if len(text) > maxEntityInput {
		text = text[:maxEntityInput]
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}

	var entities []types.Entity
	for _, ent := range doc.Entities() {
		if len(entities) >= maxEntities {
			break
		}
		entities = append(entities, types.Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities
}
