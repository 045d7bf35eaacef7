// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest asks for a single-site analysis.
type AnalyzeRequest struct {
	Domain   string `json:"domain" validate:"required,min=1"`
	MaxPages int    `json:"max_pages,omitempty" validate:"omitempty,min=1,max=50"`
}

// CompareRequest asks for a competitive comparison. Competitor lists longer
// than five are accepted here and truncated by the comparator.
type CompareRequest struct {
	Domain      string   `json:"domain" validate:"required,min=1"`
	Competitors []string `json:"competitors" validate:"required,min=1,dive,required"`
}

// TrackRequest asks for a performance snapshot plus trend report.
type TrackRequest struct {
	Domain string `json:"domain" validate:"required,min=1"`
	Export string `json:"export,omitempty" validate:"omitempty,oneof=json csv"`
}

// ChatRequest is one user turn sent to the consultant.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required,min=1"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CompareRequest using the validator.
func (r *CompareRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TrackRequest using the validator.
func (r *TrackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
