// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Message roles in a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Recommendation implementation statuses tracked across a session.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDismissed  = "dismissed"
)

// Message is one turn in a consultant conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile holds facts learned about the user across a session.
type UserProfile struct {
	Website     string   `json:"website,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Goals       []string `json:"goals,omitempty"`
	Competitors []string `json:"competitors,omitempty"`
}

// SEORecommendation is a tracked piece of advice the consultant handed out,
// with the user's implementation status. Distinct from the per-comparison
// Recommendation, which is engine output with no lifecycle.
type SEORecommendation struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        Priority  `json:"priority"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	EstimatedImpact string    `json:"estimated_impact,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConversationSession is the persistent state of one consultant chat.
type ConversationSession struct {
	ID              uuid.UUID           `json:"id"`
	UserID          string              `json:"user_id,omitempty"`
	StartedAt       time.Time           `json:"started_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Messages        []Message           `json:"messages"`
	Profile         UserProfile         `json:"profile"`
	Recommendations []SEORecommendation `json:"recommendations,omitempty"`
}
