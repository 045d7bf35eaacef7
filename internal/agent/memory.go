// Package agent implements the conversational SEO consultant: session
// memory, intent routing into analysis tools, and reply rendering.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/types"
)

// RetentionPeriod is how long inactive sessions survive before Cleanup
// removes them.
const RetentionPeriod = 30 * 24 * time.Hour

// Windows used when formatting the conversation context for prompts.
const (
	contextMessages        = 10
	contextRecommendations = 3
)

// statusEmoji marks recommendation lines in the conversation context.
var statusEmoji = map[string]string{
	types.StatusPending:    "⏳",
	types.StatusInProgress: "🔄",
	types.StatusCompleted:  "✅",
	types.StatusDismissed:  "❌",
}

// Memory tracks the active conversation session and writes every mutation
// through to the configured store. It is not safe for concurrent use; each
// conversation owns its Memory.
type Memory struct {
	store   db.SessionStore
	current *types.ConversationSession
}

// NewMemory returns a Memory backed by the given session store.
func NewMemory(store db.SessionStore) *Memory {
	return &Memory{store: store}
}

// CreateSession starts a fresh session for the user and makes it current.
// The website, when known up front, seeds the user profile.
func (m *Memory) CreateSession(ctx context.Context, userID, website string) (*types.ConversationSession, error) {
	now := time.Now().UTC()
	session := &types.ConversationSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: now,
		UpdatedAt: now,
		Messages:  []types.Message{},
		Profile:   types.UserProfile{Website: website},
	}

	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	m.current = session
	return session, nil
}

// LoadSession makes an existing session current. Returns nil without error
// when no session with that ID exists.
func (m *Memory) LoadSession(ctx context.Context, id uuid.UUID) (*types.ConversationSession, error) {
	session, err := m.store.GetSession(ctx, id)
	if err != nil || session == nil {
		return nil, err
	}
	m.current = session
	return session, nil
}

// GetOrCreateSession resumes the user's most recent session, or starts a
// new one when the user has none.
func (m *Memory) GetOrCreateSession(ctx context.Context, userID, website string) (*types.ConversationSession, error) {
	recent, err := m.store.FindRecentSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recent != nil {
		m.current = recent
		return recent, nil
	}
	return m.CreateSession(ctx, userID, website)
}

// Current returns the active session, or nil when none is loaded.
func (m *Memory) Current() *types.ConversationSession {
	return m.current
}

// AddMessage appends one turn to the active session and persists it.
func (m *Memory) AddMessage(ctx context.Context, role, content string) error {
	if m.current == nil {
		return fmt.Errorf("no active session")
	}

	m.current.Messages = append(m.current.Messages, types.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return m.save(ctx)
}

// UpdateProfile applies changes to the active session's profile and
// persists them.
func (m *Memory) UpdateProfile(ctx context.Context, apply func(*types.UserProfile)) error {
	if m.current == nil {
		return fmt.Errorf("no active session")
	}

	apply(&m.current.Profile)
	return m.save(ctx)
}

// AddRecommendation records a piece of advice on the active session. A zero
// ID, status or creation time gets a default.
func (m *Memory) AddRecommendation(ctx context.Context, rec types.SEORecommendation) error {
	if m.current == nil {
		return fmt.Errorf("no active session")
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = types.StatusPending
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	m.current.Recommendations = append(m.current.Recommendations, rec)
	return m.save(ctx)
}

// UpdateRecommendationStatus sets the status of one tracked recommendation.
// Unknown IDs are ignored so a stale reference never breaks the chat turn.
func (m *Memory) UpdateRecommendationStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.current == nil {
		return nil
	}

	for i := range m.current.Recommendations {
		if m.current.Recommendations[i].ID == id {
			m.current.Recommendations[i].Status = status
			return m.save(ctx)
		}
	}
	return nil
}

// ConversationContext formats the active session for prompt injection: the
// profile facts, the last ten turns, and the last three recommendations
// with status markers.
func (m *Memory) ConversationContext() string {
	if m.current == nil {
		return ""
	}

	var parts []string

	profile := m.current.Profile
	if profile.Website != "" {
		parts = append(parts, "User's website: "+profile.Website)
	}
	if profile.Industry != "" {
		parts = append(parts, "Industry: "+profile.Industry)
	}
	if len(profile.Goals) > 0 {
		parts = append(parts, "SEO Goals: "+strings.Join(profile.Goals, ", "))
	}

	parts = append(parts, "\nRecent conversation:")
	messages := m.current.Messages
	if len(messages) > contextMessages {
		messages = messages[len(messages)-contextMessages:]
	}
	for _, msg := range messages {
		label := "Assistant"
		if msg.Role == types.RoleUser {
			label = "User"
		}
		parts = append(parts, label+": "+msg.Content)
	}

	if len(m.current.Recommendations) > 0 {
		parts = append(parts, "\nRecent recommendations:")
		recs := m.current.Recommendations
		if len(recs) > contextRecommendations {
			recs = recs[len(recs)-contextRecommendations:]
		}
		for _, rec := range recs {
			parts = append(parts, fmt.Sprintf("%s %s (%s priority)", statusEmoji[rec.Status], rec.Title, rec.Priority))
		}
	}

	return strings.Join(parts, "\n")
}

// UserSummary is a compact profile block used as greeting and check-in
// context.
func (m *Memory) UserSummary() string {
	if m.current == nil {
		return ""
	}

	profile := m.current.Profile
	website := profile.Website
	if website == "" {
		website = "Not provided"
	}
	industry := profile.Industry
	if industry == "" {
		industry = "Not specified"
	}

	completed := 0
	for _, rec := range m.current.Recommendations {
		if rec.Status == types.StatusCompleted {
			completed++
		}
	}
	age := int(time.Since(m.current.StartedAt).Hours() / 24)

	return strings.Join([]string{
		"User Profile Summary:",
		"- Website: " + website,
		"- Industry: " + industry,
		fmt.Sprintf("- Total conversations: %d", len(m.current.Messages)/2),
		fmt.Sprintf("- Recommendations given: %d", len(m.current.Recommendations)),
		fmt.Sprintf("- Recommendations completed: %d", completed),
		fmt.Sprintf("- Account age: %d days", age),
	}, "\n")
}

// Cleanup removes sessions inactive longer than the retention period and
// reports how many were dropped.
func (m *Memory) Cleanup(ctx context.Context) (int64, error) {
	return m.store.PruneSessions(ctx, RetentionPeriod)
}

func (m *Memory) save(ctx context.Context) error {
	m.current.UpdatedAt = time.Now().UTC()
	return m.store.SaveSession(ctx, m.current)
}
