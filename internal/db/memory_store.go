package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-consultant/internal/types"
)

// MemorySessionStore keeps sessions in process memory. It backs runs without
// a DATABASE_URL; everything is lost on restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*types.ConversationSession
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]*types.ConversationSession),
	}
}

// SaveSession stores a copy of the session.
func (m *MemorySessionStore) SaveSession(_ context.Context, session *types.ConversationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = copySession(session)
	return nil
}

// GetSession retrieves a session by ID, nil when absent.
func (m *MemorySessionStore) GetSession(_ context.Context, id uuid.UUID) (*types.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(session), nil
}

// FindRecentSession returns the most recently updated session for a user.
func (m *MemorySessionStore) FindRecentSession(_ context.Context, userID string) (*types.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var recent *types.ConversationSession
	for _, session := range m.sessions {
		if session.UserID != userID {
			continue
		}
		if recent == nil || session.UpdatedAt.After(recent.UpdatedAt) {
			recent = session
		}
	}
	if recent == nil {
		return nil, nil
	}
	return copySession(recent), nil
}

// ListSessions returns summaries ordered by last activity, newest first.
func (m *MemorySessionStore) ListSessions(_ context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]SessionSummary, 0, len(m.sessions))
	for _, session := range m.sessions {
		summaries = append(summaries, SessionSummary{
			ID:           session.ID,
			UserID:       session.UserID,
			Website:      session.Profile.Website,
			MessageCount: len(session.Messages),
			StartedAt:    session.StartedAt,
			UpdatedAt:    session.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// DeleteSession removes a session by ID.
func (m *MemorySessionStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(m.sessions, id)
	return nil
}

// PruneSessions removes sessions older than the retention window.
func (m *MemorySessionStore) PruneSessions(_ context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	var pruned int64
	for id, session := range m.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}

// copySession clones a session so callers cannot mutate stored state through
// shared slices.
func copySession(s *types.ConversationSession) *types.ConversationSession {
	clone := *s
	clone.Messages = append([]types.Message(nil), s.Messages...)
	clone.Recommendations = append([]types.SEORecommendation(nil), s.Recommendations...)
	clone.Profile.Goals = append([]string(nil), s.Profile.Goals...)
	clone.Profile.Competitors = append([]string(nil), s.Profile.Competitors...)
	return &clone
}
