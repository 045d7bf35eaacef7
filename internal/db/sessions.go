package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/seo-consultant/internal/types"
)

// SessionStore persists conversation sessions. The Postgres-backed DB and
// the in-memory MemorySessionStore both satisfy it, so the consultant and
// the HTTP server run the same whether or not a database is configured.
type SessionStore interface {
	SaveSession(ctx context.Context, session *types.ConversationSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*types.ConversationSession, error)
	FindRecentSession(ctx context.Context, userID string) (*types.ConversationSession, error)
	ListSessions(ctx context.Context, limit int) ([]SessionSummary, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	PruneSessions(ctx context.Context, olderThan time.Duration) (int64, error)
}

// SessionSummary is a lightweight view of a session for listing
type SessionSummary struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	Website      string    `json:"website,omitempty"`
	MessageCount int       `json:"message_count"`
	StartedAt    time.Time `json:"started_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveSession inserts or updates a session record.
func (db *DB) SaveSession(ctx context.Context, session *types.ConversationSession) error {
	profile, err := json.Marshal(session.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	recommendations, err := json.Marshal(session.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, profile, messages, recommendations, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   profile = $3, messages = $4, recommendations = $5, updated_at = $7`,
		session.ID, session.UserID, profile, messages, recommendations,
		session.StartedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Returns nil without error when the
// session does not exist.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*types.ConversationSession, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, profile, messages, recommendations, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		id,
	)
	session, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// FindRecentSession returns the most recently updated session for a user,
// or nil when the user has none.
func (db *DB) FindRecentSession(ctx context.Context, userID string) (*types.ConversationSession, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, profile, messages, recommendations, created_at, updated_at
		 FROM sessions WHERE user_id = $1
		 ORDER BY updated_at DESC LIMIT 1`,
		userID,
	)
	session, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// ListSessions retrieves recent sessions ordered by last activity.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, COALESCE(profile->>'website', ''),
		        jsonb_array_length(messages), created_at, updated_at
		 FROM sessions ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Website, &s.MessageCount, &s.StartedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DeleteSession removes a session by ID.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// PruneSessions removes sessions whose last activity is older than the
// retention window. Returns the number of sessions removed.
func (db *DB) PruneSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*types.ConversationSession, error) {
	var session types.ConversationSession
	var profile, messages, recommendations []byte

	err := row.Scan(&session.ID, &session.UserID, &profile, &messages,
		&recommendations, &session.StartedAt, &session.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(profile, &session.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(messages, &session.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if err := json.Unmarshal(recommendations, &session.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	return &session, nil
}
