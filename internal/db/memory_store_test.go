package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-consultant/internal/types"
)

func newSession(userID string) *types.ConversationSession {
	now := time.Now()
	return &types.ConversationSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: now,
		UpdatedAt: now,
		Messages: []types.Message{
			{Role: types.RoleUser, Content: "hello", Timestamp: now},
		},
		Profile: types.UserProfile{Website: "https://example.com"},
	}
}

func TestMemorySessionStore_SaveAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := newSession("alice")
	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "alice", loaded.UserID)
	assert.Len(t, loaded.Messages, 1)
	assert.Equal(t, "https://example.com", loaded.Profile.Website)
}

func TestMemorySessionStore_GetMissing(t *testing.T) {
	store := NewMemorySessionStore()

	loaded, err := store.GetSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemorySessionStore_CopiesOnSave(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := newSession("alice")
	require.NoError(t, store.SaveSession(ctx, session))

	// Mutating the caller's copy must not leak into the store.
	session.Messages = append(session.Messages, types.Message{
		Role: types.RoleAssistant, Content: "hi", Timestamp: time.Now(),
	})

	loaded, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 1)
}

func TestMemorySessionStore_FindRecent(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	older := newSession("alice")
	older.UpdatedAt = time.Now().Add(-2 * time.Hour)
	newer := newSession("alice")
	other := newSession("bob")

	require.NoError(t, store.SaveSession(ctx, older))
	require.NoError(t, store.SaveSession(ctx, newer))
	require.NoError(t, store.SaveSession(ctx, other))

	found, err := store.FindRecentSession(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, newer.ID, found.ID)
}

func TestMemorySessionStore_FindRecent_NoSessions(t *testing.T) {
	store := NewMemorySessionStore()

	found, err := store.FindRecentSession(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemorySessionStore_ListSessions(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	first := newSession("alice")
	first.UpdatedAt = time.Now().Add(-time.Hour)
	second := newSession("bob")

	require.NoError(t, store.SaveSession(ctx, first))
	require.NoError(t, store.SaveSession(ctx, second))

	summaries, err := store.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest first
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, 1, summaries[0].MessageCount)
	assert.Equal(t, "https://example.com", summaries[0].Website)
}

func TestMemorySessionStore_ListSessions_Limit(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveSession(ctx, newSession("alice")))
	}

	summaries, err := store.ListSessions(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestMemorySessionStore_Delete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := newSession("alice")
	require.NoError(t, store.SaveSession(ctx, session))
	require.NoError(t, store.DeleteSession(ctx, session.ID))

	loaded, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemorySessionStore_Delete_Missing(t *testing.T) {
	store := NewMemorySessionStore()

	err := store.DeleteSession(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMemorySessionStore_Prune(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	stale := newSession("alice")
	stale.UpdatedAt = time.Now().Add(-40 * 24 * time.Hour)
	fresh := newSession("alice")

	require.NoError(t, store.SaveSession(ctx, stale))
	require.NoError(t, store.SaveSession(ctx, fresh))

	pruned, err := store.PruneSessions(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	loaded, err := store.GetSession(ctx, fresh.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}
