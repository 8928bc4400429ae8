package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/store"
)

func newTestSession(id, userID, tokenHash string, expiresAt time.Time) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "127.0.0.1",
		UserAgent:        "test",
	}
}

func TestSessions_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "usr-1", "driver@example.com")

	sess := newTestSession("sess-1", "usr-1", "hash-1", time.Now().Add(time.Hour))
	require.NoError(t, s.CreateSession(ctx, sess))
	assert.ErrorIs(t, s.CreateSession(ctx, sess), store.ErrAlreadyExists)

	got, err := s.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.UserID)
	assert.Equal(t, "127.0.0.1", got.IPAddress)
	assert.Equal(t, "test", got.UserAgent)

	byToken, err := s.GetSessionByRefreshToken(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", byToken.ID)

	sess.RefreshTokenHash = "hash-2"
	require.NoError(t, s.UpdateSession(ctx, sess))
	_, err = s.GetSessionByRefreshToken(ctx, "hash-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteSession(ctx, "sess-1"))
	assert.ErrorIs(t, s.DeleteSession(ctx, "sess-1"), store.ErrNotFound)
	_, err = s.GetSession(ctx, "sess-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions_ForeignKey(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateSession(context.Background(), newTestSession("sess-1", "nobody", "h", time.Now().Add(time.Hour)))
	assert.Error(t, err)
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "usr-1", "driver@example.com")

	require.NoError(t, s.CreateSession(ctx, newTestSession("old", "usr-1", "h1", time.Now().Add(-time.Minute))))
	require.NoError(t, s.CreateSession(ctx, newTestSession("live", "usr-1", "h2", time.Now().Add(time.Hour))))

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetSession(ctx, "live")
	assert.NoError(t, err)
}
