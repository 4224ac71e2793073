package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub_backend/internal/feature/account/domain/entity"
	"studyhub_backend/internal/feature/account/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, accountID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		AccountID: accountID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: createTestSession("session-001", 1, 7*24*time.Hour),
			wantErr: false,
		},
		{
			name:    "failure: expired session",
			session: createTestSession("expired-session", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				// Verify session exists in Redis
				data, err := client.Get(context.Background(), repo.sessionKey(tt.session.ID)).Result()
				assert.NoError(t, err)
				assert.NotEmpty(t, data)

				// Verify session ID is in the account's session set
				isMember, err := client.SIsMember(context.Background(), repo.accountSessionsKey(tt.session.AccountID), tt.session.ID).Result()
				assert.NoError(t, err)
				assert.True(t, isMember)
			}
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	t.Run("success: find session", func(t *testing.T) {
		t.Parallel()
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		session := createTestSession("find-session-id", 1, 7*24*time.Hour)
		require.NoError(t, repo.Create(context.Background(), session))

		found, err := repo.FindByID(context.Background(), "find-session-id")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "find-session-id", found.ID)
		assert.Equal(t, uint(1), found.AccountID)
	})

	t.Run("failure: session not found", func(t *testing.T) {
		t.Parallel()
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		found, err := repo.FindByID(context.Background(), "nonexistent-id")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
		assert.Nil(t, found)
	})
}

func TestSessionRedis_FindByAccountID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	// Two sessions for account 1, one for account 2
	require.NoError(t, repo.Create(ctx, createTestSession("session-1", 1, 7*24*time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("session-2", 1, 7*24*time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("session-3", 2, 7*24*time.Hour)))

	sessions, err := repo.FindByAccountID(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)

	sessions, err = repo.FindByAccountID(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, sessions, 1)

	sessions, err = repo.FindByAccountID(ctx, 99)
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("revoke-me", 1, 7*24*time.Hour)))

	err := repo.Revoke(ctx, "revoke-me")
	assert.NoError(t, err)

	found, err := repo.FindByID(ctx, "revoke-me")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked(), "session should be revoked")

	// Revoked sessions no longer count as active
	count, err := repo.CountByAccountID(ctx, 1)
	assert.NoError(t, err)
	assert.Zero(t, count)

	// Revoking an unknown session reports not found
	assert.ErrorIs(t, repo.Revoke(ctx, "unknown"), usecase.ErrSessionNotFound)
}

func TestSessionRedis_RevokeAllByAccountID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("all-1", 7, 7*24*time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("all-2", 7, 7*24*time.Hour)))

	require.NoError(t, repo.RevokeAllByAccountID(ctx, 7))

	count, err := repo.CountByAccountID(ctx, 7)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionRedis_DeleteOldestByAccountID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	oldest := createTestSession("oldest", 3, 7*24*time.Hour)
	oldest.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, oldest))
	require.NoError(t, repo.Create(ctx, createTestSession("newer", 3, 7*24*time.Hour)))

	require.NoError(t, repo.DeleteOldestByAccountID(ctx, 3))

	_, err := repo.FindByID(ctx, "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	found, err := repo.FindByID(ctx, "newer")
	assert.NoError(t, err)
	assert.NotNil(t, found)

	// No sessions left is a no-op
	require.NoError(t, repo.DeleteOldestByAccountID(ctx, 99))
}
