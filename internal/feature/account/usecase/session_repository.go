package usecase

import (
	"context"

	"studyhub_backend/internal/feature/account/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (session token value).
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// FindByAccountID retrieves all active sessions for a given account.
	FindByAccountID(ctx context.Context, accountID uint) ([]*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByAccountID revokes all sessions for a given account.
	RevokeAllByAccountID(ctx context.Context, accountID uint) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByAccountID returns the number of active sessions for an account.
	CountByAccountID(ctx context.Context, accountID uint) (int64, error)

	// DeleteOldestByAccountID deletes the oldest active session for an account.
	DeleteOldestByAccountID(ctx context.Context, accountID uint) error
}
