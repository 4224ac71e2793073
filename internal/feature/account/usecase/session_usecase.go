package usecase

import (
	"context"
	"fmt"
	"time"

	"studyhub_backend/internal/feature/account/domain/entity"
)

const (
	// sessionExpiration is the lifetime of a persistent session.
	sessionExpiration = 30 * 24 * time.Hour

	// maxSessionsPerAccount caps concurrent sessions; the oldest session is
	// evicted when the cap is reached.
	maxSessionsPerAccount = 5
)

// Establish converts an account whose identity was just confirmed into an
// authenticated principal: a persisted session plus a signed access token
// bound to the account and the fixed "user" authority. It is callable from
// check-token redemption, login-link redemption and credential login alike.
// Prior sessions are left untouched; each call creates a fresh session.
func (u *AccountUsecase) Establish(ctx context.Context, account *entity.Account, client ClientInfo) (*entity.Session, string, error) {
	id, err := u.tokens.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	count, err := u.sessions.CountByAccountID(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}
	if count >= maxSessionsPerAccount {
		if err := u.sessions.DeleteOldestByAccountID(ctx, account.ID); err != nil {
			return nil, "", err
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        id,
		AccountID: account.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionExpiration),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	access, err := u.accessTokens.GenerateToken(account.ID, account.Nickname)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return session, access, nil
}

// Refresh rotates a persistent session: the presented session is revoked and
// a fresh one is created together with a new access token.
func (u *AccountUsecase) Refresh(ctx context.Context, sessionID string, client ClientInfo) (*AuthResult, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	account, err := u.accounts.FindByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUnknownAccount
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	fresh, access, err := u.Establish(ctx, account, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Session: fresh, AccessToken: access}, nil
}

// Logout revokes a single session. Other sessions of the same account stay
// valid.
func (u *AccountUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// RevokeAllSessions revokes every session of the account, e.g. after a
// password change.
func (u *AccountUsecase) RevokeAllSessions(ctx context.Context, accountID uint) error {
	return u.sessions.RevokeAllByAccountID(ctx, accountID)
}
