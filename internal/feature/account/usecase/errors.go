// Package usecase implements the business logic for the account feature.
package usecase

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDuplicateIdentity is returned when an email or nickname is already
	// taken by another account.
	ErrDuplicateIdentity = errors.New("email or nickname already in use")

	// ErrUnknownAccount is returned when no account matches the given
	// identity. Handlers must render it with the same generic message as
	// ErrTokenMismatch to avoid account enumeration.
	ErrUnknownAccount = errors.New("account not found")

	// ErrTokenMismatch is returned when a supplied check token does not
	// equal the account's current one.
	ErrTokenMismatch = errors.New("check token mismatch")

	// ErrInvalidCredentials is returned when a credential login fails,
	// regardless of whether the account exists or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrThrottleActive is returned when a token resend is attempted inside
	// the cool-down window. Use errors.As with *ThrottleError to read the
	// remaining wait.
	ErrThrottleActive = errors.New("confirmation email sent too recently")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)

// ThrottleError carries the remaining cool-down time of a throttled resend.
// It unwraps to ErrThrottleActive.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("confirmation email sent too recently, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *ThrottleError) Unwrap() error {
	return ErrThrottleActive
}
