// Package entity defines the domain entities for the account feature.
package entity

import "time"

// Account represents a member of the study platform.
// The email address is the durable identity key; it is never changed after
// creation. The nickname is also unique but may be updated later.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Email is the account's email address used for identification.
	// It must be unique across all accounts and is immutable after creation.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Nickname is the public name of the account.
	// It must be unique across all accounts.
	Nickname string `gorm:"uniqueIndex;size:64;not null"`

	// PasswordHash is the one-way hashed password for the account.
	// This never stores plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// EmailVerified reports whether the email address has been confirmed
	// through a check-token redemption. It goes false -> true exactly once
	// and never reverts.
	EmailVerified bool `gorm:"not null;default:false"`

	// EmailCheckToken is the opaque secret mailed out to prove control of
	// the address. It is regenerated on every token-issuing event, which
	// invalidates any previously mailed link.
	EmailCheckToken string `gorm:"size:64"`

	// EmailCheckTokenGeneratedAt is the timestamp of the most recent token
	// issuance. It drives the resend cool-down window.
	EmailCheckTokenGeneratedAt time.Time

	// JoinedAt is set when the account completes sign-up.
	JoinedAt time.Time

	// Profile fields, edited through the settings screens.
	Bio          string `gorm:"size:255"`
	URL          string `gorm:"size:255"`
	Occupation   string `gorm:"size:64"`
	Location     string `gorm:"size:64"`
	ProfileImage string

	// Notification preferences. Web notifications default to on.
	StudyCreatedByEmail          bool
	StudyCreatedByWeb            bool
	StudyEnrollmentResultByEmail bool
	StudyEnrollmentResultByWeb   bool
	StudyUpdatedByEmail          bool
	StudyUpdatedByWeb            bool

	// Tags and Zones are opaque association sets to reference entities.
	Tags  []Tag  `gorm:"many2many:account_tags"`
	Zones []Zone `gorm:"many2many:account_zones"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time
}

// TokenMatches reports whether the given check token equals the current one.
// An empty stored token never matches.
func (a *Account) TokenMatches(token string) bool {
	return a.EmailCheckToken != "" && a.EmailCheckToken == token
}

// CompleteSignUp marks the email as verified and records the join time.
// Calling it on an already verified account is a no-op.
func (a *Account) CompleteSignUp() {
	if a.EmailVerified {
		return
	}
	a.EmailVerified = true
	a.JoinedAt = time.Now()
}
