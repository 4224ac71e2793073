package usecase

import "context"

// Notifier delivers a rendered message to a destination address.
// Dispatch is best effort: the workflows log delivery failures but never
// roll back the account state change that preceded them.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LinkVars is the variable set handed to the message renderer for the
// confirmation and login-link emails. The usecase supplies the variables,
// never the rendering engine.
type LinkVars struct {
	Host     string
	Link     string
	Nickname string
	LinkName string
	Message  string
}

// MessageRenderer renders the body of a link email from the given variables.
type MessageRenderer interface {
	RenderLink(vars LinkVars) (string, error)
}

// PasswordHasher is a pluggable one-way password hashing scheme.
type PasswordHasher interface {
	// Hash returns the one-way hash of the password.
	Hash(password string) (string, error)

	// Matches reports whether password matches the encoded hash.
	// Implementations should take comparable time for empty or malformed
	// encoded values so lookup misses are not observable through timing.
	Matches(encoded, password string) bool
}

// TokenSource produces unguessable opaque tokens. Generation fails only on
// entropy-source exhaustion, which is fatal and never retried with weaker
// randomness.
type TokenSource interface {
	Generate() (string, error)
}

// AccessTokenGenerator signs short-lived access tokens for an authenticated
// principal.
type AccessTokenGenerator interface {
	GenerateToken(accountID uint, nickname string) (string, error)
}
