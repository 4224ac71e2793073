// Package hash provides the bcrypt password hashing scheme.
package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no real hash is available, so a lookup
// miss costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Bcrypt implements the usecase.PasswordHasher interface with bcrypt at the
// default cost.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt hasher. A cost of 0 selects bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of the password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches reports whether password matches the encoded hash. An empty
// encoded value is compared against a dummy hash so the caller's timing does
// not reveal whether the account exists.
func (b *Bcrypt) Matches(encoded, password string) bool {
	if encoded == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
