// Package token generates unguessable opaque tokens for email verification
// links and session IDs.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives 128 bits of entropy; the encoded token is a 32-character
// hex string.
const tokenBytes = 16

// Source draws tokens from crypto/rand. It is stateless and safe for
// concurrent use.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// Generate returns a fresh random token. It fails only when the entropy
// source is exhausted; that failure is fatal and must never be retried with
// weaker randomness.
func (*Source) Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("entropy source failed: %w", err)
	}
	return hex.EncodeToString(b), nil
}
