// Package jwtmw provides JWT access-token generation and the Gin middleware
// that guards authenticated routes.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// RoleUser is the fixed authority granted to every authenticated principal.
const RoleUser = "user"

// Generator signs access tokens for authenticated accounts.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and
// expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT carrying the account's identity and the
// fixed "user" role.
func (g *Generator) GenerateToken(accountID uint, nickname string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      accountID,
		"exp":      time.Now().Add(g.expiration).Unix(),
		"iat":      time.Now().Unix(),
		"nickname": nickname,
		"role":     RoleUser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
