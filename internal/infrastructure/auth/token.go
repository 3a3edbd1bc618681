package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the backend-issued JWT claims the terminal cares about.
// The terminal never verifies the signature - that is the backend's job -
// it only inspects expiry and identity to avoid sending requests that are
// certain to fail with 401.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Inspect parses a session token without verifying its signature and
// returns its claims. Returns ErrExpiredToken when the token's expiry has
// passed.
func Inspect(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return claims, ErrExpiredToken
	}
	return claims, nil
}

// IsUsable reports whether the token parses and has not expired
func IsUsable(token string) bool {
	_, err := Inspect(token)
	return err == nil
}
