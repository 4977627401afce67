package jwtx

import (
	"time"

	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType marks what a token may be used for. Access tokens authorize
// requests; refresh tokens are only good for obtaining new access tokens.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the session token payload. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims

	// Type is serialised as "typ" so a refresh token cannot be replayed
	// where an access token is expected.
	Type TokenType `json:"typ,omitempty"`
}

// NewClaims builds claims for subject expiring ttl after now.
func NewClaims(subject string, typ TokenType, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Type: typ,
	}
}

// NewJTI returns a unique identifier for the "jti" claim, so two tokens
// minted in the same second for the same subject still differ.
func NewJTI() string {
	return idx.New().String()
}
