package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/jwtx"
)

// TokenService mints and verifies stateless session tokens.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, jwtx.TypeAccess, s.AccessTTL, jwtx.DefaultAccessTokenTTL)
}

func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, jwtx.TypeRefresh, s.RefreshTTL, jwtx.DefaultRefreshTokenTTL)
}

func (s *TokenService) issue(subject string, typ jwtx.TokenType, ttl, fallback time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = fallback
	}
	tok, err := s.Signer.Sign(jwtx.NewClaims(subject, typ, ttl, s.now()))
	if err != nil {
		return "", fmt.Errorf("token: sign %s: %w", typ, err)
	}
	return tok, nil
}

// Verify returns the subject of a valid token of the wanted type. Errors
// are the jwtx verification sentinels.
func (s *TokenService) Verify(token string, want jwtx.TokenType) (string, error) {
	claims, err := s.Verifier.Verify(token, want)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
