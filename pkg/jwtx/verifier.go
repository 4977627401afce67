package jwtx

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// MaxTokenLength bounds the input accepted by Verify. Legitimate tokens are
// a few hundred bytes.
const MaxTokenLength = 4096

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string, want TokenType) (Claims, error)
}

// Verification failures. Every error returned by Verify matches exactly one
// of these with errors.Is.
var (
	ErrSignatureInvalid = errors.New("jwtx: signature invalid")
	ErrExpired          = errors.New("jwtx: token expired")
	ErrMalformedClaims  = errors.New("jwtx: malformed claims")
	ErrWrongTokenType   = errors.New("jwtx: wrong token type")
)

// Verify checks the signature first, then expiry, then claim shape. Input is
// treated as untrusted: anything not signed with our secret is
// ErrSignatureInvalid. A token we signed whose claims fail to decode is
// ErrMalformedClaims.
func (h *HS256) Verify(tokenStr string, want TokenType) (Claims, error) {
	if tokenStr == "" || len(tokenStr) > MaxTokenLength {
		return Claims{}, ErrSignatureInvalid
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(h.now),
		jwt.WithLeeway(h.leeway),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) && h.signedByUs(tokenStr) {
			return Claims{}, ErrMalformedClaims
		}
		return Claims{}, classify(err)
	}

	if claims.Subject == "" {
		return Claims{}, ErrMalformedClaims
	}
	if claims.Type != want {
		return Claims{}, ErrWrongTokenType
	}

	return claims, nil
}

// classify maps jwt parse errors onto our taxonomy. The jwt package joins
// errors, so the more specific checks come first.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformedClaims
	}
}

// signedByUs checks only the HS256 signature segment, for tokens the parser
// rejected before reaching its own signature check.
func (h *HS256) signedByUs(tokenStr string) bool {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return false
	}
	sig, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil || len(sig) == 0 {
		return false
	}
	return jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, h.secret) == nil
}
