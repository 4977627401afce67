package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HS256 secret accepted, matching the
// output size of SHA-256.
const MinSecretLength = 32

var ErrWeakSecret = fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretLength)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// Option configures an HS256 signer/verifier.
type Option func(*HS256)

// WithClock overrides the time source used to validate exp.
func WithClock(now func() time.Time) Option {
	return func(h *HS256) { h.now = now }
}

// WithLeeway allows for clock skew when validating exp.
func WithLeeway(d time.Duration) Option {
	return func(h *HS256) { h.leeway = d }
}

// HS256 signs and verifies tokens with a single shared secret. It is both
// the Signer and the Verifier.
type HS256 struct {
	secret []byte
	now    func() time.Time
	leeway time.Duration
}

// NewHS256 copies secret, so the caller may wipe its own buffer.
func NewHS256(secret []byte, opts ...Option) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	h := &HS256{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign serialises claims as header.payload.signature.
func (h *HS256) Sign(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", ErrMalformedClaims
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Validate does a quick sanity check that a usable secret is loaded.
func (h *HS256) Validate() error {
	if len(h.secret) < MinSecretLength {
		return errors.New("jwtx: signer has no usable secret")
	}
	return nil
}
