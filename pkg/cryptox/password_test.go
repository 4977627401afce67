package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T, algorithm string, pepper []byte) *PasswordHasher {
	t.Helper()
	cost := bcrypt.MinCost
	if algorithm == AlgorithmArgon2id {
		cost = 1
	}
	h, err := NewPasswordHasher(algorithm, cost, pepper)
	require.NoError(t, err)
	return h
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("", 0, nil)
	require.NoError(t, err)
	require.Equal(t, AlgorithmBcrypt, h.Algorithm())
	require.Equal(t, DefaultBcryptCost, h.Cost())

	h, err = NewPasswordHasher("Argon2id", 0, nil)
	require.NoError(t, err)
	require.Equal(t, AlgorithmArgon2id, h.Algorithm())
	require.Equal(t, DefaultArgon2Iterations, h.Cost())

	_, err = NewPasswordHasher("md5", 0, nil)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = NewPasswordHasher(AlgorithmBcrypt, 99, nil)
	require.ErrorIs(t, err, ErrInvalidCost)

	_, err = NewPasswordHasher(AlgorithmArgon2id, -1, nil)
	require.ErrorIs(t, err, ErrInvalidCost)
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	for _, alg := range []string{AlgorithmBcrypt, AlgorithmArgon2id} {
		t.Run(alg, func(t *testing.T) {
			h := newTestHasher(t, alg, []byte("pepper"))

			hash, err := h.Hash("correct horse battery staple")
			require.NoError(t, err)
			require.NotContains(t, hash, "correct horse")

			require.NoError(t, h.Verify("correct horse battery staple", hash))
			require.ErrorIs(t, h.Verify("wrong", hash), ErrPasswordMismatch)
			require.ErrorIs(t, h.Verify("", hash), ErrPasswordMismatch)
		})
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt, nil)

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt, nil)
	long := strings.Repeat("a", 200)

	hash, err := h.Hash(long)
	require.NoError(t, err)
	require.NoError(t, h.Verify(long, hash))
	// Differs only after byte 72, which raw bcrypt would ignore.
	require.ErrorIs(t, h.Verify(strings.Repeat("a", 199)+"b", hash), ErrPasswordMismatch)
}

func TestPasswordHasher_PepperMatters(t *testing.T) {
	h1 := newTestHasher(t, AlgorithmBcrypt, []byte("one"))
	h2 := newTestHasher(t, AlgorithmBcrypt, []byte("two"))

	hash, err := h1.Hash("secret")
	require.NoError(t, err)
	require.ErrorIs(t, h2.Verify("secret", hash), ErrPasswordMismatch)
}

func TestPasswordHasher_VerifiesAcrossAlgorithms(t *testing.T) {
	bc := newTestHasher(t, AlgorithmBcrypt, nil)
	ar := newTestHasher(t, AlgorithmArgon2id, nil)

	hash, err := ar.Hash("secret")
	require.NoError(t, err)
	require.NoError(t, bc.Verify("secret", hash))

	hash, err = bc.Hash("secret")
	require.NoError(t, err)
	require.NoError(t, ar.Verify("secret", hash))
}

func TestPasswordHasher_InvalidHash(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt, nil)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain text", "password"},
		{"unknown scheme", "$md5$abc"},
		{"argon2 too few parts", "$argon2id$v=19$m=19456,t=2,p=1$salt"},
		{"argon2 wrong version", "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"argon2 bad params", "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA"},
		{"argon2 bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bcrypt truncated", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("secret", tt.hash), ErrInvalidHash)
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	p, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, p, 16)

	q, err := GeneratePassword()
	require.NoError(t, err)
	require.NotEqual(t, p, q)
}
