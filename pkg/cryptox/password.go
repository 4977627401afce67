package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Default work factors. bcrypt cost 10 verifies in tens of milliseconds on
// commodity hardware.
const (
	DefaultBcryptCost       = bcrypt.DefaultCost
	DefaultArgon2Iterations = 2
)

// Argon2id parameters other than the iteration count.
const (
	argon2Memory      = 19 * 1024 // KiB
	argon2Parallelism = 1
	argon2KeyLength   = 32
	argon2SaltLength  = 16
)

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid hash format")
	ErrUnknownAlgorithm = errors.New("cryptox: unknown password algorithm")
	ErrInvalidCost      = errors.New("cryptox: invalid cost factor")
)

// PasswordHasher hashes new passwords with one configured algorithm and
// verifies hashes produced by any supported algorithm, so switching the
// algorithm does not lock out existing users.
//
// Passwords are pre-hashed with HMAC-SHA256 keyed by the pepper. That keeps
// the pepper out of the stored hash and keeps bcrypt input under its 72 byte
// limit regardless of password length.
type PasswordHasher struct {
	algorithm string
	cost      int
	pepper    []byte
}

// NewPasswordHasher validates the algorithm and cost. A zero cost selects the
// algorithm default. For argon2id the cost is the iteration count.
func NewPasswordHasher(algorithm string, cost int, pepper []byte) (*PasswordHasher, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = AlgorithmBcrypt
	}

	switch algorithm {
	case AlgorithmBcrypt:
		if cost == 0 {
			cost = DefaultBcryptCost
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	case AlgorithmArgon2id:
		if cost == 0 {
			cost = DefaultArgon2Iterations
		}
		if cost < 1 || cost > 64 {
			return nil, fmt.Errorf("%w: argon2id iterations %d outside [1, 64]", ErrInvalidCost, cost)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &PasswordHasher{
		algorithm: algorithm,
		cost:      cost,
		pepper:    append([]byte(nil), pepper...),
	}, nil
}

func (h *PasswordHasher) Algorithm() string { return h.algorithm }
func (h *PasswordHasher) Cost() int         { return h.cost }

// Hash returns a self-describing encoded hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	key := h.prehash(password)

	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2id(key)
	}

	out, err := bcrypt.GenerateFromPassword(key, h.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify compares password against encodedHash in constant time. It returns
// nil on match, ErrPasswordMismatch on mismatch and ErrInvalidHash when the
// stored value cannot be parsed.
func (h *PasswordHasher) Verify(password, encodedHash string) error {
	key := h.prehash(password)

	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(key, encodedHash)
	case strings.HasPrefix(encodedHash, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), key)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ErrPasswordMismatch
		default:
			return fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
	default:
		return ErrInvalidHash
	}
}

func (h *PasswordHasher) prehash(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}

func (h *PasswordHasher) hashArgon2id(key []byte) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	iterations := uint32(h.cost) // #nosec G115 - bounded by NewPasswordHasher
	hash := argon2.IDKey(key, salt, iterations, argon2Memory, argon2Parallelism, argon2KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		iterations,
		argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// verifyArgon2id checks a PHC-format hash: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
func verifyArgon2id(key []byte, encodedHash string) error {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrInvalidHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidHash, parts[2])
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	if iters == 0 || par == 0 {
		return fmt.Errorf("%w: zero parameters", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return fmt.Errorf("%w: digest", ErrInvalidHash)
	}

	computed := argon2.IDKey(key, salt, iters, mem, par, uint32(len(expected))) // #nosec G115

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

// GeneratePassword returns a random 16 character alphanumeric password.
func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 16

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}
