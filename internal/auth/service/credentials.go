package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/store"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// PasswordHasher is implemented by *cryptox.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// CredentialStore owns user records and the password hashing policy.
type CredentialStore struct {
	Store  store.Store
	Hasher PasswordHasher
	Now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// Register hashes the password and stores a new user, returning its id.
func (s *CredentialStore) Register(ctx context.Context, p domain.RegisterParams) (int64, error) {
	l := slogx.FromContext(ctx)

	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	if err := validateRegistration(p); err != nil {
		return 0, err
	}

	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		return 0, fmt.Errorf("credentials: hash password: %w", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		FullName:     p.FullName,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("registration conflict", slog.String("username", p.Username))
			return 0, ErrDuplicateIdentity
		}
		l.Error("failed to create user", slog.Any("error", err))
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	l.Info("user registered", slog.Int64("user_id", id), slog.String("username", p.Username))
	return id, nil
}

func validateRegistration(p domain.RegisterParams) error {
	switch {
	case p.FullName == "":
		return fmt.Errorf("%w: full name is required", ErrInvalidRegistration)
	case p.Username == "" || strings.TrimSpace(p.Username) != p.Username:
		return fmt.Errorf("%w: username must be non-empty without surrounding spaces", ErrInvalidRegistration)
	case p.Email == "" || !strings.Contains(p.Email, "@"):
		return fmt.Errorf("%w: email is invalid", ErrInvalidRegistration)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidRegistration)
	}
	return nil
}

// VerifyCredentials returns the identity when password matches the stored
// hash. Unknown users and wrong passwords both yield (nil, nil) and cost a
// hash comparison each, so neither the result nor the latency tells them
// apart. A non-nil error means the store could not be read.
func (s *CredentialStore) VerifyCredentials(ctx context.Context, username, password string) (*domain.Identity, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Hasher.Verify(password, s.dummy(ctx))
			l.Debug("credential check failed", slog.String("cause", "unknown_user"))
			return nil, nil
		}
		l.Error("failed to load user", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	switch err := s.Hasher.Verify(password, u.PasswordHash); {
	case err == nil:
		id := u.Identity()
		return &id, nil
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		l.Debug("credential check failed", slog.String("cause", "password_mismatch"), slog.Int64("user_id", u.ID))
	default:
		l.Error("stored password hash unreadable", slog.Int64("user_id", u.ID), slog.Any("error", err))
	}
	return nil, nil
}

// Exists reports whether username is a registered principal.
func (s *CredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	ok, err := s.Store.Users().UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ok, nil
}

// fallbackDummyHash is a well-formed bcrypt hash (cost 10) used when the
// configured hasher cannot produce a dummy of its own.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// dummy is a hash of a random password, compared against when the user does
// not exist. It is never empty.
func (s *CredentialStore) dummy(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		s.dummyHash = fallbackDummyHash

		pw, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			slogx.FromContext(ctx).Warn("dummy password generation failed, using fallback hash", slog.Any("error", err))
			return
		}
		h, err := s.Hasher.Hash(pw)
		if err != nil || h == "" {
			slogx.FromContext(ctx).Warn("dummy hash failed, using fallback hash", slog.Any("error", err))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *CredentialStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
