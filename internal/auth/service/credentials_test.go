package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegister_Duplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice A", "alice", "a@x.com", "pw123")

	t.Run("same username", func(t *testing.T) {
		_, err := f.creds.Register(ctx, domain.RegisterParams{
			FullName: "Other", Username: "alice", Email: "other@x.com", Password: "pw",
		})
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})

	t.Run("same email different username", func(t *testing.T) {
		_, err := f.creds.Register(ctx, domain.RegisterParams{
			FullName: "Other", Username: "alice2", Email: "a@x.com", Password: "pw",
		})
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tests := []struct {
		name string
		p    domain.RegisterParams
	}{
		{"missing full name", domain.RegisterParams{Username: "u", Email: "u@x.com", Password: "pw"}},
		{"missing username", domain.RegisterParams{FullName: "U", Email: "u@x.com", Password: "pw"}},
		{"padded username", domain.RegisterParams{FullName: "U", Username: " u ", Email: "u@x.com", Password: "pw"}},
		{"bad email", domain.RegisterParams{FullName: "U", Username: "u", Email: "nope", Password: "pw"}},
		{"missing password", domain.RegisterParams{FullName: "U", Username: "u", Email: "u@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.creds.Register(context.Background(), tt.p)
			require.ErrorIs(t, err, ErrInvalidRegistration)
		})
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.register(t, "Alice A", "alice", "a@x.com", "pw123")

	u, err := f.store.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, "pw123", u.PasswordHash)
	require.NotContains(t, u.PasswordHash, "pw123")
	require.True(t, f.clock.Now().Equal(u.CreatedAt))
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.register(t, "Alice A", "alice", "a@x.com", "pw123")

	t.Run("match", func(t *testing.T) {
		got, err := f.creds.VerifyCredentials(ctx, "alice", "pw123")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, id, got.ID)
		require.Equal(t, "Alice A", got.FullName)
		require.Equal(t, "alice", got.Username)
		require.Equal(t, "a@x.com", got.Email)
		require.True(t, f.clock.Now().Equal(got.Created))
	})

	t.Run("wrong password", func(t *testing.T) {
		got, err := f.creds.VerifyCredentials(ctx, "alice", "wrong")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("unknown user looks the same", func(t *testing.T) {
		got, err := f.creds.VerifyCredentials(ctx, "nonexistent", "anything")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		got, err := f.creds.VerifyCredentials(ctx, "Alice", "pw123")
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestVerifyCredentials_CorruptHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.store.Users().CreateUser(ctx, domain.User{
		FullName: "Broken", Username: "broken", Email: "b@x.com", PasswordHash: "not-a-hash",
	})
	require.NoError(t, err)

	got, err := f.creds.VerifyCredentials(ctx, "broken", "anything")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice A", "alice", "a@x.com", "pw123")

	ok, err := f.creds.Exists(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.creds.Exists(ctx, "bob")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCredentialStore_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Close())

	_, err := f.creds.VerifyCredentials(ctx, "alice", "pw")
	require.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = f.creds.Exists(ctx, "alice")
	require.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = f.creds.Register(ctx, domain.RegisterParams{
		FullName: "A", Username: "a", Email: "a@x.com", Password: "pw",
	})
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// countingHasher wraps a PasswordHasher and records every Verify call.
type countingHasher struct {
	PasswordHasher
	failHash bool

	mu       sync.Mutex
	verifies []string
}

func (h *countingHasher) Hash(password string) (string, error) {
	if h.failHash {
		return "", errors.New("hasher offline")
	}
	return h.PasswordHasher.Hash(password)
}

func (h *countingHasher) Verify(password, encodedHash string) error {
	h.mu.Lock()
	h.verifies = append(h.verifies, encodedHash)
	h.mu.Unlock()
	return h.PasswordHasher.Verify(password, encodedHash)
}

func (h *countingHasher) reset() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	got := h.verifies
	h.verifies = nil
	return got
}

func TestVerifyCredentials_OneComparisonPerAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "Alice A", "alice", "a@x.com", "pw123")

	hasher := &countingHasher{PasswordHasher: f.creds.Hasher}
	creds := &CredentialStore{Store: f.store, Hasher: hasher, Now: f.clock.Now}

	t.Run("wrong password", func(t *testing.T) {
		got, err := creds.VerifyCredentials(ctx, "alice", "wrong")
		require.NoError(t, err)
		require.Nil(t, got)
		require.Len(t, hasher.reset(), 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		got, err := creds.VerifyCredentials(ctx, "nonexistent", "anything")
		require.NoError(t, err)
		require.Nil(t, got)

		calls := hasher.reset()
		require.Len(t, calls, 1)
		require.NotEmpty(t, calls[0])
	})

	t.Run("unknown user reuses the dummy hash", func(t *testing.T) {
		_, err := creds.VerifyCredentials(ctx, "ghost1", "a")
		require.NoError(t, err)
		_, err = creds.VerifyCredentials(ctx, "ghost2", "b")
		require.NoError(t, err)

		calls := hasher.reset()
		require.Len(t, calls, 2)
		require.Equal(t, calls[0], calls[1])
	})
}

func TestVerifyCredentials_DummyHashFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	hasher := &countingHasher{PasswordHasher: f.creds.Hasher, failHash: true}
	creds := &CredentialStore{Store: f.store, Hasher: hasher, Now: f.clock.Now}

	got, err := creds.VerifyCredentials(ctx, "nonexistent", "anything")
	require.NoError(t, err)
	require.Nil(t, got)

	calls := hasher.reset()
	require.Len(t, calls, 1)
	require.Equal(t, fallbackDummyHash, calls[0])

	// The fallback must cost a real comparison, not fail as unreadable.
	require.ErrorIs(t, f.creds.Hasher.Verify("anything", fallbackDummyHash), cryptox.ErrPasswordMismatch)
}
