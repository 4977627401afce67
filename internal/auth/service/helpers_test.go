package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store   *sqlite.Store
	creds   *CredentialStore
	tokens  *TokenService
	gateway *AuthGateway
	clock   *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hasher, err := cryptox.NewPasswordHasher(cryptox.AlgorithmBcrypt, bcrypt.MinCost, []byte("test-pepper"))
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	signer, err := jwtx.NewHS256([]byte("service-test-secret-0123456789abcdef"), jwtx.WithClock(clock.Now))
	require.NoError(t, err)

	creds := &CredentialStore{Store: st, Hasher: hasher, Now: clock.Now}
	tokens := &TokenService{
		Signer:     signer,
		Verifier:   signer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
		Now:        clock.Now,
	}

	return &fixture{
		store:   st,
		creds:   creds,
		tokens:  tokens,
		gateway: &AuthGateway{Credentials: creds, Tokens: tokens},
		clock:   clock,
	}
}

func (f *fixture) register(t *testing.T, fullName, username, email, password string) int64 {
	t.Helper()
	id, err := f.creds.Register(context.Background(), domain.RegisterParams{
		FullName: fullName,
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return id
}
