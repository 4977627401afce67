package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

const testSecret = "config-test-secret-0123456789abcdef"

func load(t *testing.T, environ map[string]string) Config {
	t.Helper()
	cfg, err := loadConfig(env.Options{Environment: environ})
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := load(t, map[string]string{"LECTERN_SIGNING_SECRET": testSecret})
	require.NoError(t, cfg.Validate())

	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, "bcrypt", cfg.PasswordAlgorithm)
	require.Zero(t, cfg.HashCost)
	require.Equal(t, "lectern.db", cfg.DatabaseFile)
	require.Equal(t, "Lectures.json", cfg.MenuFile)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, httpx.StrictLimit, cfg.RateLimits.Login)
	require.Equal(t, httpx.PublicLimit, cfg.RateLimits.Public)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Parallel()

	cfg := load(t, map[string]string{
		"LECTERN_SIGNING_SECRET":           testSecret,
		"LECTERN_ACCESS_TOKEN_TTL":         "5m",
		"LECTERN_PASSWORD_ALGORITHM":       "argon2id",
		"LECTERN_HASH_COST":                "3",
		"LECTERN_ALLOWED_ORIGINS":          "https://a.example,https://b.example",
		"LECTERN_RATELIMIT_LOGIN_REQUESTS": "2",
		"LECTERN_RATELIMIT_LOGIN_WINDOW":   "1h",
		"LECTERN_TRUSTED_PROXIES":          "10.0.0.0/8,127.0.0.1",
		"PORT":                             "9090",
	})
	require.NoError(t, cfg.Validate())

	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, "argon2id", cfg.PasswordAlgorithm)
	require.Equal(t, 3, cfg.HashCost)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)

	// Unset fields of a tuned limit keep the profile value.
	require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Hour, Burst: httpx.StrictLimit.Burst}, cfg.RateLimits.Login)
	require.Equal(t, httpx.ModerateLimit, cfg.RateLimits.Check)
}

func TestLoadConfig_SecretFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte(testSecret+"\n"), 0o600))

	cfg := load(t, map[string]string{"LECTERN_SIGNING_SECRET_FILE": path})
	require.NoError(t, cfg.Validate())
	require.Equal(t, testSecret, cfg.Secret())
}

func TestLoadConfig_SecretFileMissing(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(env.Options{Environment: map[string]string{
		"LECTERN_SIGNING_SECRET_FILE": filepath.Join(t.TempDir(), "absent"),
	}})
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			SigningSecret:     testSecret,
			AccessTokenTTL:    15 * time.Minute,
			RefreshTokenTTL:   time.Hour,
			PasswordAlgorithm: "bcrypt",
			DatabaseFile:      "lectern.db",
			MenuFile:          "Lectures.json",
			Port:              8080,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing secret", func(c *Config) { c.SigningSecret = "" }, ErrMissingSecret},
		{"short secret", func(c *Config) { c.SigningSecret = "short" }, jwtx.ErrWeakSecret},
		{"both secrets", func(c *Config) { c.SigningSecretFile = testSecret }, ErrConflictingSecret},
		{"refresh shorter than access", func(c *Config) { c.RefreshTokenTTL = time.Minute }, nil},
		{"unknown algorithm", func(c *Config) { c.PasswordAlgorithm = "md5" }, nil},
		{"bad cost", func(c *Config) { c.HashCost = 99 }, nil},
		{"bad port", func(c *Config) { c.Port = 0 }, nil},
		{"no database", func(c *Config) { c.DatabaseFile = "" }, nil},
		{"bad trusted proxy", func(c *Config) { c.TrustedProxies = []string{"proxy.internal"} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			switch {
			case tt.name == "valid":
				require.NoError(t, err)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.Error(t, err)
			}
		})
	}
}

func TestConfigString_MasksSecret(t *testing.T) {
	t.Parallel()

	cfg := Config{SigningSecret: testSecret, Port: 8080}
	require.NotContains(t, cfg.String(), testSecret)
	require.Contains(t, cfg.String(), "<redacted>")
	require.Contains(t, Config{}.String(), "<unset>")
}
