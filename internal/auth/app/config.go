package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

var (
	ErrMissingSecret     = errors.New("app: LECTERN_SIGNING_SECRET or LECTERN_SIGNING_SECRET_FILE is required")
	ErrConflictingSecret = errors.New("app: set only one of LECTERN_SIGNING_SECRET and LECTERN_SIGNING_SECRET_FILE")
)

// RateLimits groups the per-endpoint-class limits. Each can be tuned with
// LECTERN_RATELIMIT_<CLASS>_{REQUESTS,WINDOW,BURST}.
type RateLimits struct {
	Login  httpx.RateLimitConfig `envPrefix:"LOGIN_"`
	Check  httpx.RateLimitConfig `envPrefix:"CHECK_"`
	Write  httpx.RateLimitConfig `envPrefix:"WRITE_"`
	Public httpx.RateLimitConfig `envPrefix:"PUBLIC_"`
}

type Config struct {
	SigningSecret     string `env:"LECTERN_SIGNING_SECRET"`
	SigningSecretFile string `env:"LECTERN_SIGNING_SECRET_FILE,file"` // holds the file contents after parsing

	AccessTokenTTL  time.Duration `env:"LECTERN_ACCESS_TOKEN_TTL"  envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"LECTERN_REFRESH_TOKEN_TTL" envDefault:"168h"`

	PasswordAlgorithm string `env:"LECTERN_PASSWORD_ALGORITHM" envDefault:"bcrypt"`
	HashCost          int    `env:"LECTERN_HASH_COST"` // 0 selects the algorithm default
	PepperFile        string `env:"LECTERN_PEPPER_FILE"`

	DatabaseFile   string   `env:"LECTERN_DATABASE_FILE"   envDefault:"lectern.db"`
	MenuFile       string   `env:"LECTERN_MENU_FILE"       envDefault:"Lectures.json"`
	AllowedOrigins []string `env:"LECTERN_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Forwarding headers are honoured only from these addresses or CIDRs.
	TrustedProxies []string `env:"LECTERN_TRUSTED_PROXIES" envSeparator:","`

	RateLimits RateLimits `envPrefix:"LECTERN_RATELIMIT_"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the configuration from the process environment. The
// result is not validated; call Validate or ValidateStorage.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	cfg := Config{
		RateLimits: RateLimits{
			Login:  httpx.StrictLimit,
			Check:  httpx.ModerateLimit,
			Write:  httpx.ModerateLimit,
			Public: httpx.PublicLimit,
		},
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Secret returns the effective signing secret.
func (c Config) Secret() string {
	if c.SigningSecret != "" {
		return c.SigningSecret
	}
	return strings.TrimSpace(c.SigningSecretFile)
}

// Validate checks everything the server needs before it starts.
func (c Config) Validate() error {
	if c.SigningSecret != "" && strings.TrimSpace(c.SigningSecretFile) != "" {
		return ErrConflictingSecret
	}
	secret := c.Secret()
	if secret == "" {
		return ErrMissingSecret
	}
	if len(secret) < jwtx.MinSecretLength {
		return fmt.Errorf("app: signing secret: %w", jwtx.ErrWeakSecret)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("app: token TTLs must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return errors.New("app: LECTERN_REFRESH_TOKEN_TTL must not be shorter than LECTERN_ACCESS_TOKEN_TTL")
	}
	if c.MenuFile == "" {
		return errors.New("app: LECTERN_MENU_FILE is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("app: invalid PORT %d", c.Port)
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("app: LECTERN_TRUSTED_PROXIES: %w", err)
	}

	return c.ValidateStorage()
}

// ValidateStorage checks the settings shared by the server and the
// provisioning tools: database location and password hashing.
func (c Config) ValidateStorage() error {
	if c.DatabaseFile == "" {
		return errors.New("app: LECTERN_DATABASE_FILE is required")
	}
	if _, err := cryptox.NewPasswordHasher(c.PasswordAlgorithm, c.HashCost, nil); err != nil {
		return fmt.Errorf("app: password hashing: %w", err)
	}
	return nil
}

// String renders the configuration for logs with the secret masked.
func (c Config) String() string {
	secret := "<unset>"
	if c.Secret() != "" {
		secret = "<redacted>"
	}
	return fmt.Sprintf(
		"Config{Secret:%s AccessTTL:%s RefreshTTL:%s Hash:%s/%d Database:%s Menu:%s Origins:%v Proxies:%v Env:%s Port:%d}",
		secret, c.AccessTokenTTL, c.RefreshTokenTTL, c.PasswordAlgorithm, c.HashCost,
		c.DatabaseFile, c.MenuFile, c.AllowedOrigins, c.TrustedProxies, c.Env, c.Port,
	)
}
