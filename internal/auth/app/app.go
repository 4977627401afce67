package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/lectern/internal/auth/http"
	"github.com/aussiebroadwan/lectern/internal/auth/service"
	"github.com/aussiebroadwan/lectern/internal/auth/store"
	"github.com/aussiebroadwan/lectern/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *jwtx.HS256

	// Services
	credentials *service.CredentialStore
	tokens      *service.TokenService
	gateway     *service.AuthGateway
	menus       *service.MenuService
	lectures    *service.LectureService

	// HTTP server
	proxies []netip.Prefix
	server  *http.Server
	router  *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// cfg must already be validated.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	signer, err := jwtx.NewHS256([]byte(cfg.Secret()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	app.proxies, err = httpx.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trusted proxies: %w", err)
	}

	app.db, app.credentials, err = OpenCredentials(cfg, app.logger)
	if err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// NewLogger builds the process logger from the logging settings.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "lectern",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenCredentials opens the database, applies migrations and builds the
// credential store on top of it. The caller owns the returned store.
func OpenCredentials(cfg Config, logger *slog.Logger) (store.Store, *service.CredentialStore, error) {
	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	hasher, err := cryptox.NewPasswordHasher(cfg.PasswordAlgorithm, cfg.HashCost, pepper)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied successfully",
		slog.String("path", cfg.DatabaseFile),
		slog.String("password_algorithm", hasher.Algorithm()),
		slog.Bool("pepper", len(pepper) > 0),
	)

	return db, &service.CredentialStore{Store: db, Hasher: hasher}, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("lectern starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down lectern...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("lectern stopped")
	return nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokens = &service.TokenService{
		Signer:     app.signer,
		Verifier:   app.signer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	app.gateway = &service.AuthGateway{
		Credentials: app.credentials,
		Tokens:      app.tokens,
	}
	app.menus = &service.MenuService{Path: app.cfg.MenuFile}
	app.lectures = &service.LectureService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		httpx.CORSConfig{AllowedOrigins: app.cfg.AllowedOrigins, MaxAge: 10 * time.Minute},
		app.logger,
	)

	router.Database = app.db
	router.Signer = app.signer
	router.Gateway = app.gateway
	router.Authenticator = app.gateway
	router.Menus = app.menus
	router.Lectures = app.lectures
	router.Limits = httpapi.Limits{
		Login:  app.cfg.RateLimits.Login,
		Check:  app.cfg.RateLimits.Check,
		Write:  app.cfg.RateLimits.Write,
		Public: app.cfg.RateLimits.Public,
	}
	router.TrustedProxies = app.proxies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
