package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"

	_ "github.com/aussiebroadwan/lectern/api/lectern" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether a dependency can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Limits holds the rate limit applied to each class of endpoint.
type Limits struct {
	Login  httpx.RateLimitConfig
	Check  httpx.RateLimitConfig
	Write  httpx.RateLimitConfig
	Public httpx.RateLimitConfig
}

// DefaultLimits returns the built-in rate limit profiles.
func DefaultLimits() Limits {
	return Limits{
		Login:  httpx.StrictLimit,
		Check:  httpx.ModerateLimit,
		Write:  httpx.ModerateLimit,
		Public: httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Database Pinger
	Signer   interface{ Validate() error }

	Gateway       Gateway
	Authenticator httpx.Authenticator
	Menus         Menus
	Lectures      Lectures
	Limits        Limits

	// TrustedProxies are the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix
}

func NewRouter(buildVersion string, cors httpx.CORSConfig, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		Limits:       DefaultLimits(),
	}

	// Logging wraps CORS so rejected preflights are still logged.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.middlewares = append([]httpx.Middleware{httpx.RealIP(r.TrustedProxies)}, r.middlewares...)

	r.registerUser()
	r.registerMenu()
	r.registerLectures()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Lectern API
//	@version		0.1.0
//	@description	Authentication and lecture content service.
//	@description
//	@description				Access tokens are HS256-signed JWTs issued by /user/login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/lectern
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUser() {
	// POST /user/login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /user/login",
		httpx.Chain(&LoginHandler{Gateway: r.Gateway},
			httpx.RateLimitByIPAndJSONField(r.Limits.Login, "username"),
		),
	)

	r.Mux.Handle("POST /user/auth",
		httpx.Chain(&CheckTokenHandler{Gateway: r.Gateway},
			httpx.RateLimitByIP(r.Limits.Check),
		),
	)
}

func (r *Router) registerMenu() {
	h := &MenuHandler{Menus: r.Menus}

	r.Mux.Handle("GET /menu-items",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)

	r.Mux.Handle("POST /subjects/add", r.secured(http.HandlerFunc(h.HandleAddSubject)))
	r.Mux.Handle("POST /lectures/add", r.secured(http.HandlerFunc(h.HandleAddLecture)))
}

func (r *Router) registerLectures() {
	h := &LecturesHandler{Lectures: r.Lectures}

	r.Mux.Handle("POST /lectures/data/add", r.secured(http.HandlerFunc(h.HandleAddPage)))
	r.Mux.Handle("POST /lectures/data/get",
		httpx.Chain(http.HandlerFunc(h.HandleGetPages),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.Database, r.Signer, r.Menus),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}

// secured requires a bearer access token and limits writes per user.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.Authenticator),
		httpx.RateLimitBySubject(r.Limits.Write),
	)
}
