package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// Authenticator resolves a bearer token to a principal. ok is false when the
// token is not acceptable; err is reserved for failures to decide at all.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (subject string, ok bool, err error)
}

// AuthnMiddleware requires a valid bearer access token and stores its
// subject on the request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, found := BearerToken(r)
			if !found {
				writeBearerError(w, "missing bearer token")
				return
			}

			subject, ok, err := a.Authenticate(ctx, raw)
			if err != nil {
				log.Error("bearer authentication unavailable", slog.Any("error", err))
				WriteError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "Authentication is temporarily unavailable.")
				return
			}
			if !ok {
				log.Info("bearer token rejected", slog.String("path", r.URL.Path))
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = WithSubject(ctx, subject)
			ctx = slogx.With(ctx, slog.String("subject", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
