package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/authsdk"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database, the token signer and the menu file
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	db Pinger,
	signer interface{ Validate() error },
	menus Menus,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Menu:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		fail := func(check *string, name string, err error) {
			// Details go to the log only; probes are unauthenticated.
			log.Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
			*check = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := db.Ping(r.Context()); err != nil {
			fail(&checks.Database, "database", err)
		}
		if err := signer.Validate(); err != nil {
			fail(&checks.Signer, "signer", err)
		}
		if _, err := menus.Menu(r.Context()); err != nil {
			fail(&checks.Menu, "menu", err)
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
