package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/lectern/pkg/authsdk"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

type CheckTokenHandler struct {
	Gateway Gateway
}

// ServeHTTP handles the token check endpoint.
//
//	@Summary		Check an access token
//	@Description	Reports whether the token is a valid, unexpired access token whose subject still exists.
//	@Description	Invalid tokens are not an error: the response is 200 with isValid false and the reason.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CheckTokenRequest	true	"Token to check"
//	@Success		200		{object}	authsdk.CheckTokenResponse	"Validity and reason"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request"
//	@Failure		500		{object}	authsdk.ErrorResponse		"User store unavailable"
//	@Router			/user/auth [post].
func (h *CheckTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.CheckTokenRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.Gateway.CheckToken(ctx, req.Token)
	if err != nil {
		slogx.FromContext(ctx).Error("token check failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.CheckTokenResponse{
		IsValid: res.Valid,
		Error:   string(res.Reason),
	})
}
