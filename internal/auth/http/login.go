package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/auth/service"
	"github.com/aussiebroadwan/lectern/pkg/authsdk"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

type LoginHandler struct {
	Gateway Gateway
}

// ServeHTTP handles the login endpoint.
//
//	@Summary		Log in with username and password
//	@Description	Verifies the credentials and issues an access and a refresh token.
//	@Description	A wrong username and a wrong password produce the same response.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"User information and tokens"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid username or password"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/user/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest,
			"username and password are required").WriteError(w)
		return
	}

	res, err := h.Gateway.Login(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		authsdk.ErrInvalidCredentials.WriteError(w)
		return
	case err != nil:
		log.Error("login failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		UserInfo: authsdk.UserInfo{
			ID:       res.Identity.ID,
			FullName: res.Identity.FullName,
			Username: res.Identity.Username,
			Email:    res.Identity.Email,
		},
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}
