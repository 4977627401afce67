package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/lectern/internal/auth/domain"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// Credentials is the part of CredentialStore the gateway depends on.
type Credentials interface {
	VerifyCredentials(ctx context.Context, username, password string) (*domain.Identity, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// Tokens is the part of TokenService the gateway depends on.
type Tokens interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	Verify(token string, want jwtx.TokenType) (string, error)
}

// AuthGateway composes credentials and tokens into the login and
// token-check flows. It keeps no state between calls.
type AuthGateway struct {
	Credentials Credentials
	Tokens      Tokens
}

// Login returns ErrAuthenticationFailed for any bad username/password
// combination. Other errors are infrastructure failures.
func (g *AuthGateway) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	id, err := g.Credentials.VerifyCredentials(ctx, username, password)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if id == nil {
		l.Info("login failed")
		return domain.LoginResult{}, ErrAuthenticationFailed
	}

	access, err := g.Tokens.IssueAccessToken(id.Username)
	if err != nil {
		l.Error("failed to sign access token", slog.Any("error", err))
		return domain.LoginResult{}, err
	}
	refresh, err := g.Tokens.IssueRefreshToken(id.Username)
	if err != nil {
		l.Error("failed to sign refresh token", slog.Any("error", err))
		return domain.LoginResult{}, err
	}

	l.Info("login succeeded", slog.Int64("user_id", id.ID))
	return domain.LoginResult{
		Identity:     *id,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// CheckToken validates an access token and confirms its subject still
// exists. Every token problem is reported in the result; the error is only
// set when the credential store cannot be queried.
func (g *AuthGateway) CheckToken(ctx context.Context, token string) (domain.TokenCheckResult, error) {
	subject, err := g.Tokens.Verify(token, jwtx.TypeAccess)
	if err != nil {
		return domain.TokenCheckResult{Reason: reasonFor(err)}, nil
	}

	ok, err := g.Credentials.Exists(ctx, subject)
	if err != nil {
		slogx.FromContext(ctx).Error("subject lookup failed", slog.Any("error", err))
		return domain.TokenCheckResult{}, err
	}
	if !ok {
		return domain.TokenCheckResult{Reason: domain.ReasonSubjectNotFound}, nil
	}

	return domain.TokenCheckResult{Valid: true, Subject: subject}, nil
}

// Authenticate adapts CheckToken for bearer authentication middleware.
func (g *AuthGateway) Authenticate(ctx context.Context, token string) (string, bool, error) {
	res, err := g.CheckToken(ctx, token)
	if err != nil {
		return "", false, err
	}
	return res.Subject, res.Valid, nil
}

func reasonFor(err error) domain.TokenInvalidReason {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return domain.ReasonExpired
	case errors.Is(err, jwtx.ErrMalformedClaims):
		return domain.ReasonMalformedClaims
	case errors.Is(err, jwtx.ErrWrongTokenType):
		return domain.ReasonWrongTokenType
	default:
		return domain.ReasonSignatureInvalid
	}
}
