package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges a username and password for a token pair. A wrong
// username and a wrong password both yield ErrInvalidCredentials.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/user/login", LoginRequest{
		Username: username,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}
	return &login, nil
}

// CheckToken asks the service whether token is a valid access token. An
// invalid token is not an error; inspect IsValid and Error instead.
func (c *SDKClient) CheckToken(ctx context.Context, token string) (*CheckTokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/user/auth", CheckTokenRequest{Token: token}, nil)
	if err != nil {
		return nil, err
	}

	var check CheckTokenResponse
	if err := decodeJSON(resp, &check, http.StatusOK); err != nil {
		return nil, err
	}
	return &check, nil
}
