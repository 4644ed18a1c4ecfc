package client

import (
	"context"
	"net/http"

	"aura/models"
)

// Login exchanges credentials for a token pair and account snapshot. A 401
// here means bad credentials, not a stale session, so the call skips the
// refresh flow and the backend's message reaches the login form verbatim.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doOnce(ctx, http.MethodPost, "/auth/login", nil, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and logs it in. Like Login, failures are
// credential-shaped and never trigger a refresh.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doOnce(ctx, http.MethodPost, "/auth/register", nil, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair. It bypasses the bearer
// header path entirely, so it can never recurse into another refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.doOnce(ctx, http.MethodPost, "/auth/refresh", nil,
		models.RefreshRequest{RefreshToken: refreshToken}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session server-side. Best effort: local session
// state is cleared regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
