package api

import (
	"context"
	"net/http"

	"clinica/models"
)

// GetMe fetches the authenticated user's own profile.
func (c *Client) GetMe(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Register creates a new patient account. No session results from this call;
// the user signs in afterwards.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

// ChangePassword rotates the signed-in user's password. The current session
// token stays valid.
func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/users/me/change-password", nil, req, nil)
}
