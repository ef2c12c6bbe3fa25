package api

import (
	"context"
	"net/http"

	"clinica/models"
)

// GetSettings reads the caller's server-side settings.
func (c *Client) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	if err := c.do(ctx, http.MethodGet, "/settings/me", nil, nil, &s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// UpdateSettings writes the caller's server-side settings.
func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) error {
	return c.do(ctx, http.MethodPut, "/settings/me", nil, s, nil)
}
