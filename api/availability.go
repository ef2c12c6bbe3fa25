package api

import (
	"context"
	"net/http"

	"clinica/models"
)

// GetMyAvailability reads the signed-in provider's weekly schedule. Days the
// provider does not work are simply absent from the list.
func (c *Client) GetMyAvailability(ctx context.Context) ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	if err := c.do(ctx, http.MethodGet, "/availability/me", nil, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// SetAvailability replaces the provider's weekly schedule with the given
// rules. The backend treats the payload as the complete new schedule.
func (c *Client) SetAvailability(ctx context.Context, rules []models.AvailabilityRule) error {
	return c.do(ctx, http.MethodPost, "/availability/set", nil, rules, nil)
}
