package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"clinica/models"
	"clinica/utils"
)

// Login exchanges credentials for a session token. The endpoint is
// OAuth2-style form-encoded with the email passed as username.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &utils.NetworkError{Op: "POST /auth/login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		detail := eb.Detail
		if detail == "" {
			detail = eb.Message
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			// A login rejection is a bad credential, not a session teardown;
			// there is no session yet.
			return "", &utils.AuthError{StatusCode: resp.StatusCode, Message: detail}
		}
		if resp.StatusCode >= 500 {
			return "", &utils.NetworkError{Op: "POST /auth/login", Err: fmt.Errorf("server error %d: %s", resp.StatusCode, detail)}
		}
		return "", &utils.ConflictError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var lr models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", &utils.NetworkError{Op: "POST /auth/login", Err: fmt.Errorf("decode response: %w", err)}
	}
	if lr.AccessToken == "" {
		return "", &utils.NetworkError{Op: "POST /auth/login", Err: fmt.Errorf("empty access token in response")}
	}
	return lr.AccessToken, nil
}
