package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"clinica/config"
	"clinica/store"
	"clinica/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the remote scheduling API. The session token is read from
// the credential store at the start of every call; only the session manager
// writes it. A 401/403 on any authenticated call triggers the registered
// auth-failure handler (forced sign-out).
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      store.CredentialStore

	limiter *rate.Limiter

	mu          sync.Mutex
	authFailure func()
}

// NewClient builds a client from the loaded configuration.
func NewClient(baseURL string, st store.CredentialStore) *Client {
	timeout := time.Duration(config.AppConfig.APITimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 120
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Store:      st,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
	}
}

// SetAuthFailureHandler registers the hook invoked whenever the backend
// answers 401/403. The session manager registers forced sign-out here.
func (c *Client) SetAuthFailureHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authFailure = fn
}

func (c *Client) notifyAuthFailure() {
	c.mu.Lock()
	fn := c.authFailure
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// errorBody is the error payload shape the backend uses.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return &utils.NetworkError{Op: op, Err: err}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Token is read once at call start; absence simply means an
	// unauthenticated request.
	token, err := c.Store.Get(ctx, store.KeyUserToken)
	if err != nil {
		utils.GetLogger().Warn("Failed to read session token from store", zap.Error(err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &utils.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &utils.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	detail := eb.Detail
	if detail == "" {
		detail = eb.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		utils.GetLogger().Warn("Authentication rejected", zap.String("op", op), zap.Int("status", resp.StatusCode))
		c.notifyAuthFailure()
		return &utils.AuthError{StatusCode: resp.StatusCode, Message: detail}
	case resp.StatusCode >= 500:
		return &utils.NetworkError{Op: op, Err: fmt.Errorf("server error %d: %s", resp.StatusCode, detail)}
	default:
		return &utils.ConflictError{StatusCode: resp.StatusCode, Detail: detail}
	}
}
