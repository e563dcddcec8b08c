// Package client is the HTTP boundary of the application: stateless typed
// calls against the backend REST API. It reads the bearer token from the
// session store but never mutates it; 401 responses surface as
// ErrUnauthorized so the caller decides what to do with a dead session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Minahil-Hamza/taskdesk/internal/session"
)

// DefaultTimeout bounds every request. The backend contract defines no
// timeout of its own; an unbounded hang would leave the UI loading forever.
const DefaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	sessions   *session.Store
	httpClient *http.Client
}

func New(baseURL string, sessions *session.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		sessions:   sessions,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do performs one round trip and normalizes the outcome. authRequired marks
// session-scoped endpoints, where a 401 becomes ErrUnauthorized regardless
// of body content. Any other non-2xx becomes an *APIError whose message is
// extracted from the detail field with fallback as the default.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, authRequired bool, fallback string) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodGet {
		// Reads feed the refetch-after-mutation cycle and must never be
		// served from an HTTP cache.
		req.Header.Set("Cache-Control", "no-store")
	}
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if authRequired && resp.StatusCode == http.StatusUnauthorized {
		return nil, resp.StatusCode, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, fields := extractDetail(respBody, fallback)
		return nil, resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Detail: detail, FieldErrors: fields}
	}

	return respBody, resp.StatusCode, nil
}

// doJSON is do plus decoding of the success body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}, authRequired bool, fallback string) error {
	body, _, err := c.do(ctx, method, path, payload, authRequired, fallback)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doDelete is the contract for body-less deletes: success is a boolean
// derived from the status code, not a decoded payload.
func (c *Client) doDelete(ctx context.Context, path, fallback string) (bool, error) {
	_, status, err := c.do(ctx, http.MethodDelete, path, nil, true, fallback)
	if err != nil {
		// A plain failure status is reported as false, not as an error;
		// only transport failures and dead sessions propagate.
		if _, ok := err.(*APIError); ok {
			return false, nil
		}
		return false, err
	}
	return (status >= 200 && status < 300) || status == http.StatusNoContent, nil
}
