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
	"time"

	"go.uber.org/zap"

	"github.com/pdv/terminal/internal/infrastructure/session"
)

// TenantHeaderKey is the header scoping every request to the active tenant
const TenantHeaderKey = "X-Tenant-ID"

// maxResponseSize is the maximum allowed response size from the backend (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client is the request gateway to the remote PDV backend. Every call
// re-reads the session store so a tenant switch or re-login is picked up by
// the very next request; nothing about the session is cached on the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
	logger     *zap.Logger
}

// NewClient creates a gateway for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration, store session.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		session: store,
		logger:  logger,
	}
}

// requestOptions controls per-request gateway behavior
type requestOptions struct {
	// authenticated requests carry the session token and tenant header;
	// authentication calls themselves carry neither
	authenticated bool
	// form sends the body as application/x-www-form-urlencoded
	form url.Values
}

// do performs a JSON request against the backend, decoding the response
// into out when it is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}, opts requestOptions) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	contentType := "application/json"
	if opts.form != nil {
		reader = strings.NewReader(opts.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	if opts.authenticated {
		// Read the persisted session on every call. Caching it here would
		// let a request outlive a tenant switch with stale scoping.
		state, err := c.session.Load(ctx)
		if err != nil {
			return fmt.Errorf("api: failed to load session state: %w", err)
		}
		if state.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+state.AccessToken)
		}
		if state.TenantID != "" {
			req.Header.Set(TenantHeaderKey, state.TenantID)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("api: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := normalizeError(resp.StatusCode, respBody)
		c.logger.Debug("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("api: failed to decode response: %w", err)
		}
	}
	return nil
}

// get performs an authenticated GET request
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, requestOptions{authenticated: true})
}

// post performs an authenticated POST request
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, requestOptions{authenticated: true})
}

// put performs an authenticated PUT request
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, requestOptions{authenticated: true})
}

// delete performs an authenticated DELETE request
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, requestOptions{authenticated: true})
}
