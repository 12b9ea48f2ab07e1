package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minhvodev/eatzy-gateway/pkg/config"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
)

const (
	userIDHeader             = "X-User-Id"
	errorBodyReadLimit int64 = 1024
)

// ErrNotFound marks a 404 from the core backend. Callers decide whether that
// is an error (missing restaurant) or data (user has no cart yet).
var ErrNotFound = errors.New("backend: not found")

var errBaseURLRequired = errors.New("backend base url is required")

// Client is the authenticated JSON caller for the core Eatzy backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New builds the backend client from configuration.
func New(cfg config.BackendConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// RequestOption mutates a single outgoing request.
type RequestOption func(*http.Request)

// AsUser stamps the acting user onto the request.
func AsUser(userID string) RequestOption {
	return func(req *http.Request) {
		if strings.TrimSpace(userID) != "" {
			req.Header.Set(userIDHeader, userID)
		}
	}
}

// GetJSON issues a GET and decodes the response body into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, dest, opts...)
}

// PostJSON issues a POST with a JSON body and decodes the response into dest.
// A nil dest discards the response body.
func (c *Client) PostJSON(ctx context.Context, path string, body, dest any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, path, body, dest, opts...)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, body, dest any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, dest, opts...)
}

// Ping verifies the backend is reachable, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health/live", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any, opts ...RequestOption) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal backend request")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build backend request")
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(httpReq)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute backend request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "backend request failed")
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response")
	}
	return nil
}
