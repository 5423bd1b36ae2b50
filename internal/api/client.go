// Package api provides the HTTP gateway for the back-office REST backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agencydesk/agencydesk/internal/auth"
	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/observability"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/resilience"
	"github.com/agencydesk/agencydesk/internal/version"
)

const (
	maxRetries = 5
	baseDelay  = 1 * time.Second
	maxJitter  = 100 * time.Millisecond
)

// Client is an HTTP client for the back-office API.
type Client struct {
	httpClient *http.Client
	auth       *auth.Manager
	cfg        *config.Config
	cache      *Cache
	hooks      observability.Hooks
	gate       *resilience.Gate
}

// Response wraps an API response.
type Response struct {
	Data       json.RawMessage
	StatusCode int
	Headers    http.Header
	FromCache  bool
}

// NewClient creates a new API client.
func NewClient(cfg *config.Config, authMgr *auth.Manager) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		auth:  authMgr,
		cfg:   cfg,
		cache: NewCache(cfg.CacheDir),
	}
}

// SetHooks installs request lifecycle hooks for tracing and metrics.
func (c *Client) SetHooks(h observability.Hooks) {
	c.hooks = h
}

// SetGate installs the shared circuit breaker and rate limiter gate.
// Requests rejected by the gate fail fast without touching the network.
func (c *Client) SetGate(g *resilience.Gate) {
	c.gate = g
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.doRequest(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, path, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*Response, error) {
	url := c.buildURL(path)
	var attempt int
	var lastErr error

	for attempt = 1; attempt <= maxRetries; attempt++ {
		resp, err := c.singleRequest(ctx, method, url, body, attempt)
		if err == nil {
			return resp, nil
		}

		if apiErr, ok := err.(*output.Error); ok && apiErr.Retryable {
			lastErr = err

			delay := c.backoffDelay(attempt)
			if c.hooks != nil {
				c.hooks.OnRetry(observability.RequestInfo{Method: method, URL: url, Attempt: attempt}, delay, err)
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				continue
			}
		}

		return nil, err
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

func (c *Client) singleRequest(ctx context.Context, method, url string, body any, attempt int) (*Response, error) {
	if c.gate != nil {
		switch c.gate.Acquire() {
		case resilience.ErrCircuitOpen:
			return nil, &output.Error{
				Code:    output.CodeNetwork,
				Message: "Backend unavailable",
				Hint:    "Recent requests kept failing; waiting for the backend to recover. Run 'agencydesk doctor' for details",
			}
		case resilience.ErrRateLimited:
			return nil, output.ErrRateLimit(0)
		}
	}

	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = strings.NewReader(string(bodyBytes))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Add ETag for cached GET requests
	var cacheKey string
	if method == http.MethodGet && c.cfg.CacheEnabled {
		cacheKey = c.cache.Key(url, c.cfg.AccountID, token)
		if etag := c.cache.GetETag(cacheKey); etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
	}

	info := observability.RequestInfo{Method: method, URL: url, Attempt: attempt}
	if c.hooks != nil {
		c.hooks.OnRequestStart(info)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.hooks != nil {
			c.hooks.OnRequestEnd(info, observability.RequestResult{Duration: time.Since(start), Err: err})
		}
		if c.gate != nil {
			c.gate.RecordFailure()
		}
		return nil, output.ErrNetwork(err)
	}
	defer resp.Body.Close()
	c.recordOutcome(resp)

	if c.hooks != nil {
		c.hooks.OnRequestEnd(info, observability.RequestResult{
			StatusCode: resp.StatusCode,
			Duration:   time.Since(start),
			FromCache:  resp.StatusCode == http.StatusNotModified,
		})
	}

	switch resp.StatusCode {
	case http.StatusNotModified: // 304
		if cacheKey != "" {
			if cached := c.cache.GetBody(cacheKey); cached != nil {
				return &Response{
					Data:       cached,
					StatusCode: http.StatusOK,
					Headers:    resp.Header,
					FromCache:  true,
				}, nil
			}
		}
		return nil, output.ErrAPI(304, "304 received but no cached response available")

	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if method == http.MethodGet && cacheKey != "" {
			if etag := resp.Header.Get("ETag"); etag != "" {
				_ = c.cache.Set(cacheKey, respBody, etag) // Best-effort cache write
			}
		}

		return &Response{
			Data:       respBody,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
		}, nil

	case http.StatusTooManyRequests: // 429
		return nil, output.ErrRateLimit(parseRetryAfter(resp.Header.Get("Retry-After")))

	case http.StatusUnauthorized: // 401
		return nil, output.ErrAuth("Authentication failed")

	case http.StatusForbidden: // 403
		return nil, output.ErrForbidden("Access denied")

	case http.StatusNotFound: // 404
		return nil, output.ErrNotFound("Resource", url)

	case http.StatusInternalServerError: // 500
		return nil, output.ErrAPI(500, "Server error (500)")

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout: // 502, 503, 504
		return nil, &output.Error{
			Code:       output.CodeAPI,
			Message:    fmt.Sprintf("Gateway error (%d)", resp.StatusCode),
			HTTPStatus: resp.StatusCode,
			Retryable:  true,
		}

	default:
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			msg := apiErr.Error
			if msg == "" {
				msg = apiErr.Message
			}
			if msg != "" {
				return nil, output.ErrAPI(resp.StatusCode, msg)
			}
		}
		return nil, output.ErrAPI(resp.StatusCode, fmt.Sprintf("Request failed (HTTP %d)", resp.StatusCode))
	}
}

// recordOutcome feeds the response class into the gate. Server errors
// count toward opening the circuit; client errors do not, the backend
// answered fine.
func (c *Client) recordOutcome(resp *http.Response) {
	if c.gate == nil {
		return
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if seconds := parseRetryAfter(resp.Header.Get("Retry-After")); seconds > 0 {
			c.gate.RecordRetryAfter(time.Duration(seconds) * time.Second)
		}
	case resp.StatusCode >= 500:
		c.gate.RecordFailure()
	default:
		c.gate.RecordSuccess()
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if c.cfg.AccountID != "" {
		return base + "/" + c.cfg.AccountID + path
	}
	return base + path
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	// Exponential backoff: base * 2^(attempt-1)
	delay := baseDelay * time.Duration(1<<(attempt-1))

	// Add jitter (0-100ms)
	jitter := time.Duration(rand.Int63n(int64(maxJitter))) //nolint:gosec // G404: Jitter doesn't need crypto rand

	return delay + jitter
}

// parseRetryAfter parses the Retry-After header value.
func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return seconds
	}
	return 0
}

// AccountID returns the configured account identifier, or "".
func (c *Client) AccountID() string {
	return c.cfg.AccountID
}

// RequireAccount returns an error if no account is configured.
func (c *Client) RequireAccount() error {
	if c.cfg.AccountID == "" {
		return output.ErrUsageHint(
			"No account configured",
			"Set AGENCYDESK_ACCOUNT_ID or run: agencydesk config set account_id <id>",
		)
	}
	return nil
}
