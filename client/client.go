// Package client talks to the remote marketplace API. It is the only data
// layer the frontends have: every entity is fetched per screen and nothing is
// persisted locally beyond the session tokens.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"aura/models"
)

// ErrSessionExpired is returned when a request got a 401 and the one-shot
// token refresh also failed. The caller must force re-authentication.
var ErrSessionExpired = errors.New("client: session expired")

// TokenSource supplies and stores the session token pair. Implemented by the
// session manager; a nil TokenSource makes an unauthenticated client.
type TokenSource interface {
	// Tokens returns the current access and refresh tokens, either may be "".
	Tokens() (access, refresh string)
	// Update stores a fresh token pair after a successful refresh.
	Update(access, refresh string)
	// Clear wipes the stored tokens after a failed refresh.
	Clear()
}

// Client is the HTTP client for the marketplace backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	tokens  TokenSource

	// refreshMu serializes token refreshes so concurrent 401s trigger a
	// single refresh call.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (tests use this).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource attaches the session token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSec), burst) }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// New builds a Client for the given API base URL, e.g. "https://host/api".
func New(baseURL string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API call: rate-limit wait, JSON round trip, bearer auth and
// the one-shot 401 refresh. out may be nil for calls without a response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doOnce(ctx, method, path, query, body, out, false)
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any, retried bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var access string
	if c.tokens != nil {
		access, _ = c.tokens.Tokens()
		if access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil && !retried {
		if err := c.refreshSession(ctx, access); err != nil {
			return err
		}
		return c.doOnce(ctx, method, path, query, body, out, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// refreshSession performs the one-shot refresh triggered by a 401. staleAccess
// is the token the failed request used: if another goroutine already rotated
// the pair, the retry just reuses the new one instead of refreshing again.
func (c *Client) refreshSession(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh := c.tokens.Tokens()
	if access != "" && access != staleAccess {
		return nil
	}
	if refresh == "" {
		c.tokens.Clear()
		return ErrSessionExpired
	}

	res, err := c.Refresh(ctx, refresh)
	if err != nil {
		c.log.Info("token refresh failed, clearing session", zap.Error(err))
		c.tokens.Clear()
		return ErrSessionExpired
	}
	c.tokens.Update(res.Token, res.RefreshToken)
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	apiErr := &models.APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" && apiErr.ErrorText == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}

func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": []string{fmt.Sprint(page)},
		"size": []string{fmt.Sprint(size)},
	}
}
