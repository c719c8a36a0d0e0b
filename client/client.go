// Package client is the HTTP client for the supplier backend. It attaches
// credentials to every request and recovers once from an expired access
// token by exchanging the refresh token.
package client

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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/supplykz/supplier-console/internal/observability"
	"github.com/supplykz/supplier-console/internal/shared"
	"github.com/supplykz/supplier-console/models"
)

const (
	headerClientType = "X-Client-Type"
	headerRequestID  = "X-Request-ID"

	refreshPath = "/auth/refresh"
)

// authPaths never trigger a refresh on 401.
var authPaths = []string{"/auth/login", "/auth/signup", refreshPath}

// TokenSource is the durable token storage the client reads and updates
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(pair models.TokenPair) error
	ClearSession() error
}

// SessionExpiredHandler is told when a refresh failed and the persisted
// session has been cleared
type SessionExpiredHandler interface {
	SessionExpired(ctx context.Context, cause error)
}

// SessionExpiredFunc adapts a function to SessionExpiredHandler
type SessionExpiredFunc func(ctx context.Context, cause error)

// SessionExpired calls f
func (f SessionExpiredFunc) SessionExpired(ctx context.Context, cause error) {
	f(ctx, cause)
}

// Config holds client settings
type Config struct {
	BaseURL    string
	ClientType string
	Timeout    time.Duration
}

// Client performs authenticated JSON requests against the backend
type Client struct {
	config     Config
	httpClient *http.Client
	tokens     TokenSource
	expired    SessionExpiredHandler
	logger     *observability.ContextLogger
	refreshes  singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = observability.NewContextLogger(logger)
	}
}

// WithSessionExpiredHandler sets the handler run after a failed refresh
func WithSessionExpiredHandler(h SessionExpiredHandler) Option {
	return func(c *Client) {
		c.expired = h
	}
}

// New creates a new Client
func New(cfg Config, tokens TokenSource, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ClientType == "" {
		cfg.ClientType = "web"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
		logger: observability.NewContextLogger(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Get performs a GET request and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do sends req and decodes a successful JSON response into out (if non-nil).
//
// A 401 on a non-auth path is retried exactly once after exchanging the
// refresh token. If that exchange fails the stored session is cleared, the
// session-expired handler runs, and the original 401 is returned wrapped in
// ErrSessionExpired.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, err := encodeBody(req.Body)
	if err != nil {
		return err
	}

	if shared.RequestID(ctx) == "" {
		ctx = shared.WithRequestID(ctx, uuid.NewString())
	}

	token, overridden := accessTokenOverride(ctx)
	if !overridden {
		token = c.tokens.AccessToken()
	}

	resp, err := c.send(ctx, req, body, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !overridden && !isAuthPath(req.Path) {
		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("%s %s: %w", req.Method, req.Path, ctxErr)
			}
			return fmt.Errorf("%w: %w", ErrSessionExpired, resp.err())
		}

		c.logger.Debug(ctx, "retrying request with refreshed token",
			zap.String("method", req.Method), zap.String("path", req.Path))

		resp, err = c.send(ctx, req, body, newToken)
		if err != nil {
			return err
		}
	}

	return resp.decode(out)
}

type response struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (r *response) err() *APIError {
	return newAPIError(r.Method, r.Path, r.StatusCode, r.Body)
}

func (r *response) decode(out any) error {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return r.err()
	}
	if out == nil || r.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req Request, body []byte, token string) (*response, error) {
	endpoint := c.config.BaseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", req.Method, req.Path, err)
	}
	c.setHeaders(ctx, httpReq)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn(ctx, "api request failed",
			zap.String("method", req.Method), zap.String("path", req.Path), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", req.Method, req.Path, err)
	}

	c.logger.Debug(ctx, "api request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return &response{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
	}, nil
}

func (c *Client) setHeaders(ctx context.Context, r *http.Request) {
	r.Header.Set("Accept", "application/json")
	if r.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set(headerClientType, c.config.ClientType)
	r.Header.Set(headerRequestID, shared.RequestID(ctx))
}

// refreshAccessToken exchanges the stored refresh token and persists the new
// pair. Concurrent callers holding the same refresh token share one exchange,
// which runs detached from any single caller and expires the session at most
// once when it fails. A caller whose ctx ends first gets ctx.Err() and leaves
// the exchange running for the others.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refreshToken := c.tokens.RefreshToken()

	ch := c.refreshes.DoChan(refreshToken, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.Timeout)
		defer cancel()

		token, err := c.rotateTokens(flightCtx, refreshToken)
		if err != nil {
			c.expireSession(flightCtx, err)
			return nil, err
		}
		return token, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) rotateTokens(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}
	pair, err := c.exchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if err := c.tokens.SetTokens(*pair); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}
	c.logger.Info(ctx, "access token refreshed")
	return pair.AccessToken, nil
}

// exchangeRefreshToken calls the refresh endpoint directly, outside Do, so a
// failing refresh can never recurse into another refresh.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("encode refresh request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	c.setHeaders(ctx, httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read refresh response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, newAPIError(http.MethodPost, refreshPath, httpResp.StatusCode, respBody)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("refresh response missing access token")
	}
	return &pair, nil
}

func (c *Client) expireSession(ctx context.Context, cause error) {
	c.logger.Warn(ctx, "token refresh failed, clearing session", zap.Error(cause))

	if err := c.tokens.ClearSession(); err != nil {
		c.logger.Error(ctx, "failed to clear session", zap.Error(err))
	}
	if c.expired != nil {
		c.expired.SessionExpired(ctx, cause)
	}
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return data, nil
}
