package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/google/uuid"
)

const DefaultHealthTimeout = 5 * time.Second

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

type Options struct {
	// Timeout bounds every request except Health. Zero leaves the transport
	// default.
	Timeout       time.Duration
	HealthTimeout time.Duration
	Tokens        TokenSource
	Logger        logging.Logger
	HTTPClient    *http.Client
}

type HTTPClient struct {
	baseURL       string
	http          *http.Client
	healthTimeout time.Duration
	tokens        TokenSource
	log           logging.Logger
}

var (
	_ Client = (*HTTPClient)(nil)
	_ API    = (*HTTPClient)(nil)
)

func NewHTTPClient(baseURL string, opts Options) *HTTPClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if opts.Timeout > 0 {
		c := *hc
		c.Timeout = opts.Timeout
		hc = &c
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = DefaultHealthTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Tokens == nil {
		opts.Tokens = func(context.Context) (string, error) { return "", nil }
	}

	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          hc,
		healthTimeout: opts.HealthTimeout,
		tokens:        opts.Tokens,
		log:           opts.Logger,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, []byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path,
			"request_id", req.Header.Get(common.RequestIDHeaderName), "error", err)
		return nil, nil, fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read body: %v", common.ErrNetwork, err)
	}

	c.log.Debug(req.Context(), "request done",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"elapsed", time.Since(start))

	return resp, b, nil
}

func (c *HTTPClient) postAuth(ctx context.Context, path string, body any, decorate func(*http.Request)) (*models.AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	decorate(req)

	resp, b, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s reply (HTTP %d): %v", common.ErrNetwork, path, resp.StatusCode, err)
	}
	return &out, nil
}

func withNonce(nonce string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(common.NonceHeaderName, nonce)
	}
}

// authorize sets the bearer header. An empty token yields an empty header
// value, matching what the backend has always received from logged-out
// clients.
func authorize(req *http.Request, token string) {
	if token == "" {
		req.Header.Set(common.AuthorizationHeaderName, "")
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
}

// Login posts the login envelope with the nonce mirrored in X-Nonce.
func (c *HTTPClient) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	return c.postAuth(ctx, "/auth/login", req, withNonce(req.Nonce))
}

func (c *HTTPClient) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	return c.postAuth(ctx, "/auth/register", req, withNonce(req.Nonce))
}

func (c *HTTPClient) Logout(ctx context.Context, token string) (*models.AuthResponse, error) {
	return c.postAuth(ctx, "/auth/logout", nil, func(req *http.Request) { authorize(req, token) })
}

// Health probes GET /api/health within the health timeout. A non-2xx reply,
// or a non-empty body that is not JSON, is ErrUnavailable.
func (c *HTTPClient) Health(ctx context.Context) (*models.HealthDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	resp, b, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: health HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		Details *models.HealthDetails `json:"details"`
	}
	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, &payload); err != nil {
			return nil, fmt.Errorf("%w: health reply is not JSON: %v", ErrUnavailable, err)
		}
	}
	if payload.Details == nil {
		payload.Details = &models.HealthDetails{}
	}
	return payload.Details, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodDelete, path, nil, out)
}

func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens(ctx)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	authorize(req, token)

	resp, b, err := c.do(req)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp, b)
	}

	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// mapError prefers the server's own error text and falls back to a
// status-specific message.
func (c *HTTPClient) mapError(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode)}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = statusMessage(resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return apiErr
}
