package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"museo/internal/config"
	"museo/internal/logging"
	"museo/internal/services"
)

const (
	component          = "backend"
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 4096
	requestIDHeader    = "X-Request-ID"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues JSON requests against the generation backend.
type Client struct {
	baseURL   *url.URL
	http      HTTPDoer
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger
	newID     func() string
}

// Option customises Client construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, component)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithRateLimit throttles outgoing requests. A non-positive rate disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRequestIDs overrides request id generation (used in tests).
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient builds a client rooted at baseURL. Paths passed to the request
// methods are appended to the base URL's path.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "base url is empty", nil)
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "parse base url", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init",
			fmt.Sprintf("base url %q must be an absolute http(s) URL", trimmed), nil)
	}
	base.RawQuery = ""
	base.Fragment = ""

	client := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: "museo",
		logger:    logging.NewNop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a client from the [api] config section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "config is nil", nil)
	}
	return NewClient(cfg.API.BaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		WithUserAgent(cfg.API.UserAgent),
		WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst),
		WithLogger(logger),
	)
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, cred Credentials, path string, out any) error {
	return c.Do(ctx, cred, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, cred Credentials, path string, body, out any) error {
	return c.Do(ctx, cred, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, cred Credentials, path string, body, out any) error {
	return c.Do(ctx, cred, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, cred Credentials, path string, out any) error {
	return c.Do(ctx, cred, http.MethodDelete, path, nil, out)
}

// Do performs one request and decodes a JSON response into out. A nil out
// discards the body.
func (c *Client) Do(ctx context.Context, cred Credentials, method, path string, body, out any) error {
	data, err := c.DoRaw(ctx, cred, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return services.Wrap(services.ErrAPI, component, method+" "+path, "decode response", err)
	}
	return nil
}

// DoRaw performs one request and returns the undecoded response body.
func (c *Client) DoRaw(ctx context.Context, cred Credentials, method, path string, body any) ([]byte, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, component, op, "encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, services.Wrap(services.ErrTransport, component, op, "rate limit wait", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	if auth := cred.header(); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = c.newID()
	}
	req.Header.Set(requestIDHeader, requestID)

	logger := logging.WithContext(services.WithRequestID(ctx, requestID), c.logger)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(started)),
			logging.Error(err),
		)
		return nil, services.Wrap(services.ErrTransport, component, op, "request failed", err)
	}
	defer resp.Body.Close()

	logger.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
		return nil, services.Wrap(statusMarker(resp.StatusCode), component, op, fmt.Sprintf("status %d", resp.StatusCode), statusErr)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, op, "read response", err)
	}
	return data, nil
}

// resolve joins path (which may carry a query string) onto the base URL.
func (c *Client) resolve(path string) string {
	rel, err := url.Parse(path)
	if err != nil {
		return c.baseURL.String() + path
	}
	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	target.RawPath = ""
	if rel.RawPath != "" {
		target.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(rel.RawPath, "/")
	}
	target.RawQuery = rel.RawQuery
	return target.String()
}

func extractErrorMessage(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return trimmed
	}
	for _, key := range []string{"detail", "message", "error"} {
		if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return trimmed
}
