package generation

import (
	"context"
	"net/url"
	"strings"

	"museo/internal/services"
	"museo/internal/services/backend"
)

const component = "generation"

// Transport is the subset of the backend client used by the wrappers.
type Transport interface {
	Get(ctx context.Context, cred backend.Credentials, path string, out any) error
	Post(ctx context.Context, cred backend.Credentials, path string, body, out any) error
}

// Client wraps the /generation endpoints.
type Client struct {
	transport Transport
}

// NewClient wraps a backend transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Submit requests a single frame.
func (c *Client) Submit(ctx context.Context, cred backend.Credentials, req Request) (Generation, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Generation{}, services.Wrap(services.ErrValidation, component, "submit", "prompt is required", nil)
	}
	var out Generation
	err := c.transport.Post(services.WithOperation(ctx, "generation.submit"), cred, "/generation/single", req, &out)
	return out, err
}

// List returns the caller's generation history.
func (c *Client) List(ctx context.Context, cred backend.Credentials) ([]Generation, error) {
	var out []Generation
	if err := c.transport.Get(services.WithOperation(ctx, "generation.list"), cred, "/generation", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Generation{}
	}
	return out, nil
}

// Get fetches one generation by id.
func (c *Client) Get(ctx context.Context, cred backend.Credentials, id string) (Generation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Generation{}, services.Wrap(services.ErrValidation, component, "get", "generation id is required", nil)
	}
	var out Generation
	err := c.transport.Get(services.WithOperation(ctx, "generation.get"), cred, "/generation/"+url.PathEscape(id), &out)
	return out, err
}

// Health probes the generation service. No credentials are sent.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.transport.Get(services.WithOperation(ctx, "generation.health"), backend.Anonymous(), "/generation/health", &out)
	return out, err
}
