package presets

import (
	"context"
	"encoding/json"

	"museo/internal/services"
	"museo/internal/services/backend"
)

const listPath = "/presets/list"

// Requester is the subset of the backend transport used here.
type Requester interface {
	Get(ctx context.Context, cred backend.Credentials, path string, out any) error
}

// Client fetches presets and normalizes whatever shape the backend returns.
type Client struct {
	transport Requester
}

// NewClient wraps a backend transport.
func NewClient(transport Requester) *Client {
	return &Client{transport: transport}
}

// All fetches GET /presets/list and normalizes the body. Transport and HTTP
// errors propagate; an unexpected payload shape does not.
func (c *Client) All(ctx context.Context, cred backend.Credentials) (Collection, error) {
	var raw json.RawMessage
	if err := c.transport.Get(services.WithOperation(ctx, "presets.list"), cred, listPath, &raw); err != nil {
		return Empty(), err
	}
	return Normalize(raw), nil
}

// Lighting fetches and normalizes the full list, returning only lighting
// presets. Each call hits the backend.
func (c *Client) Lighting(ctx context.Context, cred backend.Credentials) ([]Preset, error) {
	all, err := c.All(ctx, cred)
	if err != nil {
		return nil, err
	}
	return all.Lighting, nil
}

// Camera fetches and normalizes the full list, returning only camera presets.
func (c *Client) Camera(ctx context.Context, cred backend.Credentials) ([]Preset, error) {
	all, err := c.All(ctx, cred)
	if err != nil {
		return nil, err
	}
	return all.Camera, nil
}

// Directors fetches and normalizes the full list, returning only director
// presets.
func (c *Client) Directors(ctx context.Context, cred backend.Credentials) ([]Preset, error) {
	all, err := c.All(ctx, cred)
	if err != nil {
		return nil, err
	}
	return all.Directors, nil
}
