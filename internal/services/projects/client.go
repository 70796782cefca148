package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"museo/internal/services"
	"museo/internal/services/backend"
)

const (
	component = "projects"

	DefaultPage    = 1
	DefaultPerPage = 10
)

// Transport is the subset of the backend client used by the wrappers.
type Transport interface {
	Get(ctx context.Context, cred backend.Credentials, path string, out any) error
	Post(ctx context.Context, cred backend.Credentials, path string, body, out any) error
	Put(ctx context.Context, cred backend.Credentials, path string, body, out any) error
	Delete(ctx context.Context, cred backend.Credentials, path string, out any) error
}

// Client wraps the /projects endpoints.
type Client struct {
	transport Transport
}

// NewClient wraps a backend transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// List returns one page of the caller's projects. Non-positive page and
// perPage fall back to 1 and 10.
func (c *Client) List(ctx context.Context, cred backend.Credentials, page, perPage int) (Page, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	path := "/projects?page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(perPage)

	var out Page
	if err := c.transport.Get(services.WithOperation(ctx, "projects.list"), cred, path, &out); err != nil {
		return Page{}, err
	}
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	return out, nil
}

// Get fetches one project.
func (c *Client) Get(ctx context.Context, cred backend.Credentials, id string) (Project, error) {
	path, err := projectPath("get", id)
	if err != nil {
		return Project{}, err
	}
	var out Project
	err = c.transport.Get(services.WithOperation(ctx, "projects.get"), cred, path, &out)
	return out, err
}

// Create creates a project.
func (c *Client) Create(ctx context.Context, cred backend.Credentials, req Request) (Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Project{}, services.Wrap(services.ErrValidation, component, "create", "project name is required", nil)
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return Project{}, services.Wrap(services.ErrValidation, component, "create", "unknown status "+strconv.Quote(req.Status), nil)
	}
	var out Project
	err := c.transport.Post(services.WithOperation(ctx, "projects.create"), cred, "/projects", req, &out)
	return out, err
}

// Update sends a partial update. Only fields set on patch are transmitted.
func (c *Client) Update(ctx context.Context, cred backend.Credentials, id string, patch Patch) (Project, error) {
	path, err := projectPath("update", id)
	if err != nil {
		return Project{}, err
	}
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return Project{}, services.Wrap(services.ErrValidation, component, "update", "unknown status "+strconv.Quote(*patch.Status), nil)
	}
	var out Project
	err = c.transport.Put(services.WithOperation(ctx, "projects.update"), cred, path, patch, &out)
	return out, err
}

// Delete removes a project.
func (c *Client) Delete(ctx context.Context, cred backend.Credentials, id string) (DeleteResult, error) {
	path, err := projectPath("delete", id)
	if err != nil {
		return DeleteResult{}, err
	}
	var out DeleteResult
	err = c.transport.Delete(services.WithOperation(ctx, "projects.delete"), cred, path, &out)
	return out, err
}

// SaveScene persists scene state through a partial project update. The scene
// is sent as-is and the backend's response is returned undecoded.
func (c *Client) SaveScene(ctx context.Context, cred backend.Credentials, id string, scene json.RawMessage) (json.RawMessage, error) {
	path, err := projectPath("save_scene", id)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(scene)
	if len(trimmed) == 0 {
		trimmed = []byte("null")
	}
	if !json.Valid(trimmed) {
		return nil, services.Wrap(services.ErrValidation, component, "save_scene", "scene is not valid JSON", nil)
	}
	var out json.RawMessage
	if err := c.transport.Put(services.WithOperation(ctx, "projects.save_scene"), cred, path, sceneBody{SceneData: trimmed}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func projectPath(operation, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", services.Wrap(services.ErrValidation, component, operation, "project id is required", nil)
	}
	return "/projects/" + url.PathEscape(id), nil
}
