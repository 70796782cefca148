package auth

import (
	"context"
	"strings"

	"museo/internal/services"
	"museo/internal/services/backend"
)

const component = "auth"

// Transport is the subset of the backend client used for auth calls.
type Transport interface {
	Post(ctx context.Context, cred backend.Credentials, path string, body, out any) error
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecoverRequest is the body of POST /auth/recover.
type RecoverRequest struct {
	Email string `json:"email"`
}

// TokenResponse is returned by a successful login. AccessToken may be empty.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Credentials converts the response into per-call credentials.
func (r TokenResponse) Credentials() backend.Credentials {
	return backend.Bearer(r.AccessToken)
}

// Client calls the /auth endpoints. They are all unauthenticated.
type Client struct {
	transport Transport
}

// NewClient wraps a backend transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Login exchanges email and password for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var out TokenResponse
	if err := c.transport.Post(services.WithOperation(ctx, "auth.login"), backend.Anonymous(), "/auth/login", req, &out); err != nil {
		return TokenResponse{}, err
	}
	out.AccessToken = strings.TrimSpace(out.AccessToken)
	return out, nil
}

// Register creates an account. It never returns a token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.transport.Post(services.WithOperation(ctx, "auth.register"), backend.Anonymous(), "/auth/register", req, nil)
}

// Recover asks the backend to send recovery instructions to email.
func (c *Client) Recover(ctx context.Context, req RecoverRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return services.Wrap(services.ErrValidation, component, "recover", "email is required", nil)
	}
	return c.transport.Post(services.WithOperation(ctx, "auth.recover"), backend.Anonymous(), "/auth/recover", req, nil)
}
