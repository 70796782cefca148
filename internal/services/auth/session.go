package auth

import (
	"context"
	"strings"

	"museo/internal/config"
	"museo/internal/services"
	"museo/internal/services/backend"
)

// DefaultTokenKey is the key the access token is stored under.
const DefaultTokenKey = "token"

// TokenSource reports where a session token came from.
type TokenSource string

const (
	SourceNone        TokenSource = ""
	SourceEnvironment TokenSource = "environment"
	SourceStore       TokenSource = "store"
)

// Session reads and writes the access token and turns it into Credentials
// for API calls. An override token (MUSEO_TOKEN) shadows the store for reads
// but never replaces what is stored.
type Session struct {
	store    Store
	key      string
	override string
}

// NewSession builds a session over store. An empty key uses DefaultTokenKey.
func NewSession(store Store, key, override string) *Session {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultTokenKey
	}
	return &Session{store: store, key: key, override: strings.TrimSpace(override)}
}

// NewSessionFromConfig wires the configured token key and env override.
func NewSessionFromConfig(cfg *config.Config, store Store) *Session {
	if cfg == nil {
		return NewSession(store, "", "")
	}
	return NewSession(store, cfg.Auth.TokenKey, cfg.Auth.Token)
}

// Key returns the storage key.
func (s *Session) Key() string {
	return s.key
}

// Token returns the current token and its source. A missing token is not an
// error; the source is SourceNone.
func (s *Session) Token(ctx context.Context) (string, TokenSource, error) {
	if s.override != "" {
		return s.override, SourceEnvironment, nil
	}
	if s.store == nil {
		return "", SourceNone, nil
	}
	value, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return "", SourceNone, services.Wrap(services.ErrConfiguration, component, "token", "read token store", err)
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", SourceNone, nil
	}
	return value, SourceStore, nil
}

// Credentials returns bearer credentials, or anonymous ones when no token is
// available.
func (s *Session) Credentials(ctx context.Context) (backend.Credentials, error) {
	token, _, err := s.Token(ctx)
	if err != nil {
		return backend.Anonymous(), err
	}
	return backend.Bearer(token), nil
}

// RequireCredentials is Credentials but fails with ErrUnauthorized when no
// token is available.
func (s *Session) RequireCredentials(ctx context.Context) (backend.Credentials, error) {
	cred, err := s.Credentials(ctx)
	if err != nil {
		return cred, err
	}
	if !cred.Authorized() {
		return cred, services.Wrap(services.ErrUnauthorized, component, "credentials", "not logged in", nil)
	}
	return cred, nil
}

// Save stores token under the session key.
func (s *Session) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return services.Wrap(services.ErrValidation, component, "save", "token is empty", nil)
	}
	if s.store == nil {
		return services.Wrap(services.ErrConfiguration, component, "save", "no token store configured", nil)
	}
	if err := s.store.Set(ctx, s.key, token); err != nil {
		return services.Wrap(services.ErrConfiguration, component, "save", "write token store", err)
	}
	return nil
}

// Clear removes the stored token. The env override is unaffected.
func (s *Session) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		return services.Wrap(services.ErrConfiguration, component, "clear", "delete from token store", err)
	}
	return nil
}
