// Package testsupport builds isolated configurations for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"museo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns the default configuration with state kept in a per-test
// temp directory and logging quieted.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Logging.Level = "error"
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithBaseURL points the backend client at url.
func WithBaseURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.API.BaseURL = url
	}
}

// WithStore selects the token store backend.
func WithStore(store string) ConfigOption {
	return func(c *config.Config) {
		c.Auth.Store = store
	}
}

// WithToken simulates MUSEO_TOKEN being exported.
func WithToken(token string) ConfigOption {
	return func(c *config.Config) {
		c.Auth.Token = token
	}
}
