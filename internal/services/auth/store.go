package auth

import (
	"context"
	"fmt"
	"strings"

	"museo/internal/config"
	"museo/internal/services"
)

// Store is a small key/value store for credentials.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpenStore opens the backend selected by auth.store.
func OpenStore(cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "open_store", "config is nil", nil)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Auth.Store)) {
	case "", config.StoreFile:
		return NewFileStore(cfg.TokenFilePath()), nil
	case config.StoreSQLite:
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, component, "open_store", "ensure state directory", err)
		}
		return OpenSQLiteStore(cfg.TokenDBPath())
	default:
		return nil, services.Wrap(services.ErrConfiguration, component, "open_store", fmt.Sprintf("unknown store %q", cfg.Auth.Store), nil)
	}
}
