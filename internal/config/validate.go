package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return errors.New("api.base_url must be set")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", base)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must include a host, got %q", base)
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}
	if c.API.RequestsPerSecond < 0 {
		return errors.New("api.requests_per_second must not be negative (0 disables throttling)")
	}
	return nil
}

func (c *Config) validateAuth() error {
	switch c.Auth.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("auth.store: unsupported value %q (want %q or %q)", c.Auth.Store, StoreFile, StoreSQLite)
	}
	if strings.TrimSpace(c.Auth.StateDir) == "" {
		return errors.New("auth.state_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
