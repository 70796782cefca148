package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAPI()
	if err := c.normalizeAuth(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	if value, ok := os.LookupEnv("MUSEO_API_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.API.Burst <= 0 {
		c.API.Burst = defaultBurst
	}
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeAuth() error {
	c.Auth.Store = strings.ToLower(strings.TrimSpace(c.Auth.Store))
	if c.Auth.Store == "" {
		c.Auth.Store = defaultAuthStore
	}
	if strings.TrimSpace(c.Auth.StateDir) == "" {
		c.Auth.StateDir = defaultStateDir
	}
	var err error
	if c.Auth.StateDir, err = expandPath(c.Auth.StateDir); err != nil {
		return fmt.Errorf("auth.state_dir: %w", err)
	}
	c.Auth.TokenKey = strings.TrimSpace(c.Auth.TokenKey)
	if c.Auth.TokenKey == "" {
		c.Auth.TokenKey = defaultTokenKey
	}
	if value, ok := os.LookupEnv("MUSEO_TOKEN"); ok {
		c.Auth.Token = strings.TrimSpace(value)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
