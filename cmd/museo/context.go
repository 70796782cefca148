package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"museo/internal/config"
	"museo/internal/logging"
	"museo/internal/services/auth"
	"museo/internal/services/backend"
)

type commandContext struct {
	configFlag *string
	apiURLFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	mu      sync.Mutex
	logger  *slog.Logger
	backend *backend.Client
	store   auth.Store
}

func newCommandContext(configFlag, apiURLFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiURLFlag: apiURLFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.apiURLFlag != nil {
			if override := strings.TrimRight(strings.TrimSpace(*c.apiURLFlag), "/"); override != "" {
				cfg.API.BaseURL = override
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logger == nil {
		logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		c.logger = logger
	}
	return c.logger, nil
}

func (c *commandContext) backendClient(cmd *cobra.Command) (*backend.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.loggerFor(cmd)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend == nil {
		client, err := backend.NewFromConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.backend = client
	}
	return c.backend, nil
}

func (c *commandContext) session() (*auth.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		store, err := auth.OpenStore(cfg)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	return auth.NewSessionFromConfig(cfg, c.store), nil
}

// credentials returns the caller's bearer credentials, failing when nobody is
// signed in.
func (c *commandContext) credentials(ctx context.Context) (backend.Credentials, error) {
	session, err := c.session()
	if err != nil {
		return backend.Credentials{}, err
	}
	return session.RequireCredentials(ctx)
}

// optionalCredentials returns bearer credentials when a token is available
// and anonymous ones otherwise.
func (c *commandContext) optionalCredentials(ctx context.Context) (backend.Credentials, error) {
	session, err := c.session()
	if err != nil {
		return backend.Credentials{}, err
	}
	return session.Credentials(ctx)
}

func (c *commandContext) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
