// Package app provides the application context and dependency management
// for the orgmap CLI: configuration, logging, and the lazily constructed
// reconciliation client.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/orgmap"
	"github.com/agentstation/orgmap/pkg/errors"
)

// App represents the orgmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Reconciliation client (lazy-initialized, singleton)
	mu     sync.Mutex
	client *orgmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "load configuration", err)
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the reconciliation client, creating it on first use.
func (a *App) Client() (*orgmap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions()
	if err != nil {
		return nil, err
	}
	client, err := orgmap.New(opts...)
	if err != nil {
		return nil, errors.NewConfigError("client", "create reconciliation client", err)
	}

	a.client = client
	return client, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() ([]orgmap.Option, error) {
	opts := []orgmap.Option{orgmap.WithLogger(*a.logger)}

	if a.config.MaxDepth > 0 {
		opts = append(opts, orgmap.WithMaxDepth(a.config.MaxDepth))
	}
	if a.config.TaxonomyFile != "" {
		overrides, err := LoadOverrides(a.config.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		if len(overrides.Taxonomy) > 0 {
			opts = append(opts, orgmap.WithTaxonomy(overrides.Taxonomy))
		}
		if len(overrides.Ranking) > 0 {
			opts = append(opts, orgmap.WithRanking(overrides.Ranking))
		}
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom reconciliation client (useful for testing).
func WithClient(client *orgmap.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
