// Package app provides the application context and dependency management
// for the pkgsync CLI. It centralizes configuration, logging, and the
// identity tables every reconciliation run resolves against.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/pkg/errors"
)

// App represents the pkgsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	viper  *viper.Viper

	// Logger
	logger *zerolog.Logger

	// Identity tables (lazy-loaded, validated once)
	mu         sync.RWMutex
	identities *config.Identities
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// and config file, which can be overridden using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		viper:   viper.GetViper(),
	}

	cfg, err := LoadConfig(app.viper)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// KafkaBrokers returns the configured default brokers.
func (a *App) KafkaBrokers() []string {
	return a.config.KafkaBrokers
}

// KafkaTopic returns the configured default topic.
func (a *App) KafkaTopic() string {
	return a.config.KafkaTopic
}

// Identities returns the identity tables, loading and validating them on
// first use. This is thread-safe and loads the tables only once.
func (a *App) Identities() (*config.Identities, error) {
	a.mu.RLock()
	if a.identities != nil {
		ids := a.identities
		a.mu.RUnlock()
		return ids, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.identities != nil {
		return a.identities, nil
	}

	ids, err := config.Load(a.viper)
	if err != nil {
		return nil, err
	}
	if err := ids.Validate(); err != nil {
		return nil, err
	}

	a.identities = ids
	return ids, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
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

// WithViper reads the identity tables from v instead of the global instance.
func WithViper(v *viper.Viper) Option {
	return func(a *App) error {
		a.viper = v
		return nil
	}
}

// WithIdentities sets preloaded identity tables (useful for testing).
func WithIdentities(ids *config.Identities) Option {
	return func(a *App) error {
		a.identities = ids
		return nil
	}
}
