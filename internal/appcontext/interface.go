// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/pkgsync/internal/config"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/pkgsync/app implements this interface, so
// commands can be tested with Mock instead.
type Interface interface {
	// Identities returns the validated identity tables, loading them on
	// first use.
	Identities() (*config.Identities, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, markdown).
	OutputFormat() string

	// KafkaBrokers returns the configured default brokers for change-set publishing.
	KafkaBrokers() []string

	// KafkaTopic returns the configured default topic.
	KafkaTopic() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
