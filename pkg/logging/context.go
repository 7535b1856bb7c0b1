package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithRunID tags every log line of one reconciliation run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return withField(ctx, "run_id", runID)
}

// withField adds a single field to the logger in the context.
func withField(ctx context.Context, key, value string) context.Context {
	newLogger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithSource adds the upstream source (package manager) to the logger.
func WithSource(ctx context.Context, source string) context.Context {
	return withField(ctx, "source", source)
}

// WithPackage adds the package import id to the logger.
func WithPackage(ctx context.Context, importID string) context.Context {
	return withField(ctx, "package", importID)
}
