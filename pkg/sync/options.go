// Package sync drives one reconciliation run: every record from a source
// is reconciled against a cache snapshot and the outcome is collected into
// a single changeset.
package sync

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// Options controls a reconciliation run.
type Options struct {
	DryRun   bool                    // Mark the result as not to be applied
	Strategy reconcile.ApplyStrategy // Which changes the result keeps
	Timeout  time.Duration           // Timeout for the entire run

	// Now supplies the timestamp stamped on every change of the run
	Now func() utc.Time

	// Logger overrides the logger carried by the context
	Logger *zerolog.Logger

	// OnStart is called with the record count before the first record
	OnStart func(records int)

	// Progress is called once per processed record
	Progress func()
}

// Option is a function that configures Options.
type Option func(*Options)

// Defaults returns the default run options.
func Defaults() *Options {
	return &Options{
		DryRun:   false,
		Strategy: reconcile.ApplyAll,
		Timeout:  0,
		Now:      utc.Now,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks if the options are valid and canonicalizes the strategy.
func (o *Options) Validate() error {
	if o.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   o.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	strategy, err := reconcile.ParseApplyStrategy(string(o.Strategy))
	if err != nil {
		return err
	}
	o.Strategy = strategy
	if o.Now == nil {
		return &errors.ValidationError{
			Field:   "Now",
			Message: "clock must not be nil",
		}
	}
	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithStrategy configures which changes the result keeps.
func WithStrategy(strategy reconcile.ApplyStrategy) Option {
	return func(o *Options) {
		o.Strategy = strategy
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithNow configures the run clock.
func WithNow(now func() utc.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithLogger configures the run logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithOnStart registers a callback receiving the number of records of the run.
func WithOnStart(fn func(records int)) Option {
	return func(o *Options) {
		o.OnStart = fn
	}
}

// WithProgress registers a per-record progress callback.
func WithProgress(fn func()) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}
