package pkgsync

import (
	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/internal/writer"
	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
)

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the Client configuration.
type options struct {
	identities *config.Identities
	loader     cache.Loader
	writers    writer.Multi
}

func defaults() *options {
	return &options{}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithIdentities configures the identity tables runs resolve against.
func WithIdentities(ids *config.Identities) Option {
	return func(o *options) error {
		o.identities = ids
		return nil
	}
}

// WithSnapshotLoader configures where each run's cache snapshot is loaded
// from. Without a loader every run starts from an empty cache.
func WithSnapshotLoader(l cache.Loader) Option {
	return func(o *options) error {
		o.loader = l
		return nil
	}
}

// WithWriters adds change-set writers.
func WithWriters(ws ...writer.Writer) Option {
	return func(o *options) error {
		for _, w := range ws {
			if w == nil {
				return errors.NewValidationError("writers", nil, "writer must not be nil")
			}
			o.writers = append(o.writers, w)
		}
		return nil
	}
}
