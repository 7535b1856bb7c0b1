// Package pkgsync reconciles the records exported by a package manager
// (crates.io, Debian, Homebrew, pkgx) against a snapshot of the persisted
// package graph and reports the change-set that brings the store up to date.
//
// A Client ties together the configured identity tables, the snapshot
// loader, the change-set writers and event hooks:
//
//	client, err := pkgsync.New(
//	    pkgsync.WithIdentities(ids),
//	    pkgsync.WithSnapshotLoader(cache.FileLoader{Path: "cache.json"}),
//	    pkgsync.WithWriters(fileWriter),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnPackageAdded(func(p packages.Package) {
//	    log.Printf("New package: %s", p.DerivedID)
//	})
//
//	result, err := client.Sync(ctx, sources.HomebrewID, "formulae.json",
//	    sync.WithStrategy(reconcile.ApplyAdditive))
package pkgsync

import (
	"context"

	"github.com/agentstation/pkgsync/internal/sources/registry"
	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
	"github.com/agentstation/pkgsync/pkg/sync"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Syncer runs reconciliations.
type Syncer interface {
	// Sync reconciles the record file of one source against a freshly
	// loaded snapshot, fires the change hooks, and hands the result to
	// the writers unless the run is a dry run.
	Sync(ctx context.Context, source sources.ID, records string, opts ...sync.Option) (*reconcile.Result, error)
}

// Client reconciles package records and notifies hooks of the changes.
type Client interface {
	Syncer

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	hooks   *hooks
}

// New creates a new Client instance with the given options. Identity
// tables are required and validated here.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.identities == nil {
		return nil, errors.NewConfigError("identities", "identity tables are required", nil)
	}
	if err := o.identities.Validate(); err != nil {
		return nil, err
	}

	return &client{options: o, hooks: newHooks()}, nil
}

// Sync implements Syncer.
func (c *client) Sync(ctx context.Context, id sources.ID, records string, opts ...sync.Option) (*reconcile.Result, error) {
	src, err := registry.Get(id)
	if err != nil {
		return nil, err
	}
	cfg, err := c.options.identities.For(id)
	if err != nil {
		return nil, err
	}

	snap := cache.Empty()
	if c.options.loader != nil {
		if snap, err = c.options.loader.Load(ctx); err != nil {
			return nil, errors.WrapResource("load", "snapshot", id.String(), err)
		}
	} else {
		logging.FromContext(ctx).Debug().Msg("No snapshot loader configured, using an empty cache")
	}

	result, err := src.Sync(ctx, records, snap, cfg, opts...)
	if err != nil {
		return nil, err
	}

	c.hooks.triggerResult(result)

	if result.Metadata.DryRun || len(c.options.writers) == 0 {
		return result, nil
	}
	if err := c.options.writers.Write(ctx, result); err != nil {
		return nil, errors.WrapResource("write", "changeset", result.Metadata.RunID, err)
	}
	return result, nil
}
