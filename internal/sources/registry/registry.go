// Package registry binds every source ID to its adapter and record type so
// callers holding only an ID and a record file can normalize or reconcile
// it. This package is separate from the adapters to avoid import cycles.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentstation/pkgsync/internal/input"
	"github.com/agentstation/pkgsync/internal/sources/crates"
	"github.com/agentstation/pkgsync/internal/sources/debian"
	"github.com/agentstation/pkgsync/internal/sources/homebrew"
	"github.com/agentstation/pkgsync/internal/sources/pkgx"
	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
	"github.com/agentstation/pkgsync/pkg/sync"
)

// Source reconciles or normalizes the records of one source, read from a
// record file.
type Source interface {
	ID() sources.ID

	// Normalize reads the records at path and normalizes each one.
	Normalize(path string) ([]packages.NormalizedPackage, error)

	// Sync reads the records at path and reconciles them against snap.
	Sync(ctx context.Context, path string, snap *cache.Snapshot, cfg reconcile.Config, opts ...sync.Option) (*reconcile.Result, error)
}

type source[R any] struct {
	adapter sources.Adapter[R]
}

func (s source[R]) ID() sources.ID {
	return s.adapter.ID()
}

func (s source[R]) Normalize(path string) ([]packages.NormalizedPackage, error) {
	records, err := input.ReadRecords[R](path)
	if err != nil {
		return nil, err
	}
	out := make([]packages.NormalizedPackage, 0, len(records))
	for _, rec := range records {
		out = append(out, s.adapter.Normalize(rec))
	}
	return out, nil
}

func (s source[R]) Sync(ctx context.Context, path string, snap *cache.Snapshot, cfg reconcile.Config, opts ...sync.Option) (*reconcile.Result, error) {
	runner, err := sync.NewRunner(s.adapter, snap, cfg, opts...)
	if err != nil {
		return nil, err
	}
	records, err := input.ReadRecords[R](path)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, records)
}

// Wrap lifts a typed adapter into a Source.
func Wrap[R any](a sources.Adapter[R]) Source {
	return source[R]{adapter: a}
}

// registry maps source IDs to their record-typed adapters.
var registry = map[sources.ID]Source{
	sources.CratesID:   Wrap[crates.Crate](crates.New()),
	sources.DebianID:   Wrap[debian.Package](debian.New()),
	sources.HomebrewID: Wrap[homebrew.Formula](homebrew.New()),
	sources.PkgxID:     Wrap[pkgx.Project](pkgx.New()),
}

// Get returns the source registered for id.
func Get(id sources.ID) (Source, error) {
	s, ok := registry[id]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("unsupported source: %s", id),
		}
	}
	return s, nil
}

// Has checks if a source ID has an adapter.
func Has(id sources.ID) bool {
	_, ok := registry[id]
	return ok
}

// List returns all registered source IDs, sorted.
func List() []sources.ID {
	ids := make([]sources.ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
