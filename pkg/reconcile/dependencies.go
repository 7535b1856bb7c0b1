package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// DependencyDiff is the edge change set for one package.
type DependencyDiff struct {
	Added   []packages.LegacyDependency
	Removed []packages.LegacyDependency

	// Unresolved lists declared dependency names missing from the cache.
	Unresolved []string

	// Uncached is set when the owning package itself is not in the cache.
	Uncached bool
}

// Dependencies diffs the declared dependencies of pkg against the edges
// cached for it. A type change shows up as one removal and one addition.
//
// An owning package or dependency target absent from the cache is skipped
// and logged. An unconfigured type identity, or a removed edge that cannot
// be found in the cache it was derived from, is returned as an error.
func Dependencies(ctx context.Context, pkg packages.NormalizedPackage, snap *cache.Snapshot, types DependencyTypeIDs, now utc.Time) (DependencyDiff, error) {
	logger := logging.FromContext(ctx)

	owner, ok := snap.Package(pkg.Identifier)
	if !ok {
		logger.Debug().Str("package", pkg.Identifier).Msg("Package not in cache, skipping dependencies")
		return DependencyDiff{Uncached: true}, nil
	}

	declared := packages.Deduplicate(pkg.Dependencies)
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	var diff DependencyDiff
	actual := make(map[packages.Edge]struct{}, len(names))
	var order []packages.Edge
	for _, name := range names {
		target, ok := snap.Package(name)
		if !ok {
			logger.Debug().
				Str("package", pkg.Identifier).
				Str("dependency", name).
				Msg("Dependency not in cache, skipping")
			diff.Unresolved = append(diff.Unresolved, name)
			continue
		}

		typeID, err := types.Resolve(declared[name])
		if err != nil {
			return DependencyDiff{}, err
		}

		edge := packages.Edge{DependencyID: target.ID, DependencyTypeID: typeID}
		if _, dup := actual[edge]; !dup {
			actual[edge] = struct{}{}
			order = append(order, edge)
		}
	}

	cached := snap.Dependencies(owner.ID)
	existing := make(map[packages.Edge]struct{}, len(cached))
	var existingOrder []packages.Edge
	for _, d := range cached {
		if _, dup := existing[d.Edge()]; !dup {
			existing[d.Edge()] = struct{}{}
			existingOrder = append(existingOrder, d.Edge())
		}
	}

	for _, edge := range order {
		if _, ok := existing[edge]; ok {
			continue
		}
		diff.Added = append(diff.Added, packages.LegacyDependency{
			ID:               uuid.New(),
			PackageID:        owner.ID,
			DependencyID:     edge.DependencyID,
			DependencyTypeID: edge.DependencyTypeID,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	var removed []packages.Edge
	for _, edge := range existingOrder {
		if _, ok := actual[edge]; !ok {
			removed = append(removed, edge)
		}
	}

	rows, err := resolveRemoved(owner.ID, removed, cached)
	if err != nil {
		return DependencyDiff{}, err
	}
	diff.Removed = rows

	return diff, nil
}

// resolveRemoved maps removed edges back to the cached rows they came from.
func resolveRemoved(owner uuid.UUID, removed []packages.Edge, cached []packages.LegacyDependency) ([]packages.LegacyDependency, error) {
	if len(removed) == 0 {
		return nil, nil
	}

	out := make([]packages.LegacyDependency, 0, len(removed))
	for _, edge := range removed {
		found := false
		for _, d := range cached {
			if d.Edge() == edge {
				out = append(out, d)
				found = true
				break
			}
		}
		if !found {
			dump := make([]string, 0, len(cached))
			for _, d := range cached {
				dump = append(dump, fmt.Sprintf("%s / %s", d.DependencyID, d.DependencyTypeID))
			}
			return nil, &errors.CacheInconsistencyError{
				PackageID:        owner.String(),
				DependencyID:     edge.DependencyID.String(),
				DependencyTypeID: edge.DependencyTypeID.String(),
				Cached:           dump,
			}
		}
	}
	return out, nil
}
