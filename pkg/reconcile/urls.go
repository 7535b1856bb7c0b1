package reconcile

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// ResolvedURL is the URL identity chosen for one URL type of a package.
type ResolvedURL struct {
	Type  packages.URLType
	URLID uuid.UUID
}

// ResolveURLs resolves each candidate to a URL identity, reusing URLs minted
// earlier in the run, then cached URLs, and minting otherwise. Minted URLs
// are written to acc before the next candidate is considered. Empty
// candidates are skipped; a later candidate of the same type replaces an
// earlier one.
func ResolveURLs(ctx context.Context, candidates []packages.URLCandidate, snap *cache.Snapshot, acc *cache.URLAccumulator, types URLTypeIDs, now utc.Time) ([]ResolvedURL, error) {
	logger := logging.FromContext(ctx)

	var resolved []ResolvedURL
	index := make(map[packages.URLType]int)
	for _, c := range candidates {
		raw := packages.NormalizeURL(c.URL)
		if raw == "" {
			continue
		}

		typeID, err := types.Resolve(c.Type)
		if err != nil {
			return nil, err
		}

		key := packages.URLKey{URL: raw, URLTypeID: typeID}
		var id uuid.UUID
		if u, ok := acc.Get(key); ok {
			id = u.ID
		} else if u, ok := snap.URL(key); ok {
			id = u.ID
		} else {
			u := packages.URL{
				ID:        uuid.New(),
				URL:       raw,
				URLTypeID: typeID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			acc.Put(u)
			id = u.ID
			logger.Debug().Str("url", raw).Str("url_type", c.Type.String()).Msg("New URL")
		}

		if i, ok := index[c.Type]; ok {
			resolved[i].URLID = id
			continue
		}
		index[c.Type] = len(resolved)
		resolved = append(resolved, ResolvedURL{Type: c.Type, URLID: id})
	}

	return resolved, nil
}

// LinkDiff is the link change set for one package.
type LinkDiff struct {
	Added   []packages.PackageURL
	Touched []cache.Touch
}

// Links links a package to its resolved URLs. Links already cached are
// touched in touches instead of recreated. Links to URLs no longer declared
// are left in place.
func Links(packageID uuid.UUID, resolved []ResolvedURL, snap *cache.Snapshot, touches *cache.TouchLog, now utc.Time) LinkDiff {
	var diff LinkDiff
	seen := make(map[uuid.UUID]struct{}, len(resolved))
	for _, r := range resolved {
		if _, dup := seen[r.URLID]; dup {
			continue
		}
		seen[r.URLID] = struct{}{}

		if existing, ok := snap.Link(packageID, r.URLID); ok {
			diff.Touched = append(diff.Touched, touches.Touch(existing.ID, now))
			continue
		}
		diff.Added = append(diff.Added, packages.PackageURL{
			ID:        uuid.New(),
			PackageID: packageID,
			URLID:     r.URLID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return diff
}
