package pkgsync_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync"
	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/internal/writer"
	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
	"github.com/agentstation/pkgsync/pkg/sync"
)

type loaderFunc func(ctx context.Context) (*cache.Snapshot, error)

func (f loaderFunc) Load(ctx context.Context) (*cache.Snapshot, error) { return f(ctx) }

func identities() *config.Identities {
	ids := &config.Identities{
		DependencyTypes: reconcile.DependencyTypeIDs{},
		URLTypes:        reconcile.URLTypeIDs{},
		PackageManagers: map[sources.ID]uuid.UUID{sources.HomebrewID: uuid.New()},
	}
	for _, t := range packages.DependencyTypes() {
		ids.DependencyTypes[t] = uuid.New()
	}
	for _, t := range packages.URLTypes() {
		ids.URLTypes[t] = uuid.New()
	}
	return ids
}

func writeRecords(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formulae.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNew(t *testing.T) {
	_, err := pkgsync.New()
	var cfgErr *errors.ConfigError
	assert.True(t, stderrors.As(err, &cfgErr))

	incomplete := identities()
	delete(incomplete.DependencyTypes, packages.Test)
	_, err = pkgsync.New(pkgsync.WithIdentities(incomplete))
	assert.True(t, errors.IsUnknownType(err))

	_, err = pkgsync.New(pkgsync.WithIdentities(identities()), pkgsync.WithWriters(nil))
	assert.True(t, errors.IsValidationError(err))

	c, err := pkgsync.New(pkgsync.WithIdentities(identities()))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSyncHooksAndWriters(t *testing.T) {
	ids := identities()
	pm := ids.PackageManagers[sources.HomebrewID]
	runtime := ids.DependencyTypes[packages.Runtime]

	jq := packages.Package{ID: uuid.New(), ImportID: "jq", Name: "jq", DerivedID: "homebrew/jq", PackageManagerID: pm}
	onig := packages.Package{ID: uuid.New(), ImportID: "oniguruma", Name: "oniguruma", DerivedID: "homebrew/oniguruma", PackageManagerID: pm}
	old := packages.Package{ID: uuid.New(), ImportID: "old", Name: "old", DerivedID: "homebrew/old", PackageManagerID: pm}
	stale := packages.LegacyDependency{ID: uuid.New(), PackageID: jq.ID, DependencyID: old.ID, DependencyTypeID: runtime}

	loads := 0
	loader := loaderFunc(func(context.Context) (*cache.Snapshot, error) {
		loads++
		return cache.New(cache.Data{
			Packages:     []packages.Package{jq, onig, old},
			Dependencies: []packages.LegacyDependency{stale},
		})
	})

	var written []*reconcile.Result
	w := writer.WriterFunc(func(_ context.Context, r *reconcile.Result) error {
		written = append(written, r)
		return nil
	})

	c, err := pkgsync.New(pkgsync.WithIdentities(ids), pkgsync.WithSnapshotLoader(loader), pkgsync.WithWriters(w))
	require.NoError(t, err)

	var added, removed []packages.LegacyDependency
	var urls []packages.URL
	c.OnDependencyAdded(func(d packages.LegacyDependency) { added = append(added, d) })
	c.OnDependencyRemoved(func(d packages.LegacyDependency) { removed = append(removed, d) })
	c.OnURLAdded(func(u packages.URL) { urls = append(urls, u) })
	c.OnPackageAdded(func(packages.Package) { t.Error("no package should be created") })

	records := writeRecords(t, `{"records":[{"formula":"jq","homepage":"https://jqlang.github.io/jq/","dependencies":["oniguruma"]}]}`)
	result, err := c.Sync(context.Background(), sources.HomebrewID, records)
	require.NoError(t, err)

	require.Len(t, added, 1)
	assert.Equal(t, onig.ID, added[0].DependencyID)
	require.Len(t, removed, 1)
	assert.Equal(t, stale.ID, removed[0].ID)
	assert.Len(t, urls, 1)
	require.Len(t, written, 1)
	assert.Same(t, result, written[0])

	// Dry runs reload the snapshot but skip the writers
	_, err = c.Sync(context.Background(), sources.HomebrewID, records, sync.WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	assert.Len(t, written, 1)
}

func TestSyncErrors(t *testing.T) {
	records := writeRecords(t, `{"records":[{"formula":"jq"}]}`)

	c, err := pkgsync.New(pkgsync.WithIdentities(identities()))
	require.NoError(t, err)

	_, err = c.Sync(context.Background(), "npm", records)
	assert.True(t, errors.IsValidationError(err))

	_, err = c.Sync(context.Background(), sources.CratesID, records)
	var cfgErr *errors.ConfigError
	assert.True(t, stderrors.As(err, &cfgErr))

	boom := stderrors.New("boom")
	failing := writer.WriterFunc(func(context.Context, *reconcile.Result) error { return boom })
	c, err = pkgsync.New(pkgsync.WithIdentities(identities()), pkgsync.WithWriters(failing))
	require.NoError(t, err)
	_, err = c.Sync(context.Background(), sources.HomebrewID, records)
	assert.ErrorIs(t, err, boom)

	c, err = pkgsync.New(
		pkgsync.WithIdentities(identities()),
		pkgsync.WithSnapshotLoader(loaderFunc(func(context.Context) (*cache.Snapshot, error) { return nil, boom })),
	)
	require.NoError(t, err)
	_, err = c.Sync(context.Background(), sources.HomebrewID, records)
	assert.ErrorIs(t, err, boom)
}
