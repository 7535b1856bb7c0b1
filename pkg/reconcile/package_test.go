package reconcile_test

import (
	"context"
	"testing"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
)

func TestPackage(t *testing.T) {
	pmID := uuid.New()
	existing := packages.Package{ID: uuid.New(), ImportID: "wget", Name: "wget", Readme: "Internet file retriever"}
	snap, err := cache.New(cache.Data{Packages: []packages.Package{existing}})
	require.NoError(t, err)
	now := utc.Now()

	tests := []struct {
		name        string
		desc        packages.Descriptor
		wantCreated bool
		wantUpdate  bool
	}{
		{
			name:        "new package",
			desc:        packages.Descriptor{ImportID: "curl", Name: "curl", DerivedID: "homebrew/curl", Readme: "Get a file", ReadmeTracked: true},
			wantCreated: true,
		},
		{
			name:       "readme changed",
			desc:       packages.Descriptor{ImportID: "wget", Name: "wget", Readme: "GNU wget", ReadmeTracked: true},
			wantUpdate: true,
		},
		{
			name: "unchanged",
			desc: packages.Descriptor{ImportID: "wget", Name: "wget", Readme: "Internet file retriever", ReadmeTracked: true},
		},
		{
			name: "untracked readme never updates",
			desc: packages.Descriptor{ImportID: "wget", Name: "wget", Readme: "", ReadmeTracked: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reconcile.Package(context.Background(), tt.desc, snap, pmID, now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCreated, res.Created != nil)
			assert.Equal(t, tt.wantUpdate, res.Update != nil)
			assert.Equal(t, tt.wantCreated || tt.wantUpdate, res.Changed())

			switch {
			case tt.wantCreated:
				assert.Equal(t, res.ID, res.Created.ID)
				assert.Equal(t, pmID, res.Created.PackageManagerID)
				assert.Equal(t, tt.desc.ImportID, res.Created.ImportID)
				assert.Equal(t, tt.desc.DerivedID, res.Created.DerivedID)
				assert.Equal(t, tt.desc.Readme, res.Created.Readme)
				assert.Equal(t, now, res.Created.CreatedAt)
			case tt.wantUpdate:
				assert.Equal(t, existing.ID, res.ID)
				assert.Equal(t, reconcile.PackageUpdate{ID: existing.ID, Readme: tt.desc.Readme, UpdatedAt: now}, *res.Update)
			default:
				assert.Equal(t, existing.ID, res.ID)
			}
		})
	}
}

func TestPackageRequiresImportID(t *testing.T) {
	_, err := reconcile.Package(context.Background(), packages.Descriptor{Name: "x"}, cache.Empty(), uuid.New(), utc.Now())
	assert.True(t, errors.IsValidationError(err))
}
