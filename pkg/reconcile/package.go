package reconcile

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// PackageUpdate patches the tracked mutable fields of an existing package.
type PackageUpdate struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Readme    string    `json:"readme" yaml:"readme"`
	UpdatedAt utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// PackageResult is the outcome of reconciling one package. At most one of
// Created and Update is set; neither means nothing changed.
type PackageResult struct {
	ID      uuid.UUID
	Created *packages.Package
	Update  *PackageUpdate
}

// Changed reports whether the package needs a write.
func (r PackageResult) Changed() bool {
	return r.Created != nil || r.Update != nil
}

// Package decides whether d describes a new package, an existing package
// whose readme changed, or an unchanged one.
func Package(ctx context.Context, d packages.Descriptor, snap *cache.Snapshot, packageManagerID uuid.UUID, now utc.Time) (PackageResult, error) {
	if d.ImportID == "" {
		return PackageResult{}, errors.NewValidationError("import_id", d.ImportID, "package has no import id")
	}

	existing, ok := snap.Package(d.ImportID)
	if !ok {
		p := &packages.Package{
			ID:               uuid.New(),
			DerivedID:        d.DerivedID,
			Name:             d.Name,
			PackageManagerID: packageManagerID,
			ImportID:         d.ImportID,
			Readme:           d.Readme,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return PackageResult{ID: p.ID, Created: p}, nil
	}

	if !d.ReadmeTracked || existing.Readme == d.Readme {
		return PackageResult{ID: existing.ID}, nil
	}

	logging.FromContext(ctx).Debug().Str("package", d.ImportID).Msg("Readme changed")
	return PackageResult{
		ID:     existing.ID,
		Update: &PackageUpdate{ID: existing.ID, Readme: d.Readme, UpdatedAt: now},
	}, nil
}
