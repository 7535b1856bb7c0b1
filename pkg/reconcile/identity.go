package reconcile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// DependencyTypeIDs maps each dependency type to its persisted identity.
type DependencyTypeIDs map[packages.DependencyType]uuid.UUID

// Validate checks that every dependency type has a distinct, non-nil identity.
func (m DependencyTypeIDs) Validate() error {
	seen := make(map[uuid.UUID]packages.DependencyType, len(m))
	for _, t := range packages.DependencyTypes() {
		id, ok := m[t]
		if !ok || id == uuid.Nil {
			return errors.NewConfigError("dependency_types", fmt.Sprintf("no identity configured for %s", t),
				errors.NewUnknownDependencyTypeError(t.String()))
		}
		if other, dup := seen[id]; dup {
			return errors.NewConfigError("dependency_types", fmt.Sprintf("%s and %s share identity %s", other, t, id), nil)
		}
		seen[id] = t
	}
	return nil
}

// Resolve returns the persisted identity of t.
func (m DependencyTypeIDs) Resolve(t packages.DependencyType) (uuid.UUID, error) {
	id, ok := m[t]
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.NewUnknownDependencyTypeError(t.String())
	}
	return id, nil
}

// URLTypeIDs maps each URL type to its persisted identity.
type URLTypeIDs map[packages.URLType]uuid.UUID

// Validate checks that every URL type has a distinct, non-nil identity.
func (m URLTypeIDs) Validate() error {
	seen := make(map[uuid.UUID]packages.URLType, len(m))
	for _, t := range packages.URLTypes() {
		id, ok := m[t]
		if !ok || id == uuid.Nil {
			return errors.NewConfigError("url_types", fmt.Sprintf("no identity configured for %s", t),
				errors.NewUnknownURLTypeError(t.String()))
		}
		if other, dup := seen[id]; dup {
			return errors.NewConfigError("url_types", fmt.Sprintf("%s and %s share identity %s", other, t, id), nil)
		}
		seen[id] = t
	}
	return nil
}

// Resolve returns the persisted identity of t.
func (m URLTypeIDs) Resolve(t packages.URLType) (uuid.UUID, error) {
	id, ok := m[t]
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.NewUnknownURLTypeError(t.String())
	}
	return id, nil
}

// Config carries the identities a run resolves against.
type Config struct {
	PackageManagerID uuid.UUID
	DependencyTypes  DependencyTypeIDs
	URLTypes         URLTypeIDs
}

// Validate fails fast on an incomplete configuration.
func (c Config) Validate() error {
	if c.PackageManagerID == uuid.Nil {
		return errors.NewConfigError("package_managers", "package manager id is not set", nil)
	}
	if err := c.DependencyTypes.Validate(); err != nil {
		return err
	}
	return c.URLTypes.Validate()
}
