// Package packages defines the data model shared by the reconciliation
// engine: persisted rows (Package, URL, PackageURL, LegacyDependency), the
// transient values produced by source adapters, and the dependency type
// priority order used to collapse duplicate declarations.
package packages

import (
	"github.com/agentstation/utc"
	"github.com/google/uuid"
)

// Package is a persisted package row. Its natural key is
// (PackageManagerID, ImportID).
type Package struct {
	ID               uuid.UUID `json:"id" yaml:"id"`
	DerivedID        string    `json:"derived_id" yaml:"derived_id"`
	Name             string    `json:"name" yaml:"name"`
	PackageManagerID uuid.UUID `json:"package_manager_id" yaml:"package_manager_id"`
	ImportID         string    `json:"import_id" yaml:"import_id"`
	Readme           string    `json:"readme,omitempty" yaml:"readme,omitempty"`
	CreatedAt        utc.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt        utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// URL is a persisted URL row, shared across packages.
type URL struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	URL       string    `json:"url" yaml:"url"`
	URLTypeID uuid.UUID `json:"url_type_id" yaml:"url_type_id"`
	CreatedAt utc.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// Key returns the natural key of the URL.
func (u URL) Key() URLKey {
	return URLKey{URL: u.URL, URLTypeID: u.URLTypeID}
}

// URLKey is the natural key of a URL row.
type URLKey struct {
	URL       string    `json:"url" yaml:"url"`
	URLTypeID uuid.UUID `json:"url_type_id" yaml:"url_type_id"`
}

// PackageURL links a package to a URL it currently exposes.
type PackageURL struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	PackageID uuid.UUID `json:"package_id" yaml:"package_id"`
	URLID     uuid.UUID `json:"url_id" yaml:"url_id"`
	CreatedAt utc.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// LegacyDependency is a persisted dependency edge.
type LegacyDependency struct {
	ID               uuid.UUID `json:"id" yaml:"id"`
	PackageID        uuid.UUID `json:"package_id" yaml:"package_id"`
	DependencyID     uuid.UUID `json:"dependency_id" yaml:"dependency_id"`
	DependencyTypeID uuid.UUID `json:"dependency_type_id" yaml:"dependency_type_id"`
	CreatedAt        utc.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt        utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// Edge returns the (dependency, type) pair used to diff edge sets.
func (d LegacyDependency) Edge() Edge {
	return Edge{DependencyID: d.DependencyID, DependencyTypeID: d.DependencyTypeID}
}

// Edge identifies a dependency edge within one owning package.
type Edge struct {
	DependencyID     uuid.UUID
	DependencyTypeID uuid.UUID
}

// ParsedDependency is one declared dependency as seen by a source adapter.
type ParsedDependency struct {
	Name string         `json:"name" yaml:"name"`
	Type DependencyType `json:"type" yaml:"type"`
}

// NormalizedPackage is the source-agnostic view of a package's declared
// dependencies.
type NormalizedPackage struct {
	Identifier   string             `json:"identifier" yaml:"identifier"`
	Dependencies []ParsedDependency `json:"dependencies" yaml:"dependencies"`
}

// Descriptor carries the package-level attributes a source exposes.
type Descriptor struct {
	ImportID  string `json:"import_id" yaml:"import_id"`
	Name      string `json:"name" yaml:"name"`
	DerivedID string `json:"derived_id" yaml:"derived_id"`
	Readme    string `json:"readme,omitempty" yaml:"readme,omitempty"`
	// ReadmeTracked is false for sources without a description field; an
	// existing package from such a source never produces an update.
	ReadmeTracked bool `json:"readme_tracked" yaml:"readme_tracked"`
}

// URLCandidate is a URL declared by a source record, before identity resolution.
type URLCandidate struct {
	URL  string  `json:"url" yaml:"url"`
	Type URLType `json:"type" yaml:"type"`
}

// Deduplicate collapses declared dependencies to one type per name, keeping
// the type with the lowest priority number. Empty names are skipped. The
// result does not depend on input order.
func Deduplicate(declared []ParsedDependency) map[string]DependencyType {
	out := make(map[string]DependencyType, len(declared))
	for _, dep := range declared {
		if dep.Name == "" {
			continue
		}
		if current, ok := out[dep.Name]; ok && !dep.Type.Outranks(current) {
			continue
		}
		out[dep.Name] = dep.Type
	}
	return out
}
