// Package sources defines the contract every upstream package registry
// adapter satisfies. The set of sources is closed: the caller picks the
// adapter for the records it holds, and the adapter turns each record into
// the source-agnostic values the reconcilers consume.
//
// Example usage:
//
//	adapter := homebrew.New()
//	for _, rec := range records {
//	    pkg := adapter.Normalize(rec)
//	    desc := adapter.Describe(rec)
//	    urls := adapter.URLs(rec)
//	    ...
//	}
package sources

import (
	"slices"

	"github.com/agentstation/pkgsync/pkg/packages"
)

// ID represents the identifier of an upstream source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Supported sources.
const (
	CratesID   ID = "crates"
	DebianID   ID = "debian"
	HomebrewID ID = "homebrew"
	PkgxID     ID = "pkgx"
)

// IDs returns all supported source IDs.
func IDs() []ID {
	return []ID{
		CratesID,
		DebianID,
		HomebrewID,
		PkgxID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Adapter normalizes records of type R from one upstream source.
// Implementations are pure: no I/O, no side effects, never an error.
type Adapter[R any] interface {
	// ID returns the source this adapter handles
	ID() ID

	// Normalize returns the record's identifier and declared dependencies.
	// Dependencies with no name, or with a source type that has no
	// mapping, are dropped.
	Normalize(record R) packages.NormalizedPackage

	// Describe returns the package-level attributes of the record.
	Describe(record R) packages.Descriptor

	// URLs returns the URLs the record declares, unnormalized.
	URLs(record R) []packages.URLCandidate
}

// Info describes a source for listings.
type Info struct {
	ID            ID     `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Identifier    string `json:"identifier" yaml:"identifier"`
	ReadmeTracked bool   `json:"readme_tracked" yaml:"readme_tracked"`
}

// Infos returns a description of every supported source.
func Infos() []Info {
	return []Info{
		{ID: CratesID, Name: "crates.io", Identifier: "numeric crate id", ReadmeTracked: true},
		{ID: DebianID, Name: "Debian", Identifier: "debian/<package>", ReadmeTracked: true},
		{ID: HomebrewID, Name: "Homebrew", Identifier: "formula name", ReadmeTracked: true},
		{ID: PkgxID, Name: "pkgx", Identifier: "project domain path", ReadmeTracked: false},
	}
}
