// Package cache holds the in-memory read model of the store used for
// identity resolution during one run. A Snapshot is built once and never
// mutated; the two run-scoped writes a run needs go through a separate
// URLAccumulator and TouchLog owned by the caller.
package cache

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// Data is the persisted state a Snapshot is built from.
type Data struct {
	Packages     []packages.Package          `json:"packages" yaml:"packages"`
	URLs         []packages.URL              `json:"urls" yaml:"urls"`
	PackageURLs  []packages.PackageURL       `json:"package_urls" yaml:"package_urls"`
	Dependencies []packages.LegacyDependency `json:"dependencies" yaml:"dependencies"`
}

// Snapshot is an immutable view of one package manager's persisted state.
type Snapshot struct {
	packages     map[string]packages.Package
	urls         map[packages.URLKey]packages.URL
	links        map[uuid.UUID][]packages.PackageURL
	dependencies map[uuid.UUID][]packages.LegacyDependency
}

// Stats counts the rows held by a Snapshot.
type Stats struct {
	Packages     int `json:"packages" yaml:"packages"`
	URLs         int `json:"urls" yaml:"urls"`
	Links        int `json:"links" yaml:"links"`
	Dependencies int `json:"dependencies" yaml:"dependencies"`
}

// Empty returns a snapshot with no rows, as on a first import.
func Empty() *Snapshot {
	s, _ := New(Data{})
	return s
}

// New indexes data into a Snapshot. URLs are keyed by their normalized form.
// Two packages with the same import id, or two URLs with the same natural
// key, are rejected.
func New(data Data) (*Snapshot, error) {
	s := &Snapshot{
		packages:     make(map[string]packages.Package, len(data.Packages)),
		urls:         make(map[packages.URLKey]packages.URL, len(data.URLs)),
		links:        make(map[uuid.UUID][]packages.PackageURL),
		dependencies: make(map[uuid.UUID][]packages.LegacyDependency),
	}

	for _, p := range data.Packages {
		if _, dup := s.packages[p.ImportID]; dup {
			return nil, errors.NewAlreadyExistsError("package", p.ImportID)
		}
		s.packages[p.ImportID] = p
	}

	for _, u := range data.URLs {
		key := packages.URLKey{URL: packages.NormalizeURL(u.URL), URLTypeID: u.URLTypeID}
		if _, dup := s.urls[key]; dup {
			return nil, errors.NewAlreadyExistsError("url", fmt.Sprintf("%s (%s)", key.URL, key.URLTypeID))
		}
		s.urls[key] = u
	}

	for _, l := range data.PackageURLs {
		s.links[l.PackageID] = append(s.links[l.PackageID], l)
	}

	for _, d := range data.Dependencies {
		s.dependencies[d.PackageID] = append(s.dependencies[d.PackageID], d)
	}

	return s, nil
}

// Package returns the cached package with the given import id.
func (s *Snapshot) Package(importID string) (packages.Package, bool) {
	p, ok := s.packages[importID]
	return p, ok
}

// URL returns the cached URL with the given natural key.
func (s *Snapshot) URL(key packages.URLKey) (packages.URL, bool) {
	u, ok := s.urls[key]
	return u, ok
}

// Links returns a copy of the links owned by a package.
func (s *Snapshot) Links(packageID uuid.UUID) []packages.PackageURL {
	return append([]packages.PackageURL(nil), s.links[packageID]...)
}

// Link returns the link between a package and a URL, if cached.
func (s *Snapshot) Link(packageID, urlID uuid.UUID) (packages.PackageURL, bool) {
	for _, l := range s.links[packageID] {
		if l.URLID == urlID {
			return l, true
		}
	}
	return packages.PackageURL{}, false
}

// Dependencies returns a copy of the edges owned by a package.
func (s *Snapshot) Dependencies(packageID uuid.UUID) []packages.LegacyDependency {
	return append([]packages.LegacyDependency(nil), s.dependencies[packageID]...)
}

// Stats returns row counts.
func (s *Snapshot) Stats() Stats {
	st := Stats{Packages: len(s.packages), URLs: len(s.urls)}
	for _, l := range s.links {
		st.Links += len(l)
	}
	for _, d := range s.dependencies {
		st.Dependencies += len(d)
	}
	return st
}
