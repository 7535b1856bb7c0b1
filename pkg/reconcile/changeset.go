package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
)

// PackageChangeset represents changes to packages.
type PackageChangeset struct {
	Added   []packages.Package `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []PackageUpdate    `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// URLChangeset represents URLs minted during the run.
type URLChangeset struct {
	Added []packages.URL `json:"added,omitempty" yaml:"added,omitempty"`
}

// LinkChangeset represents changes to package-URL links.
type LinkChangeset struct {
	Added   []packages.PackageURL `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []cache.Touch         `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// DependencyChangeset represents changes to dependency edges.
type DependencyChangeset struct {
	Added   []packages.LegacyDependency `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []packages.LegacyDependency `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Changeset is everything a run asks the persistence writer to apply.
type Changeset struct {
	Packages     *PackageChangeset    `json:"packages" yaml:"packages"`
	URLs         *URLChangeset        `json:"urls" yaml:"urls"`
	Links        *LinkChangeset       `json:"links" yaml:"links"`
	Dependencies *DependencyChangeset `json:"dependencies" yaml:"dependencies"`
	Summary      ChangesetSummary     `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	PackagesAdded       int `json:"packages_added" yaml:"packages_added"`
	PackagesUpdated     int `json:"packages_updated" yaml:"packages_updated"`
	URLsAdded           int `json:"urls_added" yaml:"urls_added"`
	LinksAdded          int `json:"links_added" yaml:"links_added"`
	LinksUpdated        int `json:"links_updated" yaml:"links_updated"`
	DependenciesAdded   int `json:"dependencies_added" yaml:"dependencies_added"`
	DependenciesRemoved int `json:"dependencies_removed" yaml:"dependencies_removed"`
	TotalChanges        int `json:"total_changes" yaml:"total_changes"`
}

// NewChangeset assembles a changeset and computes its summary. Nil sections
// are replaced by empty ones.
func NewChangeset(pkgs *PackageChangeset, urls *URLChangeset, links *LinkChangeset, deps *DependencyChangeset) *Changeset {
	if pkgs == nil {
		pkgs = &PackageChangeset{}
	}
	if urls == nil {
		urls = &URLChangeset{}
	}
	if links == nil {
		links = &LinkChangeset{}
	}
	if deps == nil {
		deps = &DependencyChangeset{}
	}
	return &Changeset{
		Packages:     pkgs,
		URLs:         urls,
		Links:        links,
		Dependencies: deps,
		Summary:      calculateSummary(pkgs, urls, links, deps),
	}
}

func calculateSummary(pkgs *PackageChangeset, urls *URLChangeset, links *LinkChangeset, deps *DependencyChangeset) ChangesetSummary {
	s := ChangesetSummary{
		PackagesAdded:       len(pkgs.Added),
		PackagesUpdated:     len(pkgs.Updated),
		URLsAdded:           len(urls.Added),
		LinksAdded:          len(links.Added),
		LinksUpdated:        len(links.Updated),
		DependenciesAdded:   len(deps.Added),
		DependenciesRemoved: len(deps.Removed),
	}
	s.TotalChanges = s.PackagesAdded + s.PackagesUpdated + s.URLsAdded +
		s.LinksAdded + s.LinksUpdated + s.DependenciesAdded + s.DependenciesRemoved
	return s
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// HasChanges returns true if the package changeset contains any changes.
func (p *PackageChangeset) HasChanges() bool {
	return p != nil && (len(p.Added) > 0 || len(p.Updated) > 0)
}

// HasChanges returns true if any URL was minted.
func (u *URLChangeset) HasChanges() bool {
	return u != nil && len(u.Added) > 0
}

// HasChanges returns true if the link changeset contains any changes.
func (l *LinkChangeset) HasChanges() bool {
	return l != nil && (len(l.Added) > 0 || len(l.Updated) > 0)
}

// HasChanges returns true if the dependency changeset contains any changes.
func (d *DependencyChangeset) HasChanges() bool {
	return d != nil && (len(d.Added) > 0 || len(d.Removed) > 0)
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	section := func(name string, counts ...countLabel) {
		var sub []string
		for _, cl := range counts {
			if cl.n > 0 {
				sub = append(sub, fmt.Sprintf("%d %s", cl.n, cl.label))
			}
		}
		if len(sub) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(sub, ", ")))
		}
	}

	s := c.Summary
	section("Packages", countLabel{s.PackagesAdded, "added"}, countLabel{s.PackagesUpdated, "updated"})
	section("URLs", countLabel{s.URLsAdded, "added"})
	section("Links", countLabel{s.LinksAdded, "added"}, countLabel{s.LinksUpdated, "touched"})
	section("Dependencies", countLabel{s.DependenciesAdded, "added"}, countLabel{s.DependenciesRemoved, "removed"})

	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, "; "), s.TotalChanges)
}

type countLabel struct {
	n     int
	label string
}

// ApplyStrategy represents how to apply changes.
type ApplyStrategy string

const (
	// ApplyAll applies all changes including removals.
	ApplyAll ApplyStrategy = "all"

	// ApplyAdditive applies additions and updates, never removes.
	ApplyAdditive ApplyStrategy = "additive"

	// ApplyUpdatesOnly only applies updates to existing rows.
	ApplyUpdatesOnly ApplyStrategy = "updates-only"

	// ApplyAdditionsOnly only applies new rows.
	ApplyAdditionsOnly ApplyStrategy = "additions-only"
)

// ApplyStrategies returns every apply strategy.
func ApplyStrategies() []ApplyStrategy {
	return []ApplyStrategy{ApplyAll, ApplyAdditive, ApplyUpdatesOnly, ApplyAdditionsOnly}
}

// ParseApplyStrategy parses a strategy name.
func ParseApplyStrategy(s string) (ApplyStrategy, error) {
	for _, st := range ApplyStrategies() {
		if string(st) == strings.ToLower(strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", errors.NewValidationError("strategy", s, "must be one of all, additive, updates-only, additions-only")
}

// Filter filters the changeset based on the apply strategy.
func (c *Changeset) Filter(strategy ApplyStrategy) *Changeset {
	pkgs := &PackageChangeset{}
	urls := &URLChangeset{}
	links := &LinkChangeset{}
	deps := &DependencyChangeset{}

	switch strategy {
	case ApplyAll:
		return c

	default:
		parsed, err := ParseApplyStrategy(string(strategy))
		if err != nil {
			panic(fmt.Sprintf("reconcile: unknown apply strategy %q", strategy))
		}
		return c.Filter(parsed)

	case ApplyAdditive:
		pkgs.Added = c.Packages.Added
		pkgs.Updated = c.Packages.Updated
		urls.Added = c.URLs.Added
		links.Added = c.Links.Added
		links.Updated = c.Links.Updated
		deps.Added = c.Dependencies.Added

	case ApplyUpdatesOnly:
		pkgs.Updated = c.Packages.Updated
		links.Updated = c.Links.Updated

	case ApplyAdditionsOnly:
		pkgs.Added = c.Packages.Added
		urls.Added = c.URLs.Added
		links.Added = c.Links.Added
		deps.Added = c.Dependencies.Added
	}

	return NewChangeset(pkgs, urls, links, deps)
}
