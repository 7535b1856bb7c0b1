// Package debian adapts parsed Debian package records. Packages and their
// dependencies are namespaced as "debian/<name>".
package debian

import (
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Prefix namespaces Debian import ids.
const Prefix = "debian/"

// Package is one parsed Debian package stanza.
type Package struct {
	Package      string    `json:"package" yaml:"package" toml:"package"`
	Description  string    `json:"description" yaml:"description" toml:"description"`
	Homepage     string    `json:"homepage" yaml:"homepage" toml:"homepage"`
	VcsGit       string    `json:"vcs_git" yaml:"vcs_git" toml:"vcs_git"`
	VcsBrowser   string    `json:"vcs_browser" yaml:"vcs_browser" toml:"vcs_browser"`
	Depends      []Depends `json:"depends" yaml:"depends" toml:"depends"`
	BuildDepends []Depends `json:"build_depends" yaml:"build_depends" toml:"build_depends"`
	Recommends   []Depends `json:"recommends" yaml:"recommends" toml:"recommends"`
	Suggests     []Depends `json:"suggests" yaml:"suggests" toml:"suggests"`
}

// Depends is one entry of a relationship field.
type Depends struct {
	Package string `json:"package" yaml:"package" toml:"package"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// Recommends and Suggests are deliberately mapped to Runtime.
var relationships = []struct {
	field func(Package) []Depends
	t     packages.DependencyType
}{
	{func(p Package) []Depends { return p.Depends }, packages.Runtime},
	{func(p Package) []Depends { return p.BuildDepends }, packages.Build},
	{func(p Package) []Depends { return p.Recommends }, packages.Runtime},
	{func(p Package) []Depends { return p.Suggests }, packages.Runtime},
}

// Adapter normalizes Debian records.
type Adapter struct{}

var _ sources.Adapter[Package] = (*Adapter)(nil)

// New creates a Debian adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID implements sources.Adapter.
func (a *Adapter) ID() sources.ID {
	return sources.DebianID
}

// Normalize implements sources.Adapter.
func (a *Adapter) Normalize(p Package) packages.NormalizedPackage {
	np := packages.NormalizedPackage{Identifier: ImportID(p.Package)}
	for _, rel := range relationships {
		for _, d := range rel.field(p) {
			if d.Package == "" {
				continue
			}
			np.Dependencies = append(np.Dependencies, packages.ParsedDependency{
				Name: ImportID(d.Package),
				Type: rel.t,
			})
		}
	}
	return np
}

// Describe implements sources.Adapter.
func (a *Adapter) Describe(p Package) packages.Descriptor {
	id := ImportID(p.Package)
	return packages.Descriptor{
		ImportID:      id,
		Name:          p.Package,
		DerivedID:     id,
		Readme:        p.Description,
		ReadmeTracked: true,
	}
}

// URLs implements sources.Adapter. The source URL also counts as the
// repository when it is hosted on GitHub.
func (a *Adapter) URLs(p Package) []packages.URLCandidate {
	urls := []packages.URLCandidate{{URL: p.Homepage, Type: packages.URLTypeHomepage}}

	source := p.VcsGit
	if source == "" {
		source = p.VcsBrowser
	}
	urls = append(urls, packages.URLCandidate{URL: source, Type: packages.URLTypeSource})
	if packages.IsGitHubURL(source) {
		urls = append(urls, packages.URLCandidate{URL: source, Type: packages.URLTypeRepository})
	}
	return urls
}

// ImportID returns the import id of a Debian package name.
func ImportID(name string) string {
	if name == "" {
		return ""
	}
	return Prefix + name
}
