// Package pkgx adapts pkgx pantry records. Projects are identified by their
// domain path (e.g. "gnu.org/wget") and declare dependencies per platform.
// pkgx has no description field, so readmes are not tracked.
package pkgx

import (
	"strings"

	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Project is one pkgx pantry entry.
type Project struct {
	Project       string            `json:"project" yaml:"project" toml:"project"`
	Homepage      string            `json:"homepage,omitempty" yaml:"homepage,omitempty" toml:"homepage,omitempty"`
	Distributable []Distributable   `json:"distributable" yaml:"distributable" toml:"distributable"`
	Dependencies  []DependencyBlock `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Build         *Stage            `json:"build,omitempty" yaml:"build,omitempty" toml:"build,omitempty"`
	Test          *Stage            `json:"test,omitempty" yaml:"test,omitempty" toml:"test,omitempty"`
}

// Distributable is a source archive location. URLs may contain
// {{version}} templates.
type Distributable struct {
	URL string `json:"url" yaml:"url" toml:"url"`
}

// Stage holds the dependencies of the build or test stage.
type Stage struct {
	Dependencies []DependencyBlock `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

// DependencyBlock lists dependencies for one platform; an empty platform
// applies to all.
type DependencyBlock struct {
	Platform     string       `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

// Dependency is a project dependency with a version constraint.
type Dependency struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Semver string `json:"semver,omitempty" yaml:"semver,omitempty" toml:"semver,omitempty"`
}

// Adapter normalizes pkgx projects.
type Adapter struct{}

var _ sources.Adapter[Project] = (*Adapter)(nil)

// New creates a pkgx adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID implements sources.Adapter.
func (a *Adapter) ID() sources.ID {
	return sources.PkgxID
}

// Normalize implements sources.Adapter.
func (a *Adapter) Normalize(p Project) packages.NormalizedPackage {
	np := packages.NormalizedPackage{Identifier: p.Project}
	np.Dependencies = appendBlocks(np.Dependencies, p.Dependencies, packages.Runtime)
	if p.Build != nil {
		np.Dependencies = appendBlocks(np.Dependencies, p.Build.Dependencies, packages.Build)
	}
	if p.Test != nil {
		np.Dependencies = appendBlocks(np.Dependencies, p.Test.Dependencies, packages.Test)
	}
	return np
}

// Describe implements sources.Adapter.
func (a *Adapter) Describe(p Project) packages.Descriptor {
	return packages.Descriptor{
		ImportID:      p.Project,
		Name:          p.Project,
		DerivedID:     "pkgx/" + p.Project,
		ReadmeTracked: false,
	}
}

// URLs implements sources.Adapter. The source is the first distributable
// with any version template trimmed; archives hosted on GitHub also yield
// the repository URL.
func (a *Adapter) URLs(p Project) []packages.URLCandidate {
	urls := []packages.URLCandidate{{URL: p.Homepage, Type: packages.URLTypeHomepage}}
	if len(p.Distributable) == 0 {
		return urls
	}

	dist := p.Distributable[0].URL
	if repo, ok := packages.GitHubRepoURL(dist); ok {
		urls = append(urls,
			packages.URLCandidate{URL: repo, Type: packages.URLTypeSource},
			packages.URLCandidate{URL: repo, Type: packages.URLTypeRepository},
		)
		return urls
	}
	return append(urls, packages.URLCandidate{URL: untemplate(dist), Type: packages.URLTypeSource})
}

// untemplate cuts a distributable URL at the last "/" before its first
// template, so "https://curl.se/download/curl-{{version}}.tar.xz" becomes
// "https://curl.se/download".
func untemplate(u string) string {
	i := strings.Index(u, "{{")
	if i < 0 {
		return u
	}
	j := strings.LastIndex(u[:i], "/")
	if j < 0 || j < len("https://") {
		return ""
	}
	return u[:j]
}

func appendBlocks(dst []packages.ParsedDependency, blocks []DependencyBlock, t packages.DependencyType) []packages.ParsedDependency {
	for _, b := range blocks {
		for _, d := range b.Dependencies {
			if d.Name == "" {
				continue
			}
			dst = append(dst, packages.ParsedDependency{Name: d.Name, Type: t})
		}
	}
	return dst
}
