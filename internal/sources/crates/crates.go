// Package crates adapts crates.io records. Crates are identified by their
// numeric crate id, and dependencies point at other crate ids.
package crates

import (
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Crate is one crate from a crates.io dump.
type Crate struct {
	ID            int64     `json:"id" yaml:"id" toml:"id"`
	Name          string    `json:"name" yaml:"name" toml:"name"`
	Readme        string    `json:"readme" yaml:"readme" toml:"readme"`
	Homepage      string    `json:"homepage" yaml:"homepage" toml:"homepage"`
	Repository    string    `json:"repository" yaml:"repository" toml:"repository"`
	Documentation string    `json:"documentation" yaml:"documentation" toml:"documentation"`
	Source        string    `json:"source" yaml:"source" toml:"source"`
	LatestVersion *Version  `json:"latest_version,omitempty" yaml:"latest_version,omitempty" toml:"latest_version,omitempty"`
	Versions      []Version `json:"versions,omitempty" yaml:"versions,omitempty" toml:"versions,omitempty"`
}

// Version is a published crate version.
type Version struct {
	Num          string       `json:"num" yaml:"num" toml:"num"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

// Dependency is a dependency of a crate version.
type Dependency struct {
	DependencyID int64  `json:"dependency_id" yaml:"dependency_id" toml:"dependency_id"`
	Kind         string `json:"kind" yaml:"kind" toml:"kind"`
}

// Dependency kinds as published by crates.io.
const (
	KindNormal   = "normal"
	KindBuild    = "build"
	KindDev      = "dev"
	KindOptional = "optional"
)

var kinds = map[string]packages.DependencyType{
	KindNormal:   packages.Runtime,
	KindBuild:    packages.Build,
	KindDev:      packages.Development,
	KindOptional: packages.Optional,
}

// Adapter normalizes crates.io records.
type Adapter struct{}

var _ sources.Adapter[Crate] = (*Adapter)(nil)

// New creates a crates adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID implements sources.Adapter.
func (a *Adapter) ID() sources.ID {
	return sources.CratesID
}

// Normalize implements sources.Adapter.
func (a *Adapter) Normalize(c Crate) packages.NormalizedPackage {
	np := packages.NormalizedPackage{Identifier: importID(c)}

	v := Latest(c)
	if v == nil {
		return np
	}
	for _, d := range v.Dependencies {
		if d.DependencyID == 0 {
			continue
		}
		t, ok := kinds[d.Kind]
		if !ok {
			continue
		}
		np.Dependencies = append(np.Dependencies, packages.ParsedDependency{
			Name: strconv.FormatInt(d.DependencyID, 10),
			Type: t,
		})
	}
	return np
}

// Describe implements sources.Adapter.
func (a *Adapter) Describe(c Crate) packages.Descriptor {
	return packages.Descriptor{
		ImportID:      importID(c),
		Name:          c.Name,
		DerivedID:     "crates/" + c.Name,
		Readme:        c.Readme,
		ReadmeTracked: true,
	}
}

// URLs implements sources.Adapter.
func (a *Adapter) URLs(c Crate) []packages.URLCandidate {
	return []packages.URLCandidate{
		{URL: c.Homepage, Type: packages.URLTypeHomepage},
		{URL: c.Repository, Type: packages.URLTypeRepository},
		{URL: c.Documentation, Type: packages.URLTypeDocumentation},
		{URL: c.Source, Type: packages.URLTypeSource},
	}
}

// Latest returns the version whose dependencies describe the crate: the
// explicit latest version if present, else the highest stable semver among
// Versions, else the highest pre-release. Unparseable versions are ignored.
func Latest(c Crate) *Version {
	if c.LatestVersion != nil {
		return c.LatestVersion
	}

	var best, bestPre *Version
	var bestV, bestPreV *semver.Version
	for i := range c.Versions {
		sv, err := semver.NewVersion(c.Versions[i].Num)
		if err != nil {
			continue
		}
		if sv.Prerelease() != "" {
			if bestPreV == nil || sv.GreaterThan(bestPreV) {
				bestPre, bestPreV = &c.Versions[i], sv
			}
			continue
		}
		if bestV == nil || sv.GreaterThan(bestV) {
			best, bestV = &c.Versions[i], sv
		}
	}
	if best != nil {
		return best
	}
	return bestPre
}

func importID(c Crate) string {
	if c.ID == 0 {
		return ""
	}
	return strconv.FormatInt(c.ID, 10)
}
