// Package homebrew adapts Homebrew formula records. Formulae are identified
// by name.
package homebrew

import (
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Formula is one Homebrew formula.
type Formula struct {
	Formula                 string   `json:"formula" yaml:"formula" toml:"formula"`
	Description             string   `json:"description" yaml:"description" toml:"description"`
	Homepage                string   `json:"homepage" yaml:"homepage" toml:"homepage"`
	Source                  string   `json:"source" yaml:"source" toml:"source"`
	Repository              string   `json:"repository" yaml:"repository" toml:"repository"`
	Dependencies            []string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	BuildDependencies       []string `json:"build_dependencies" yaml:"build_dependencies" toml:"build_dependencies"`
	TestDependencies        []string `json:"test_dependencies" yaml:"test_dependencies" toml:"test_dependencies"`
	RecommendedDependencies []string `json:"recommended_dependencies" yaml:"recommended_dependencies" toml:"recommended_dependencies"`
	OptionalDependencies    []string `json:"optional_dependencies" yaml:"optional_dependencies" toml:"optional_dependencies"`
}

// Adapter normalizes Homebrew formulae.
type Adapter struct{}

var _ sources.Adapter[Formula] = (*Adapter)(nil)

// New creates a Homebrew adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID implements sources.Adapter.
func (a *Adapter) ID() sources.ID {
	return sources.HomebrewID
}

// Normalize implements sources.Adapter.
func (a *Adapter) Normalize(f Formula) packages.NormalizedPackage {
	np := packages.NormalizedPackage{Identifier: f.Formula}
	np.Dependencies = appendNames(np.Dependencies, f.Dependencies, packages.Runtime)
	np.Dependencies = appendNames(np.Dependencies, f.BuildDependencies, packages.Build)
	np.Dependencies = appendNames(np.Dependencies, f.TestDependencies, packages.Test)
	np.Dependencies = appendNames(np.Dependencies, f.RecommendedDependencies, packages.Recommended)
	np.Dependencies = appendNames(np.Dependencies, f.OptionalDependencies, packages.Optional)
	return np
}

// Describe implements sources.Adapter.
func (a *Adapter) Describe(f Formula) packages.Descriptor {
	return packages.Descriptor{
		ImportID:      f.Formula,
		Name:          f.Formula,
		DerivedID:     "homebrew/" + f.Formula,
		Readme:        f.Description,
		ReadmeTracked: true,
	}
}

// URLs implements sources.Adapter.
func (a *Adapter) URLs(f Formula) []packages.URLCandidate {
	return []packages.URLCandidate{
		{URL: f.Homepage, Type: packages.URLTypeHomepage},
		{URL: f.Source, Type: packages.URLTypeSource},
		{URL: f.Repository, Type: packages.URLTypeRepository},
	}
}

func appendNames(dst []packages.ParsedDependency, names []string, t packages.DependencyType) []packages.ParsedDependency {
	for _, n := range names {
		if n == "" {
			continue
		}
		dst = append(dst, packages.ParsedDependency{Name: n, Type: t})
	}
	return dst
}
