package crates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync/internal/sources/crates"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

func TestNormalize(t *testing.T) {
	a := crates.New()
	assert.Equal(t, sources.CratesID, a.ID())

	tests := []struct {
		name  string
		crate crates.Crate
		want  []packages.ParsedDependency
	}{
		{
			name:  "no version",
			crate: crates.Crate{ID: 123, Name: "test_crate"},
		},
		{
			name:  "no dependencies",
			crate: crates.Crate{ID: 456, LatestVersion: &crates.Version{Num: "1.0.0"}},
		},
		{
			name: "every kind",
			crate: crates.Crate{ID: 789, LatestVersion: &crates.Version{Num: "1.0.0", Dependencies: []crates.Dependency{
				{DependencyID: 1, Kind: crates.KindNormal},
				{DependencyID: 2, Kind: crates.KindBuild},
				{DependencyID: 3, Kind: crates.KindDev},
				{DependencyID: 4, Kind: crates.KindOptional},
			}}},
			want: []packages.ParsedDependency{
				{Name: "1", Type: packages.Runtime},
				{Name: "2", Type: packages.Build},
				{Name: "3", Type: packages.Development},
				{Name: "4", Type: packages.Optional},
			},
		},
		{
			name: "unmapped kind and missing id dropped",
			crate: crates.Crate{ID: 5, LatestVersion: &crates.Version{Dependencies: []crates.Dependency{
				{DependencyID: 1, Kind: "peer"},
				{DependencyID: 0, Kind: crates.KindNormal},
				{DependencyID: 2, Kind: ""},
				{DependencyID: 3, Kind: crates.KindNormal},
			}}},
			want: []packages.ParsedDependency{{Name: "3", Type: packages.Runtime}},
		},
		{
			name: "duplicates are kept for deduplication later",
			crate: crates.Crate{ID: 6, LatestVersion: &crates.Version{Dependencies: []crates.Dependency{
				{DependencyID: 9, Kind: crates.KindDev},
				{DependencyID: 9, Kind: crates.KindNormal},
			}}},
			want: []packages.ParsedDependency{
				{Name: "9", Type: packages.Development},
				{Name: "9", Type: packages.Runtime},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Normalize(tt.crate)
			assert.NotEmpty(t, got.Identifier)
			assert.Equal(t, tt.want, got.Dependencies)
		})
	}
}

func TestLatest(t *testing.T) {
	explicit := &crates.Version{Num: "0.1.0"}
	assert.Same(t, explicit, crates.Latest(crates.Crate{LatestVersion: explicit, Versions: []crates.Version{{Num: "9.9.9"}}}))

	c := crates.Crate{Versions: []crates.Version{
		{Num: "1.2.0"},
		{Num: "not-a-version"},
		{Num: "1.10.0"},
		{Num: "2.0.0-rc.1"},
		{Num: "1.9.3"},
	}}
	got := crates.Latest(c)
	require.NotNil(t, got)
	assert.Equal(t, "1.10.0", got.Num)

	pre := crates.Crate{Versions: []crates.Version{{Num: "0.1.0-alpha"}, {Num: "0.1.0-beta"}}}
	got = crates.Latest(pre)
	require.NotNil(t, got)
	assert.Equal(t, "0.1.0-beta", got.Num)

	assert.Nil(t, crates.Latest(crates.Crate{Versions: []crates.Version{{Num: "garbage"}}}))
}

func TestNormalizeUsesHighestVersion(t *testing.T) {
	c := crates.Crate{ID: 1, Versions: []crates.Version{
		{Num: "0.9.0", Dependencies: []crates.Dependency{{DependencyID: 100, Kind: crates.KindNormal}}},
		{Num: "1.0.0", Dependencies: []crates.Dependency{{DependencyID: 200, Kind: crates.KindBuild}}},
	}}
	got := crates.New().Normalize(c)
	assert.Equal(t, []packages.ParsedDependency{{Name: "200", Type: packages.Build}}, got.Dependencies)
}

func TestDescribeAndURLs(t *testing.T) {
	a := crates.New()
	c := crates.Crate{
		ID:            463,
		Name:          "serde",
		Readme:        "A serialization framework",
		Homepage:      "https://serde.rs",
		Repository:    "https://github.com/serde-rs/serde",
		Documentation: "https://docs.rs/serde",
	}

	assert.Equal(t, packages.Descriptor{
		ImportID:      "463",
		Name:          "serde",
		DerivedID:     "crates/serde",
		Readme:        "A serialization framework",
		ReadmeTracked: true,
	}, a.Describe(c))
	assert.Equal(t, "463", a.Normalize(c).Identifier)

	assert.Equal(t, []packages.URLCandidate{
		{URL: "https://serde.rs", Type: packages.URLTypeHomepage},
		{URL: "https://github.com/serde-rs/serde", Type: packages.URLTypeRepository},
		{URL: "https://docs.rs/serde", Type: packages.URLTypeDocumentation},
		{URL: "", Type: packages.URLTypeSource},
	}, a.URLs(c))
}
