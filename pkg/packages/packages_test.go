package packages_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
)

func TestDependencyTypePriority(t *testing.T) {
	types := packages.DependencyTypes()
	require.Len(t, types, 6)

	for i, dt := range types {
		assert.Equal(t, i+1, dt.Priority(), dt.String())
		assert.True(t, dt.Valid())
	}
	assert.True(t, packages.Runtime.Outranks(packages.Build))
	assert.False(t, packages.Recommended.Outranks(packages.Optional))
	assert.False(t, packages.Test.Outranks(packages.Test))
	assert.False(t, packages.DependencyType(42).Valid())
	assert.Equal(t, 7, packages.DependencyType(42).Priority())
}

func TestDependencyTypeText(t *testing.T) {
	tests := []struct {
		in    string
		want  packages.DependencyType
		title string
	}{
		{"runtime", packages.Runtime, "Runtime"},
		{"BUILD", packages.Build, "Build"},
		{" test ", packages.Test, "Test"},
		{"development", packages.Development, "Development"},
		{"optional", packages.Optional, "Optional"},
		{"Recommended", packages.Recommended, "Recommended"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := packages.ParseDependencyType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.title, got.Title())
		})
	}

	_, err := packages.ParseDependencyType("peer")
	assert.True(t, errors.IsUnknownType(err))

	_, err = packages.DependencyType(0).MarshalText()
	assert.ErrorIs(t, err, errors.ErrUnknownDependencyType)
}

func TestDependencyTypeJSON(t *testing.T) {
	in := packages.ParsedDependency{Name: "openssl", Type: packages.Build}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"openssl","type":"build"}`, string(data))

	var out packages.ParsedDependency
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"name":"x","type":"peer"}`), &out))
}

func TestURLType(t *testing.T) {
	for _, ut := range packages.URLTypes() {
		got, err := packages.ParseURLType(ut.String())
		require.NoError(t, err)
		assert.Equal(t, ut, got)
	}
	_, err := packages.ParseURLType("issues")
	assert.ErrorIs(t, err, errors.ErrUnknownURLType)
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name     string
		declared []packages.ParsedDependency
		want     map[string]packages.DependencyType
	}{
		{
			name:     "empty",
			declared: nil,
			want:     map[string]packages.DependencyType{},
		},
		{
			name: "runtime beats build",
			declared: []packages.ParsedDependency{
				{Name: "zlib", Type: packages.Build},
				{Name: "zlib", Type: packages.Runtime},
			},
			want: map[string]packages.DependencyType{"zlib": packages.Runtime},
		},
		{
			name: "test beats optional and recommended",
			declared: []packages.ParsedDependency{
				{Name: "pytest", Type: packages.Recommended},
				{Name: "pytest", Type: packages.Test},
				{Name: "pytest", Type: packages.Optional},
			},
			want: map[string]packages.DependencyType{"pytest": packages.Test},
		},
		{
			name: "empty names skipped",
			declared: []packages.ParsedDependency{
				{Name: "", Type: packages.Runtime},
				{Name: "curl", Type: packages.Development},
			},
			want: map[string]packages.DependencyType{"curl": packages.Development},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, packages.Deduplicate(tt.declared))
		})
	}
}

func TestDeduplicateOrderIndependent(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	types := packages.DependencyTypes()

	rng := rand.New(rand.NewSource(7))
	var declared []packages.ParsedDependency
	for i := 0; i < 40; i++ {
		declared = append(declared, packages.ParsedDependency{
			Name: names[rng.Intn(len(names))],
			Type: types[rng.Intn(len(types))],
		})
	}

	// the kept type is the lowest priority value declared for each name
	want := map[string]packages.DependencyType{}
	for _, d := range declared {
		if cur, ok := want[d.Name]; !ok || d.Type.Priority() < cur.Priority() {
			want[d.Name] = d.Type
		}
	}

	for i := 0; i < 25; i++ {
		shuffled := append([]packages.ParsedDependency(nil), declared...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, packages.Deduplicate(shuffled))
	}
}
