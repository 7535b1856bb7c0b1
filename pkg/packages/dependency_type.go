package packages

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/pkgsync/pkg/errors"
)

// DependencyType is the normalized semantic role of a dependency edge.
type DependencyType int

// Dependency types, declared in priority order.
const (
	Runtime DependencyType = iota + 1
	Build
	Test
	Development
	Optional
	Recommended
)

// priorities is the total order used to pick one type when a dependency is
// declared more than once. Lower wins.
var priorities = map[DependencyType]int{
	Runtime:     1,
	Build:       2,
	Test:        3,
	Development: 4,
	Optional:    5,
	Recommended: 6,
}

var dependencyTypeNames = map[DependencyType]string{
	Runtime:     "runtime",
	Build:       "build",
	Test:        "test",
	Development: "development",
	Optional:    "optional",
	Recommended: "recommended",
}

func init() {
	seen := make(map[int]DependencyType, len(priorities))
	for _, t := range DependencyTypes() {
		p, ok := priorities[t]
		if !ok {
			panic(fmt.Sprintf("packages: dependency type %d has no priority", int(t)))
		}
		if other, dup := seen[p]; dup {
			panic(fmt.Sprintf("packages: dependency types %d and %d share priority %d", int(other), int(t), p))
		}
		seen[p] = t
		if _, ok := dependencyTypeNames[t]; !ok {
			panic(fmt.Sprintf("packages: dependency type %d has no name", int(t)))
		}
	}
}

// DependencyTypes returns every dependency type in priority order.
func DependencyTypes() []DependencyType {
	return []DependencyType{Runtime, Build, Test, Development, Optional, Recommended}
}

// Priority returns the precedence of the type; 1 is the most load-bearing.
// Unknown values sort after every known type.
func (t DependencyType) Priority() int {
	if p, ok := priorities[t]; ok {
		return p
	}
	return len(priorities) + 1
}

// Valid reports whether t is a member of the enumeration.
func (t DependencyType) Valid() bool {
	_, ok := priorities[t]
	return ok
}

// String returns the lowercase config key for the type.
func (t DependencyType) String() string {
	if name, ok := dependencyTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DependencyType(%d)", int(t))
}

// Title returns a display name, e.g. "Runtime".
func (t DependencyType) Title() string {
	return cases.Title(language.English).String(t.String())
}

// Outranks reports whether t takes precedence over other. Unknown values
// share the lowest priority and fall back to numeric order.
func (t DependencyType) Outranks(other DependencyType) bool {
	tp, op := t.Priority(), other.Priority()
	if tp != op {
		return tp < op
	}
	return t < other
}

// MarshalText implements encoding.TextMarshaler.
func (t DependencyType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.NewUnknownDependencyTypeError(t.String())
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DependencyType) UnmarshalText(text []byte) error {
	parsed, err := ParseDependencyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseDependencyType parses a case-insensitive dependency type name.
func ParseDependencyType(s string) (DependencyType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range dependencyTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.NewUnknownDependencyTypeError(s)
}
