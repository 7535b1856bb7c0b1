package packages

import (
	"strings"

	"github.com/agentstation/pkgsync/pkg/errors"
)

// URLType classifies a URL attached to a package.
type URLType string

// URL types.
const (
	URLTypeHomepage      URLType = "homepage"
	URLTypeRepository    URLType = "repository"
	URLTypeDocumentation URLType = "documentation"
	URLTypeSource        URLType = "source"
)

// URLTypes returns every URL type.
func URLTypes() []URLType {
	return []URLType{URLTypeHomepage, URLTypeRepository, URLTypeDocumentation, URLTypeSource}
}

// String returns the string representation of a URL type.
func (t URLType) String() string {
	return string(t)
}

// Valid reports whether t is a known URL type.
func (t URLType) Valid() bool {
	for _, known := range URLTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseURLType parses a case-insensitive URL type name.
func ParseURLType(s string) (URLType, error) {
	t := URLType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.NewUnknownURLTypeError(s)
	}
	return t, nil
}
