package packages

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL string before it forms a natural key:
// whitespace trimmed, scheme and host lowercased, fragment and trailing
// slash dropped. Strings that do not parse are returned trimmed.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(s, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	return strings.TrimSuffix(u.String(), "/")
}

// IsGitHubURL reports whether raw points at github.com.
func IsGitHubURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "github.com" || host == "www.github.com"
}

// GitHubRepoURL returns the canonical https://github.com/<owner>/<repo> form
// of any URL hosted on GitHub, such as a release tarball or a .git remote.
func GitHubRepoURL(raw string) (string, bool) {
	if !IsGitHubURL(raw) {
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	owner := parts[0]
	repo := strings.TrimSuffix(parts[1], ".git")

	return "https://github.com/" + owner + "/" + repo, true
}
