package deploy

import (
	"path"
	"strings"
)

// Match reports whether the slash-separated relative path name matches pattern.
//
// "*" and "?" stay within one path segment; "**" spans any number of segments.
// A pattern without "/" is also tried against the base name, so "*.html"
// matches "docs/index.html". Malformed patterns match nothing.
func Match(pattern, name string) bool {
	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
	}

	if matchGlob(pattern, name) {
		return true
	}

	if !strings.Contains(pattern, "/") && strings.Contains(name, "/") {
		return matchGlob(pattern, path.Base(name))
	}

	return false
}

// MatchAny reports whether name matches at least one of patterns.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}

	return false
}

// Selects reports whether the group uploads name. Filters apply in order,
// excludes first and includes after, and the last matching filter decides;
// a path no filter matches is selected.
func (g Group) Selects(name string) bool {
	if MatchAny(g.Include, name) {
		return true
	}

	return !MatchAny(g.Exclude, name)
}

func matchGlob(pattern, name string) bool {
	matched, err := path.Match(pattern, name)

	return err == nil && matched
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}

			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}

			return false
		}

		if len(name) == 0 || !matchGlob(pattern[0], name[0]) {
			return false
		}

		pattern, name = pattern[1:], name[1:]
	}

	return len(name) == 0
}
