// Package cli provides CLI infrastructure for kex.
package cli

import (
	"strings"
)

// MatchName resolves a possibly abbreviated name against the known names.
// An exact match wins, otherwise the prefix must select exactly one name.
// Matching ignores case. kind names the thing being looked up in errors.
func MatchName(kind, prefix string, names []string) (string, error) {
	lower := strings.ToLower(prefix)

	for _, name := range names {
		if strings.ToLower(name) == lower {
			return name, nil
		}
	}

	var matches []string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Type: kind, ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Type: kind, Prefix: prefix, Matches: matches}
	}
}
