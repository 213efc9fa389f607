// Package groupsync converges mailing-group membership to what the roster
// says it should be. The diff is a true set difference over normalized
// addresses; applying it twice in a row is a no-op.
package groupsync

import (
	"sort"
	"strings"
)

// Normalize canonicalizes an email for comparison: trimmed, lowercased.
// Group directories are case-insensitive on addresses, the roster is not.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSet builds a membership set from raw addresses, dropping blanks.
func NormalizeSet(emails []string) map[string]bool {
	out := make(map[string]bool, len(emails))
	for _, e := range emails {
		if n := Normalize(e); n != "" {
			out[n] = true
		}
	}
	return out
}

// Diff computes the minimal add/remove lists to converge current -> required.
// Inputs are treated as sets; enumeration order never affects the result.
// Returned slices are sorted for stable logs.
func Diff(required, current map[string]bool) (toAdd, toRemove []string) {
	for e := range required {
		if !current[e] {
			toAdd = append(toAdd, e)
		}
	}
	for e := range current {
		if !required[e] {
			toRemove = append(toRemove, e)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}
