package sparam

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the names containing prefix, preserving order.
// Matching is case-sensitive substring containment; an empty prefix keeps
// every name. Driver and receiver lists are derived this way.
func Filter(names []string, prefix string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// FilterFold is Filter with Unicode case folding on both sides.
func FilterFold(names []string, prefix string) []string {
	if prefix == "" {
		return Filter(names, "")
	}
	fold := cases.Fold()
	p := fold.String(prefix)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(fold.String(n), p) {
			out = append(out, n)
		}
	}
	return out
}
