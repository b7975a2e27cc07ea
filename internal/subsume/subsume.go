// Package subsume removes phrases that occur verbatim inside a longer
// phrase of the same list. It backs the deduplication pass applied to
// QA buckets and entity groups.
package subsume

import (
	"slices"
	"strings"
)

// Filter returns the phrases that are not subsumed: a phrase is dropped
// when it is an exact duplicate of, or a contiguous substring of, an
// already-kept phrase. Phrases are considered longest first (by word
// count, stable), so the longest phrase in an overlapping chain always
// survives. The result is ordered longest first.
func Filter(phrases []string) []string {
	kept := make([]string, 0, len(phrases))
	if len(phrases) == 0 {
		return kept
	}

	sorted := slices.Clone(phrases)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return len(strings.Fields(b)) - len(strings.Fields(a))
	})

	for _, p := range sorted {
		subsumed := false
		for _, k := range kept {
			if strings.Contains(k, p) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, p)
		}
	}
	return kept
}
