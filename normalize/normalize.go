// Package normalize provides the canonical form used for phrase
// comparison and deduplication across the extraction packages.
//
// Fold lowercases its input and strips combining diacritical marks
// (ă → a, ş → s, â → a), so that "Mănâncă" and "mananca" compare equal.
// Strip removes diacritics without changing case.
//
// Folding is idempotent: Fold(Fold(s)) == Fold(s).
//
// All functions are safe for concurrent use by multiple goroutines.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strip removes combining diacritical marks from s. The input is
// decomposed to NFD and every nonspacing mark is dropped.
// Returns the input unchanged if the transform fails (malformed UTF-8
// passes through rather than erroring).
func Strip(s string) string {
	if s == "" {
		return s
	}
	// transform.Chain carries state between calls, so build it per call
	// to stay safe under concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold returns the canonical comparison form of s: lowercased with
// diacritics stripped.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return Strip(strings.ToLower(s))
}
