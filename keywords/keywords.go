// Package keywords extracts ranked keyword phrases from annotated
// documents.
//
// Two algorithms are provided:
//
//   - RAKE: frequency/degree scoring over candidate phrases (maximal
//     runs of alphabetic non-stopword tokens, 1-3 words). Cheap, favors
//     multi-word phrases.
//   - TextRank: graph-based co-occurrence ranking of noun and adjective
//     lemmas via damped power iteration (PageRank-style). Favors central
//     single concepts and also yields a dependency graph around the
//     selected words.
//
// Both rankers are deterministic for a fixed document and stopword set,
// return scores rounded to 4 decimal digits, and yield empty results
// (never an error) when no candidates survive filtering.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - Phrase quality depends entirely on the annotation pipeline's
//     lemmas and POS tags; grammatical correctness of extracted phrases
//     is not guaranteed.
//   - Phrases longer than three tokens are discarded as noise rather
//     than split.
package keywords

import "math"

const (
	// defaultTopK is the number of keywords returned when the caller
	// passes a non-positive limit.
	defaultTopK = 10

	// RAKE candidate phrase length bounds.
	minPhraseLen = 1
	maxPhraseLen = 3

	// TextRank parameters.
	textrankWindow  = 4    // co-occurrence window over the candidate sequence
	textrankDamping = 0.85 // damping factor d
	textrankEpsilon = 1e-5 // L1 convergence tolerance
	textrankMaxIter = 100  // iteration cap, bounds non-convergence
)

// Keyword is a ranked keyword phrase. Entity carries the entity-type
// label attached by the aggregator when the phrase matches a recognized
// named entity; it is empty otherwise.
type Keyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Entity  string  `json:"ner,omitempty"`
}

// round4 rounds a score to 4 decimal digits for output stability.
func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
