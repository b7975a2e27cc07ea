package keywords

import (
	"slices"
	"strings"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/normalize"
	"github.com/ro-ai-labs/ro-text-mining/stopwords"
)

// RAKE returns the top keyword phrases scored by co-occurrence degree
// and frequency. A word's score is (degree+frequency)/frequency; a
// phrase scores the sum of its words. Results are sorted by score
// descending (ties keep first-seen order), deduplicated by folded
// phrase form, and truncated to topK (default 10 when topK <= 0).
// Returns nil when no candidate phrases survive filtering.
func RAKE(doc *annotate.Document, stops stopwords.Set, topK int) []Keyword {
	phrases := rakePhrases(doc, stops)
	if len(phrases) == 0 {
		return nil
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	wordScores := rakeWordScores(phrases)

	// Score each distinct phrase once, preserving first-seen order so
	// the later stable sort breaks ties deterministically.
	type scored struct {
		phrase string
		score  float64
	}
	seen := make(map[string]struct{}, len(phrases))
	ranked := make([]scored, 0, len(phrases))
	for _, phrase := range phrases {
		joined := strings.Join(phrase, " ")
		if _, ok := seen[joined]; ok {
			continue
		}
		seen[joined] = struct{}{}
		total := 0.0
		for _, w := range phrase {
			total += wordScores[w]
		}
		ranked = append(ranked, scored{phrase: joined, score: total})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	// Phrases are built from folded lemmas, but dedup by folded form
	// anyway so the uniqueness invariant never depends on that detail.
	norms := make(map[string]struct{}, len(ranked))
	out := make([]Keyword, 0, min(topK, len(ranked)))
	for _, s := range ranked {
		norm := normalize.Fold(s.phrase)
		if _, ok := norms[norm]; ok {
			continue
		}
		norms[norm] = struct{}{}
		out = append(out, Keyword{Keyword: s.phrase, Score: round4(s.score)})
		if len(out) == topK {
			break
		}
	}
	return out
}

// rakePhrases segments the token stream into candidate phrases: a token
// joins the current phrase iff it is alphabetic and its folded lemma is
// not a stopword; any other token closes the phrase. Only phrases of
// 1-3 words are retained.
func rakePhrases(doc *annotate.Document, stops stopwords.Set) [][]string {
	var phrases [][]string
	var current []string

	flush := func() {
		if n := len(current); n >= minPhraseLen && n <= maxPhraseLen {
			phrases = append(phrases, current)
		}
		current = nil
	}

	for _, tok := range doc.Tokens {
		lemma := normalize.Fold(tok.Lemma)
		if tok.Alpha && lemma != "" && !stops.Has(lemma) {
			current = append(current, lemma)
			continue
		}
		flush()
	}
	flush()
	return phrases
}

// rakeWordScores computes (degree+frequency)/frequency per distinct
// word. Degree sums (phrase length - 1) over the phrases containing the
// word, counting how often it co-occurs with others inside a phrase.
func rakeWordScores(phrases [][]string) map[string]float64 {
	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, phrase := range phrases {
		n := len(phrase)
		for _, w := range phrase {
			freq[w]++
			degree[w] += n - 1
		}
	}

	scores := make(map[string]float64, len(freq))
	for w, f := range freq {
		scores[w] = float64(degree[w]+f) / float64(f)
	}
	return scores
}
