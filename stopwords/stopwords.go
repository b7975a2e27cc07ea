// Package stopwords provides the stopword set used by the keyword
// rankers: embedded Romanian and English word lists plus a handful of
// academic abbreviations, loaded once per process.
//
// All words are stored in their folded form (lowercase, diacritics
// stripped), so "că" and "ca" resolve to the same entry. Callers are
// expected to fold lookups the same way; folding twice is harmless.
//
// Load returns the shared default set. Extractors take a Set parameter
// rather than calling Load themselves, so tests can inject small
// purpose-built sets.
package stopwords

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"

	"github.com/ro-ai-labs/ro-text-mining/normalize"
)

//go:embed data/ro.txt
var roWords []byte

//go:embed data/en.txt
var enWords []byte

// extras are non-language abbreviations common in academic text.
var extras = []string{"etc", "ie", "eg", "et", "al", "fig", "figure"}

// Set is a stopword lookup table keyed by folded word form.
type Set map[string]struct{}

// New builds a Set from words, folding each entry.
func New(words ...string) Set {
	s := make(Set, len(words))
	s.Add(words...)
	return s
}

// Add folds and inserts words into the set.
func (s Set) Add(words ...string) {
	for _, w := range words {
		w = normalize.Fold(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
}

// Has reports whether the folded word w is a stopword.
// w must already be in folded form.
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

var (
	loadOnce   sync.Once
	defaultSet Set
)

// Load returns the process-wide default stopword set: the embedded
// Romanian and English lists plus academic abbreviations. The set is
// built on first use and reused afterwards; callers must not mutate it.
func Load() Set {
	loadOnce.Do(func() {
		defaultSet = make(Set, 512)
		addList(defaultSet, roWords)
		addList(defaultSet, enWords)
		defaultSet.Add(extras...)
	})
	return defaultSet
}

// addList inserts every non-empty, non-comment line of an embedded list.
func addList(s Set, data []byte) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
}
