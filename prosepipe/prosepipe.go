// Package prosepipe adapts the prose NLP library to the annotate
// Pipeline interface. It is a best-effort English pipeline: tokens get
// a coarse POS tag mapped from the Penn Treebank tagset, a snowball
// stem as lemma proxy, per-sentence segmentation, and named-entity
// spans.
//
// prose performs no dependency parsing, so every token points at itself
// with an empty dependency label; the extraction packages treat those
// as non-matching, which disables the dependency-driven outputs
// (triples, relations, who-bucket) while keywords, NER, and the causal
// why-bucket keep working. Romanian or full dependency annotation must
// come from an external pipeline implementing annotate.Pipeline.
package prosepipe

import (
	"fmt"
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
	snowball "github.com/kljensen/snowball/english"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
)

// Pipeline annotates English text with prose. The zero value is ready
// to use and safe for concurrent use.
type Pipeline struct{}

// New returns a prose-backed Pipeline.
func New() *Pipeline { return &Pipeline{} }

// Annotate segments text into sentences and annotates each one.
// Blank input yields an empty document, not an error.
func (p *Pipeline) Annotate(text string) (*annotate.Document, error) {
	doc := &annotate.Document{}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}

	outer, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segmenting sentences: %w", err)
	}

	for si, sent := range outer.Sentences() {
		sd, err := prose.NewDocument(sent.Text)
		if err != nil {
			continue
		}

		start := len(doc.Tokens)
		for _, tok := range sd.Tokens() {
			i := len(doc.Tokens)
			doc.Tokens = append(doc.Tokens, annotate.Token{
				Text:   tok.Text,
				Lemma:  lemma(tok.Text),
				POS:    coarsePOS(tok.Tag),
				Head:   i, // prose has no dependency layer
				Entity: entityLabel(tok.Label),
				Sent:   si,
				Alpha:  isAlpha(tok.Text),
			})
		}
		doc.Sentences = append(doc.Sentences, annotate.Span{Start: start, End: len(doc.Tokens)})

		for _, e := range sd.Entities() {
			doc.Entities = append(doc.Entities, annotate.EntitySpan{Text: e.Text, Label: e.Label})
		}
	}
	return doc, nil
}

// lemma approximates lemmatization with a snowball stem.
func lemma(word string) string {
	low := strings.ToLower(word)
	if st := snowball.Stem(low, false); st != "" {
		return st
	}
	return low
}

// coarsePOS maps Penn Treebank tags onto the coarse tags the extractors
// match on. Unmapped tags stay empty, which never matches.
func coarsePOS(tag string) string {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return annotate.Noun
	case strings.HasPrefix(tag, "JJ"):
		return annotate.Adj
	case strings.HasPrefix(tag, "VB"):
		return annotate.Verb
	case tag == "MD":
		return annotate.Aux
	}
	return ""
}

// entityLabel strips the IOB prefix from a chunk label ("B-GPE" -> "GPE").
func entityLabel(label string) string {
	if i := strings.IndexByte(label, '-'); i >= 0 {
		return label[i+1:]
	}
	return ""
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
