// Package annotate defines the linguistic annotation data model consumed
// by the extraction packages: tokens with lemma, coarse part-of-speech,
// dependency label, head reference, optional entity type, and sentence
// segmentation, plus document-level entity spans.
//
// Documents are produced by an external annotation pipeline (see the
// Pipeline interface) and are immutable once produced: the extraction
// packages only read them, so a single Document may be shared by
// concurrent extractors within one analysis request.
//
// Unknown or missing tags are never an error. Extractors treat tags they
// do not recognize as simply non-matching, and the traversal helpers
// guard against dangling head indices.
package annotate

// Coarse part-of-speech tags recognized by the extractors
// (Universal POS subset).
const (
	Noun = "NOUN"
	Adj  = "ADJ"
	Verb = "VERB"
	Aux  = "AUX"
)

// Dependency labels the extractors match on. Pipelines may emit any
// label vocabulary; labels outside this set are ignored, not rejected.
const (
	DepNSubj     = "nsubj"
	DepNSubjPass = "nsubjpass"
	DepAmod      = "amod"
	DepNmod      = "nmod"
	DepObl       = "obl"
	DepPrep      = "prep"
)

// Token is a single annotated token. Head is the index of the syntactic
// head token within the document; the root token points at itself.
type Token struct {
	Text   string // surface form
	Lemma  string // dictionary/base form
	POS    string // coarse part-of-speech tag
	Dep    string // dependency label relative to the head
	Head   int    // document index of the syntactic head (self for root)
	Entity string // entity-type label, empty if none
	Sent   int    // sentence index
	Alpha  bool   // true if the surface form is purely alphabetic
}

// Span is a half-open token index range [Start, End).
type Span struct {
	Start int
	End   int
}

// EntitySpan is a document-level named-entity span.
type EntitySpan struct {
	Text  string
	Label string
}

// Document is an ordered token sequence partitioned into sentences,
// plus the named-entity spans recognized over it. Created per analysis
// request and discarded with the result.
type Document struct {
	Tokens    []Token
	Sentences []Span
	Entities  []EntitySpan
}

// Pipeline produces annotated documents from raw text.
// Implementations wrap an external annotation stack; the extraction
// packages depend only on this interface.
type Pipeline interface {
	Annotate(text string) (*Document, error)
}

// Head returns the head token of the token at index i and reports
// whether it exists. A dangling or out-of-range head index yields false.
func (d *Document) Head(i int) (Token, bool) {
	if i < 0 || i >= len(d.Tokens) {
		return Token{}, false
	}
	h := d.Tokens[i].Head
	if h < 0 || h >= len(d.Tokens) {
		return Token{}, false
	}
	return d.Tokens[h], true
}

// Children returns the indices of tokens whose head is i, in document
// order. The token itself is excluded even when it is the root.
func (d *Document) Children(i int) []int {
	var kids []int
	for j, t := range d.Tokens {
		if t.Head == i && j != i {
			kids = append(kids, j)
		}
	}
	return kids
}

// SentenceSpans returns the sentence partition. When the pipeline did
// not segment sentences but tokens exist, the whole document is treated
// as a single sentence so extraction degrades gracefully.
func (d *Document) SentenceSpans() []Span {
	if len(d.Sentences) == 0 && len(d.Tokens) > 0 {
		return []Span{{Start: 0, End: len(d.Tokens)}}
	}
	return d.Sentences
}
