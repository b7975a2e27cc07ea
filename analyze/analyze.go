// Package analyze orchestrates a full analysis request: it runs both
// keyword rankers and the triple extractor over one annotated document,
// merges their outputs with the recognized entities, derives heuristic
// question-answer buckets, and applies the subsumption filter to every
// output bucket.
//
// The three extractors have no data dependency on each other and run
// concurrently within a request; aggregation waits for all of them. The
// document is immutable, so no locking is needed beyond the join.
//
// Degenerate input degrades to empty collections: the only error an
// Analyzer returns is a failure of the annotation pipeline itself.
package analyze

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/graph"
	"github.com/ro-ai-labs/ro-text-mining/internal/subsume"
	"github.com/ro-ai-labs/ro-text-mining/keywords"
	"github.com/ro-ai-labs/ro-text-mining/normalize"
	"github.com/ro-ai-labs/ro-text-mining/stopwords"
	"github.com/ro-ai-labs/ro-text-mining/triples"
)

// Entity-type labels feeding the "where" and "when" buckets.
var (
	whereLabels = map[string]struct{}{"LOC": {}, "GPE": {}, "FACILITY": {}}
	whenLabels  = map[string]struct{}{"DATE": {}, "TIME": {}, "DATETIME": {}}
)

// whenNoise filters calendar filler words ("anul" = the year, "luna" =
// the month) that the pipeline tags as date entities but that answer
// nothing on their own.
var whenNoise = map[string]struct{}{"anul": {}, "luna": {}}

// causalRe matches Romanian causal connectives; every occurrence opens
// a candidate "why" fragment.
var causalRe = regexp.MustCompile(`pentru că|deoarece|fiindcă|din cauză că|căci`)

// causalFragmentLen caps a "why" fragment, in characters, before
// sentence truncation.
const causalFragmentLen = 200

// Result is the aggregated analysis of one document.
type Result struct {
	ExtractedText string              `json:"extractedText"`
	RAKE          []keywords.Keyword  `json:"rake"`
	TextRank      []keywords.Keyword  `json:"textrank"`
	Relations     []graph.Edge        `json:"relations"`
	KG            *graph.Graph        `json:"kg"`
	Triples       []triples.Triple    `json:"triples"`
	QA            map[string][]string `json:"qa"`
	NER           map[string][]string `json:"ner"`
}

// Analyzer runs analysis requests against a fixed pipeline and stopword
// set. Safe for concurrent use; each request is self-contained.
type Analyzer struct {
	pipe  annotate.Pipeline
	stops stopwords.Set
	topK  int
}

// New returns an Analyzer. A nil stopword set falls back to the shared
// default set; a non-positive topK uses the rankers' default of 10.
func New(pipe annotate.Pipeline, stops stopwords.Set, topK int) *Analyzer {
	if stops == nil {
		stops = stopwords.Load()
	}
	return &Analyzer{pipe: pipe, stops: stops, topK: topK}
}

// Analyze annotates text and produces the aggregated result. The only
// error path is the annotation pipeline; everything downstream degrades
// to empty collections.
func (a *Analyzer) Analyze(text string) (*Result, error) {
	doc, err := a.pipe.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotating text: %w", err)
	}

	ents := collectEntities(doc)

	var (
		rakeKW []keywords.Keyword
		trKW   []keywords.Keyword
		trps   []triples.Triple
	)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		rakeKW = keywords.RAKE(doc, a.stops, a.topK)
	}()
	go func() {
		defer wg.Done()
		trKW, _ = keywords.TextRank(doc, a.stops, a.topK)
	}()
	go func() {
		defer wg.Done()
		trps = triples.Extract(doc)
	}()
	wg.Wait()

	ents.attach(rakeKW)
	ents.attach(trKW)

	res := &Result{
		ExtractedText: text,
		RAKE:          orEmptyKeywords(rakeKW),
		TextRank:      orEmptyKeywords(trKW),
		Relations:     keywordRelations(doc, rakeKW, trKW),
		KG:            triples.Project(trps),
		Triples:       orEmptyTriples(trps),
		QA:            deriveQA(doc, text, trps, ents),
		NER:           ents.groups(),
	}
	return res, nil
}

// keywordRelations extracts dependency edges touching any word of any
// extracted keyword phrase. Self-loops and duplicate edges are dropped;
// order follows the token stream.
func keywordRelations(doc *annotate.Document, lists ...[]keywords.Keyword) []graph.Edge {
	kwTokens := make(map[string]struct{})
	for _, list := range lists {
		for _, kw := range list {
			for _, w := range strings.Fields(kw.Keyword) {
				kwTokens[normalize.Fold(w)] = struct{}{}
			}
		}
	}

	out := make([]graph.Edge, 0)
	seen := make(map[graph.Edge]struct{})
	for i, tok := range doc.Tokens {
		head, ok := doc.Head(i)
		if !ok {
			continue
		}
		src := normalize.Fold(head.Lemma)
		tgt := normalize.Fold(tok.Lemma)
		if src == tgt {
			continue
		}
		_, srcKW := kwTokens[src]
		_, tgtKW := kwTokens[tgt]
		if !srcKW && !tgtKW {
			continue
		}
		e := graph.Edge{Source: src, Target: tgt, Label: tok.Dep}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// deriveQA fills the five question buckets from dependency patterns,
// triples, entities, and causal connectives, then subsumption-filters
// each bucket.
func deriveQA(doc *annotate.Document, text string, trps []triples.Triple, ents *entitySet) map[string][]string {
	qa := map[string][]string{
		"who":   {},
		"what":  {},
		"where": {},
		"when":  {},
		"why":   {},
	}

	// who: subject of a verbal head, as "<subject> <head-lemma>".
	for i, tok := range doc.Tokens {
		if tok.Dep != annotate.DepNSubj && tok.Dep != annotate.DepNSubjPass {
			continue
		}
		head, ok := doc.Head(i)
		if !ok || (head.POS != annotate.Verb && head.POS != annotate.Aux) {
			continue
		}
		qa["who"] = append(qa["who"], normalize.Fold(tok.Text)+" "+normalize.Fold(head.Lemma))
	}

	// what: predicate-object pairs from the triples.
	for _, t := range trps {
		if t.Predicate != "" && t.Object != "" {
			qa["what"] = append(qa["what"], t.Predicate+" "+t.Object)
		}
	}

	// where/when: location and date entities.
	for _, e := range ents.order {
		if _, ok := whereLabels[e.label]; ok {
			qa["where"] = append(qa["where"], e.text)
		} else if _, ok := whenLabels[e.label]; ok {
			qa["when"] = append(qa["when"], e.text)
		}
	}

	// Oblique/prepositional tokens carrying an entity type fold in
	// directly, not only via the entity map.
	for _, tok := range doc.Tokens {
		if tok.Dep != annotate.DepObl && tok.Dep != annotate.DepPrep {
			continue
		}
		if _, ok := whenLabels[tok.Entity]; ok {
			qa["when"] = append(qa["when"], normalize.Fold(tok.Text))
		} else if _, ok := whereLabels[tok.Entity]; ok {
			qa["where"] = append(qa["where"], normalize.Fold(tok.Text))
		}
	}

	kept := qa["when"][:0]
	for _, w := range qa["when"] {
		if _, noise := whenNoise[w]; !noise {
			kept = append(kept, w)
		}
	}
	qa["when"] = kept

	qa["why"] = causalFragments(text)

	for key := range qa {
		qa[key] = subsume.Filter(qa[key])
	}
	return qa
}

// causalFragments scans the lowercased text for causal connectives and
// returns a folded fragment per occurrence: up to causalFragmentLen
// characters starting at the marker, truncated at the first sentence
// terminator.
func causalFragments(text string) []string {
	out := make([]string, 0)
	lowered := strings.ToLower(text)
	for _, m := range causalRe.FindAllStringIndex(lowered, -1) {
		end := m[0]
		for n := 0; n < causalFragmentLen && end < len(lowered); n++ {
			_, size := utf8.DecodeRuneInString(lowered[end:])
			end += size
		}
		frag := lowered[m[0]:end]
		if cut, _, found := strings.Cut(frag, "."); found {
			frag = cut
		}
		frag = normalize.Fold(strings.TrimSpace(frag))
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out
}

func orEmptyKeywords(kws []keywords.Keyword) []keywords.Keyword {
	if kws == nil {
		return []keywords.Keyword{}
	}
	return kws
}

func orEmptyTriples(ts []triples.Triple) []triples.Triple {
	if ts == nil {
		return []triples.Triple{}
	}
	return ts
}
