package analyze

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/stopwords"
)

// stubPipe returns a fixed document, standing in for the external
// annotation pipeline.
type stubPipe struct {
	doc *annotate.Document
	err error
}

func (s stubPipe) Annotate(string) (*annotate.Document, error) { return s.doc, s.err }

// sampleDoc annotates "Ion mănâncă mere roșii la București".
func sampleDoc() *annotate.Document {
	return &annotate.Document{
		Tokens: []annotate.Token{
			{Text: "Ion", Lemma: "ion", POS: "PROPN", Dep: annotate.DepNSubj, Head: 1, Entity: "PERSON", Alpha: true},
			{Text: "mănâncă", Lemma: "mânca", POS: annotate.Verb, Dep: "ROOT", Head: 1, Alpha: true},
			{Text: "mere", Lemma: "măr", POS: annotate.Noun, Dep: "dobj", Head: 1, Alpha: true},
			{Text: "roșii", Lemma: "roșu", POS: annotate.Adj, Dep: annotate.DepAmod, Head: 2, Alpha: true},
			{Text: "la", Lemma: "la", POS: "ADP", Dep: "case", Head: 5, Alpha: true},
			{Text: "București", Lemma: "bucurești", POS: "PROPN", Dep: annotate.DepObl, Head: 1, Entity: "LOC", Alpha: true},
		},
		Sentences: []annotate.Span{{Start: 0, End: 6}},
		Entities: []annotate.EntitySpan{
			{Text: "Ion", Label: "PERSON"},
			{Text: "București", Label: "LOC"},
		},
	}
}

func sampleAnalyzer() *Analyzer {
	return New(stubPipe{doc: sampleDoc()}, stopwords.New("la", "deoarece", "îi"), 10)
}

const sampleText = "Ion mănâncă mere roșii la București deoarece îi plac merele. Apoi pleacă."

func TestAnalyze(t *testing.T) {
	t.Parallel()

	res, err := sampleAnalyzer().Analyze(sampleText)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.ExtractedText != sampleText {
		t.Errorf("ExtractedText = %q, want input text", res.ExtractedText)
	}

	// RAKE: "la" splits the over-long run; only "bucuresti" survives.
	if len(res.RAKE) != 1 || res.RAKE[0].Keyword != "bucuresti" {
		t.Fatalf("RAKE = %v, want [bucuresti]", res.RAKE)
	}
	if res.RAKE[0].Entity != "LOC" {
		t.Errorf("RAKE[0].Entity = %q, want LOC (entity label attached)", res.RAKE[0].Entity)
	}

	// TextRank over the two noun/adjective lemmas.
	var trWords []string
	for _, kw := range res.TextRank {
		trWords = append(trWords, kw.Keyword)
	}
	if !slices.Equal(trWords, []string{"mar", "rosu"}) {
		t.Errorf("TextRank keywords = %v, want [mar rosu]", trWords)
	}

	// Triples: two verb-argument triples plus one amod.
	wantTriples := []string{"ion manca mar", "ion manca bucuresti", "mar amod rosu"}
	var gotTriples []string
	for _, tr := range res.Triples {
		gotTriples = append(gotTriples, tr.Subject+" "+tr.Predicate+" "+tr.Object)
	}
	if !slices.Equal(gotTriples, wantTriples) {
		t.Errorf("Triples = %v, want %v", gotTriples, wantTriples)
	}

	// Knowledge graph nodes in first-seen subject/object order.
	wantNodes := []string{"ion", "mar", "bucuresti", "rosu"}
	if got := res.KG.Nodes(); len(got) != len(wantNodes) {
		t.Errorf("KG nodes = %v, want %v", got, wantNodes)
	} else {
		for i, n := range got {
			if n.ID != wantNodes[i] {
				t.Errorf("KG node[%d] = %q, want %q", i, n.ID, wantNodes[i])
			}
		}
	}

	// Relations touch at least one keyword token, no self-loops.
	if len(res.Relations) == 0 {
		t.Fatal("Relations empty, want dependency edges around keywords")
	}
	for _, e := range res.Relations {
		if e.Source == e.Target {
			t.Errorf("self-loop relation %+v", e)
		}
	}

	// QA buckets.
	if !slices.Equal(res.QA["who"], []string{"ion manca"}) {
		t.Errorf(`QA["who"] = %v, want [ion manca]`, res.QA["who"])
	}
	wantWhat := []string{"manca mar", "manca bucuresti", "amod rosu"}
	if !slices.Equal(res.QA["what"], wantWhat) {
		t.Errorf(`QA["what"] = %v, want %v`, res.QA["what"], wantWhat)
	}
	// The span entity and the obl token both contribute "bucuresti";
	// subsumption keeps one.
	if !slices.Equal(res.QA["where"], []string{"bucuresti"}) {
		t.Errorf(`QA["where"] = %v, want [bucuresti]`, res.QA["where"])
	}
	if len(res.QA["when"]) != 0 {
		t.Errorf(`QA["when"] = %v, want empty`, res.QA["when"])
	}
	if !slices.Equal(res.QA["why"], []string{"deoarece ii plac merele"}) {
		t.Errorf(`QA["why"] = %v, want [deoarece ii plac merele]`, res.QA["why"])
	}

	// NER groups.
	if !slices.Equal(res.NER["PERSON"], []string{"ion"}) {
		t.Errorf(`NER["PERSON"] = %v, want [ion]`, res.NER["PERSON"])
	}
	if !slices.Equal(res.NER["LOC"], []string{"bucuresti"}) {
		t.Errorf(`NER["LOC"] = %v, want [bucuresti]`, res.NER["LOC"])
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	t.Parallel()

	a := New(stubPipe{doc: &annotate.Document{}}, stopwords.New(), 10)
	res, err := a.Analyze("")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"rake":[]`, `"textrank":[]`, `"relations":[]`,
		`"triples":[]`, `"nodes":[]`, `"links":[]`, `"who":[]`, `"why":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("result JSON missing %s:\n%s", want, data)
		}
	}
}

func TestAnalyzeReproducible(t *testing.T) {
	t.Parallel()

	a := sampleAnalyzer()

	first, err := a.Analyze(sampleText)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	firstJSON, _ := json.Marshal(first)

	for range 10 {
		res, err := a.Analyze(sampleText)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		gotJSON, _ := json.Marshal(res)
		if string(gotJSON) != string(firstJSON) {
			t.Fatalf("non-reproducible result:\n  a = %s\n  b = %s", firstJSON, gotJSON)
		}
	}
}

func TestAnalyzePipelineError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("model unavailable")
	a := New(stubPipe{err: wantErr}, stopwords.New(), 10)

	if _, err := a.Analyze("text"); !errors.Is(err, wantErr) {
		t.Errorf("Analyze error = %v, want wrapped %v", err, wantErr)
	}
}

func TestEntityPrecedence(t *testing.T) {
	t.Parallel()

	// The span labels "Cluj" as GPE; a token claims LOC. The span is
	// processed first and wins.
	doc := &annotate.Document{
		Tokens: []annotate.Token{
			{Text: "Cluj", Lemma: "cluj", POS: "PROPN", Head: 0, Entity: "LOC", Alpha: true},
		},
		Entities: []annotate.EntitySpan{{Text: "Cluj", Label: "GPE"}},
	}
	es := collectEntities(doc)
	if got := es.byText["cluj"]; got != "GPE" {
		t.Errorf(`label for "cluj" = %q, want GPE (first writer wins)`, got)
	}
}

func TestWhenNoiseFiltered(t *testing.T) {
	t.Parallel()

	doc := &annotate.Document{
		Tokens: []annotate.Token{
			{Text: "anul", Lemma: "an", Dep: annotate.DepObl, Head: 0, Entity: "DATE", Alpha: true},
			{Text: "1991", Lemma: "1991", Dep: annotate.DepObl, Head: 0, Entity: "DATE"},
		},
	}
	a := New(stubPipe{doc: doc}, stopwords.New(), 10)
	res, err := a.Analyze("")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !slices.Equal(res.QA["when"], []string{"1991"}) {
		t.Errorf(`QA["when"] = %v, want [1991] (noise word dropped)`, res.QA["when"])
	}
}

func TestCausalFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no markers",
			text: "Un text fără explicații.",
			want: []string{},
		},
		{
			name: "fragment truncated at sentence end",
			text: "A plecat pentru că ploua tare. Apoi a revenit.",
			want: []string{"pentru ca ploua tare"},
		},
		{
			name: "multiple occurrences collected",
			text: "Plecăm deoarece e târziu. Rămân fiindcă vreau.",
			want: []string{"deoarece e tarziu", "fiindca vreau"},
		},
		{
			name: "marker matched case-insensitively",
			text: "Deoarece ninge, stăm acasă.",
			want: []string{"deoarece ninge, stam acasa"},
		},
		{
			// "pentru că " is 10 characters, leaving 190 for the rest.
			name: "long fragment capped at 200 characters",
			text: "pentru că " + strings.Repeat("a", 300),
			want: []string{"pentru ca " + strings.Repeat("a", 190)},
		},
		{
			// Multibyte letters count as one character each, so the cap
			// keeps as many of them as of ASCII ones.
			name: "cap counts characters, not bytes",
			text: "pentru că " + strings.Repeat("ă", 300),
			want: []string{"pentru ca " + strings.Repeat("a", 190)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := causalFragments(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("causalFragments(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
