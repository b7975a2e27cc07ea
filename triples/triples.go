// Package triples extracts subject-predicate-object relation triples
// from dependency-annotated sentences and projects them into a
// knowledge graph.
//
// Three dependency patterns are matched per token:
//
//   - verb-argument: a verb or auxiliary with a nominal (or passive
//     nominal) subject child emits one triple per object-like child,
//     all sharing the subject and the verb lemma as predicate;
//   - adjectival modifier on a noun head: (noun, "amod", adjective);
//   - nominal modifier on a noun head: (noun, "nmod", noun).
//
// Extraction is deterministic: tokens are walked in sentence order and
// exact duplicate triples are dropped keeping the first occurrence.
// Unknown POS or dependency tags simply never match; dangling head
// indices are skipped. Degenerate input yields an empty result, not an
// error.
package triples

import (
	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/graph"
	"github.com/ro-ai-labs/ro-text-mining/normalize"
)

// Triple is a (subject, predicate, object) relation over folded lemmas.
// The predicate is either a verb lemma or a modifier label.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// objectDeps are the dependency labels treated as object-like verb
// arguments: direct/indirect objects, prepositional objects, clausal
// complements, oblique arguments, and attributes.
var objectDeps = map[string]struct{}{
	"attr":  {},
	"acomp": {},
	"dobj":  {},
	"obj":   {},
	"pobj":  {},
	"obl":   {},
	"xcomp": {},
	"ccomp": {},
}

// Extract walks every sentence and returns the deduplicated triples in
// first-seen order.
func Extract(doc *annotate.Document) []Triple {
	var out []Triple
	seen := make(map[Triple]struct{})

	emit := func(t Triple) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	for _, sp := range doc.SentenceSpans() {
		for i := sp.Start; i < sp.End && i < len(doc.Tokens); i++ {
			tok := doc.Tokens[i]

			if tok.POS == annotate.Verb || tok.POS == annotate.Aux {
				for _, t := range verbTriples(doc, i) {
					emit(t)
				}
			}

			if tok.Dep == annotate.DepAmod || tok.Dep == annotate.DepNmod {
				head, ok := doc.Head(i)
				if ok && head.POS == annotate.Noun {
					emit(Triple{
						Subject:   normalize.Fold(head.Lemma),
						Predicate: tok.Dep,
						Object:    normalize.Fold(tok.Lemma),
					})
				}
			}
		}
	}
	return out
}

// verbTriples pairs the first subject child of the verb at index i with
// each of its object-like children. No subject, no triples.
func verbTriples(doc *annotate.Document, i int) []Triple {
	var subject string
	found := false
	var objects []string

	for _, c := range doc.Children(i) {
		child := doc.Tokens[c]
		switch {
		case !found && (child.Dep == annotate.DepNSubj || child.Dep == annotate.DepNSubjPass):
			subject = normalize.Fold(child.Lemma)
			found = true
		default:
			if _, ok := objectDeps[child.Dep]; ok {
				objects = append(objects, normalize.Fold(child.Lemma))
			}
		}
	}
	if !found {
		return nil
	}

	predicate := normalize.Fold(doc.Tokens[i].Lemma)
	ts := make([]Triple, len(objects))
	for j, obj := range objects {
		ts[j] = Triple{Subject: subject, Predicate: predicate, Object: obj}
	}
	return ts
}

// Project builds the knowledge graph of the triples: subject and object
// become nodes in first-seen order and every triple appends an edge
// labeled with its predicate. Projection is idempotent for a fixed
// triple list, and no node appears without an associated edge.
func Project(ts []Triple) *graph.Graph {
	g := graph.New()
	for _, t := range ts {
		g.AddEdge(t.Subject, t.Object, t.Predicate)
	}
	return g
}
