package keywords

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/graph"
	"github.com/ro-ai-labs/ro-text-mining/normalize"
	"github.com/ro-ai-labs/ro-text-mining/stopwords"
)

// TextRank ranks noun and adjective lemmas by damped power iteration
// over their co-occurrence graph and returns the topK words (default 10
// when topK <= 0) together with a dependency graph restricted to them:
// for every token an edge runs from its head's folded lemma to its own
// folded lemma labeled with the dependency label, kept when either
// endpoint is a selected keyword, with self-loops and duplicates dropped.
//
// The score vector starts uniform at 1/n, so results are reproducible;
// iteration stops when the L1 distance between successive vectors falls
// below textrankEpsilon or after textrankMaxIter rounds, whichever
// comes first. A non-converged vector is used as-is, never reported as
// an error. Returns an empty list and an empty graph when no candidate
// lemmas survive filtering.
func TextRank(doc *annotate.Document, stops stopwords.Set, topK int) ([]Keyword, *graph.Graph) {
	cands := candidateLemmas(doc, stops)
	if len(cands) == 0 {
		return nil, graph.New()
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	// Vocabulary in first-seen order; duplicates in cands feed edge
	// weights but appear once here.
	index := make(map[string]int, len(cands))
	var vocab []string
	for _, w := range cands {
		if _, ok := index[w]; !ok {
			index[w] = len(vocab)
			vocab = append(vocab, w)
		}
	}

	scores := pagerank(cands, vocab, index)

	type ranked struct {
		word  string
		score float64
	}
	order := make([]ranked, len(vocab))
	for i, w := range vocab {
		order[i] = ranked{word: w, score: scores[i]}
	}
	slices.SortStableFunc(order, func(a, b ranked) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})
	if len(order) > topK {
		order = order[:topK]
	}

	out := make([]Keyword, len(order))
	selected := make(map[string]struct{}, len(order))
	for i, r := range order {
		out[i] = Keyword{Keyword: r.word, Score: round4(r.score)}
		selected[r.word] = struct{}{}
	}

	return out, keywordGraph(doc, selected)
}

// candidateLemmas returns the folded lemmas of alphabetic noun and
// adjective tokens that are not stopwords, in document order and with
// duplicates preserved.
func candidateLemmas(doc *annotate.Document, stops stopwords.Set) []string {
	var cands []string
	for _, tok := range doc.Tokens {
		if tok.POS != annotate.Noun && tok.POS != annotate.Adj {
			continue
		}
		if !tok.Alpha {
			continue
		}
		lemma := normalize.Fold(tok.Lemma)
		if lemma == "" || stops.Has(lemma) {
			continue
		}
		cands = append(cands, lemma)
	}
	return cands
}

// pagerank builds the windowed co-occurrence transition matrix over the
// candidate sequence and iterates score = (1-d) + d*Mᵀ*score until the
// L1 delta drops below textrankEpsilon or the iteration cap is hit.
func pagerank(cands, vocab []string, index map[string]int) []float64 {
	n := len(vocab)

	adj := mat.NewDense(n, n, nil)
	for i := range cands {
		a := index[cands[i]]
		end := min(i+textrankWindow, len(cands))
		for j := i + 1; j < end; j++ {
			b := index[cands[j]]
			if a == b {
				continue
			}
			adj.Set(a, b, adj.At(a, b)+1)
			adj.Set(b, a, adj.At(b, a)+1)
		}
	}

	// Row-normalize into a transition matrix; rows with no mass stay
	// zero rather than dividing by zero.
	trans := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		sum := mat.Sum(adj.RowView(i))
		if sum == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			trans.Set(i, j, adj.At(i, j)/sum)
		}
	}

	scores := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		scores.SetVec(i, 1/float64(n))
	}

	next := mat.NewVecDense(n, nil)
	for iter := 0; iter < textrankMaxIter; iter++ {
		next.MulVec(trans.T(), scores)
		delta := 0.0
		for i := 0; i < n; i++ {
			v := (1 - textrankDamping) + textrankDamping*next.AtVec(i)
			delta += math.Abs(v - scores.AtVec(i))
			next.SetVec(i, v)
		}
		scores, next = next, scores
		if delta < textrankEpsilon {
			break
		}
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = scores.AtVec(i)
	}
	return out
}

// keywordGraph collects dependency edges touching the selected words.
func keywordGraph(doc *annotate.Document, selected map[string]struct{}) *graph.Graph {
	g := graph.New()
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
		_, srcSel := selected[src]
		_, tgtSel := selected[tgt]
		if !srcSel && !tgtSel {
			continue
		}
		g.AddEdge(src, tgt, tok.Dep)
	}
	return g
}
