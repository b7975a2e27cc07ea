package analyze

import (
	"strings"

	"github.com/ro-ai-labs/ro-text-mining/annotate"
	"github.com/ro-ai-labs/ro-text-mining/internal/subsume"
	"github.com/ro-ai-labs/ro-text-mining/keywords"
	"github.com/ro-ai-labs/ro-text-mining/normalize"
)

// entitySet maps folded entity text to its label, keeping first-seen
// order for deterministic bucket and group derivation.
type entitySet struct {
	order  []entityEntry
	byText map[string]string
}

type entityEntry struct {
	text  string
	label string
}

// collectEntities gathers document-level entity spans first, then
// backfills from tokens carrying an entity type. First writer wins, so
// span matches take priority over token backfill.
func collectEntities(doc *annotate.Document) *entitySet {
	es := &entitySet{byText: make(map[string]string)}

	for _, e := range doc.Entities {
		es.add(e.Text, e.Label)
	}
	for _, tok := range doc.Tokens {
		if tok.Entity != "" {
			es.add(tok.Text, tok.Entity)
		}
	}
	return es
}

func (es *entitySet) add(text, label string) {
	key := normalize.Fold(strings.TrimSpace(text))
	if key == "" {
		return
	}
	if _, ok := es.byText[key]; ok {
		return
	}
	es.byText[key] = label
	es.order = append(es.order, entityEntry{text: key, label: label})
}

// attach labels every keyword whose folded phrase exactly matches a
// recognized entity.
func (es *entitySet) attach(kws []keywords.Keyword) {
	for i := range kws {
		if label, ok := es.byText[normalize.Fold(kws[i].Keyword)]; ok {
			kws[i].Entity = label
		}
	}
}

// groups returns the label -> entity texts map with the subsumption
// filter applied per label group.
func (es *entitySet) groups() map[string][]string {
	grouped := make(map[string][]string)
	for _, e := range es.order {
		grouped[e.label] = append(grouped[e.label], e.text)
	}
	for label, texts := range grouped {
		grouped[label] = subsume.Filter(texts)
	}
	return grouped
}
