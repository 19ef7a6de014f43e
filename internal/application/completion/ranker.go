package completion

import (
	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
)

// dedupeInsert folds p into list: if a structurally-equal canonical pathway
// is already present, p's rule and template provenance is unioned into it and
// p is discarded; otherwise p becomes a new canonical entry ranked by its
// mean rule score.  It reports whether p was inserted as a new entry.
func dedupeInsert(list *pathway.RankedList, p *pathway.Pathway) bool {
	if canonical, ok := list.FindStructuralMatch(p); ok {
		canonical.MergeProvenanceFrom(p)
		return false
	}
	list.Insert(p, p.MeanRuleScore())
	return true
}
