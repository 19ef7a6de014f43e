package completion

import (
	"sort"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
)

// Summary reports the counts of one completion run.
type Summary struct {
	Generated           int `json:"generated"`
	Unique              int `json:"unique"`
	Selected            int `json:"selected"`
	EmptyMasterPathways int `json:"empty_master_pathways"`
}

// selectTopK flattens the per-master ranked lists (given in master-id order,
// each already ascending by score), re-sorts the union stably by score, and
// keeps the highest-scored suffix of at most limit entries.  A limit of zero
// or less keeps everything.  The stable sort means that among equal scores at
// the cut, entries from later lists survive in preference to earlier ones.
func selectTopK(lists []*pathway.RankedList, limit int) []*pathway.Pathway {
	var flat []pathway.RankedEntry
	for _, l := range lists {
		flat = append(flat, l.Entries()...)
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].Score < flat[j].Score
	})

	if limit > 0 && limit < len(flat) {
		flat = flat[len(flat)-limit:]
	}

	out := make([]*pathway.Pathway, len(flat))
	for i, e := range flat {
		out[i] = e.Pathway
	}
	return out
}
