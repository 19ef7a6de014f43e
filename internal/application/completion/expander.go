// Package completion orchestrates the pathway completion run: candidate
// expansion over the completed transformations, assembly of concrete
// pathways, structural deduplication, and global ranking.
package completion

import (
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// candidateLists returns the candidate triplets of each position of master,
// in retrosynthetic order.  A master pathway referencing a transformation id
// absent from transfos is a malformed source.
func candidateLists(master transformation.MasterPathway, transfos map[string]*transformation.Transformation) ([][]transformation.CandidateTriplet, error) {
	lists := make([][]transformation.CandidateTriplet, 0, len(master.TransfoIDs))
	for _, id := range master.TransfoIDs {
		t, ok := transfos[id]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"master pathway %d references unknown transformation %s", master.ID, id)
		}
		lists = append(lists, t.Candidates())
	}
	return lists, nil
}

// crossProduct enumerates every combination that picks exactly one candidate
// per position, with the last position varying fastest.  A pathway with any
// candidate-less position yields no combinations at all.
func crossProduct(lists [][]transformation.CandidateTriplet) [][]transformation.CandidateTriplet {
	if len(lists) == 0 {
		return nil
	}
	total := 1
	for _, l := range lists {
		if len(l) == 0 {
			return nil
		}
		total *= len(l)
	}

	out := make([][]transformation.CandidateTriplet, 0, total)
	idx := make([]int, len(lists))
	for {
		combo := make([]transformation.CandidateTriplet, len(lists))
		for i, l := range lists {
			combo[i] = l[idx[i]]
		}
		out = append(out, combo)

		pos := len(lists) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(lists[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
