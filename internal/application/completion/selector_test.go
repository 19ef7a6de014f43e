package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
)

func scoredPathway(t *testing.T, id string, score float64) *pathway.Pathway {
	t.Helper()
	pw := pathway.NewPathway(id)
	rxn := pathway.NewReaction("rxn_1", nil,
		map[string]int{id + "_in": 1}, map[string]int{id + "_out": 1},
		0, 999999, "RR-"+id, "MNXR-"+id, score, 1)
	pw.AddReaction(rxn, "")
	return pw
}

func TestSelectTopK_KeepsHighestScoredSuffix(t *testing.T) {
	l1 := pathway.NewRankedList()
	l2 := pathway.NewRankedList()
	for _, c := range []struct {
		list  *pathway.RankedList
		id    string
		score float64
	}{
		{l1, "001_0001", 0.85},
		{l1, "001_0002", 0.55},
		{l2, "002_0001", 0.75},
		{l2, "002_0002", 0.65},
		{l2, "002_0003", 0.35},
	} {
		pw := scoredPathway(t, c.id, c.score)
		c.list.Insert(pw, pw.MeanRuleScore())
	}

	selected := selectTopK([]*pathway.RankedList{l1, l2}, 3)
	require.Len(t, selected, 3)

	// Ascending score order, best pathway last.
	assert.Equal(t, "002_0002", selected[0].ID)
	assert.Equal(t, "002_0001", selected[1].ID)
	assert.Equal(t, "001_0001", selected[2].ID)
}

func TestSelectTopK_NoLimitKeepsEverything(t *testing.T) {
	l := pathway.NewRankedList()
	for i, score := range []float64{0.3, 0.1, 0.2} {
		pw := scoredPathway(t, string(rune('a'+i)), score)
		l.Insert(pw, pw.MeanRuleScore())
	}

	assert.Len(t, selectTopK([]*pathway.RankedList{l}, 0), 3)
	assert.Len(t, selectTopK([]*pathway.RankedList{l}, -1), 3)
	assert.Len(t, selectTopK([]*pathway.RankedList{l}, 10), 3)
}

func TestSelectTopK_StableAmongEqualScores(t *testing.T) {
	l1 := pathway.NewRankedList()
	l2 := pathway.NewRankedList()
	p1 := scoredPathway(t, "001_0001", 0.5)
	p2 := scoredPathway(t, "002_0001", 0.5)
	p3 := scoredPathway(t, "002_0002", 0.5)
	l1.Insert(p1, 0.5)
	l2.Insert(p2, 0.5)
	l2.Insert(p3, 0.5)

	// The suffix cut drops earlier-discovered entries among equal scores.
	selected := selectTopK([]*pathway.RankedList{l1, l2}, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, "002_0001", selected[0].ID)
	assert.Equal(t, "002_0002", selected[1].ID)
}
