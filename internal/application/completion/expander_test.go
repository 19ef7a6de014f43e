package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

func trip(transfo, rule, tmpl string) transformation.CandidateTriplet {
	return transformation.CandidateTriplet{TransfoID: transfo, RuleID: rule, TemplateID: tmpl}
}

func TestCrossProduct_EnumeratesAllCombinations(t *testing.T) {
	lists := [][]transformation.CandidateTriplet{
		{trip("T1", "RR-1", "M1"), trip("T1", "RR-1", "M2")},
		{trip("T2", "RR-2", "M3"), trip("T2", "RR-2", "M4"), trip("T2", "RR-3", "M5")},
	}

	combos := crossProduct(lists)
	require.Len(t, combos, 6)

	// Last position varies fastest.
	assert.Equal(t, []transformation.CandidateTriplet{lists[0][0], lists[1][0]}, combos[0])
	assert.Equal(t, []transformation.CandidateTriplet{lists[0][0], lists[1][1]}, combos[1])
	assert.Equal(t, []transformation.CandidateTriplet{lists[0][0], lists[1][2]}, combos[2])
	assert.Equal(t, []transformation.CandidateTriplet{lists[0][1], lists[1][0]}, combos[3])
	assert.Equal(t, []transformation.CandidateTriplet{lists[0][1], lists[1][2]}, combos[5])
}

func TestCrossProduct_EmptyPositionYieldsNothing(t *testing.T) {
	lists := [][]transformation.CandidateTriplet{
		{trip("T1", "RR-1", "M1")},
		{},
	}
	assert.Nil(t, crossProduct(lists))
	assert.Nil(t, crossProduct(nil))
}

func TestCandidateLists_UnknownTransformation(t *testing.T) {
	master := transformation.MasterPathway{ID: 7, TransfoIDs: []string{"TRS_MISSING"}}

	_, err := candidateLists(master, map[string]*transformation.Transformation{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSourceMalformed))
}
