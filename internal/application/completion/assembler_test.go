package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
)

func assemblerFixture() (map[string]*transformation.Transformation, []transformation.CandidateTriplet) {
	// Retrosynthetic order: TRS_1 produces the target, TRS_2 feeds it.
	transfos := map[string]*transformation.Transformation{
		"TRS_1": {
			ID:      "TRS_1",
			EC:      []string{"1.1.1.1"},
			Left:    map[string]int{"CMPD_B": 1, "MNXM1": 1},
			Right:   map[string]int{"TARGET_0000000001": 1},
			RuleIDs: []string{"RR-1"},
			Complement: map[string]transformation.RuleCompletion{
				"RR-1": {
					TemplateIDs: []string{"MNXR1"},
					ByTemplate: map[string]transformation.AddedCompounds{
						"MNXR1": {
							// MNXM1 overlaps the trunk stoichiometry.
							Left:  transformation.SideCompounds{Struct: map[string]int{"MNXM1": 1}},
							Right: transformation.SideCompounds{NoStruct: map[string]int{"MNXM9": 2}},
						},
					},
				},
			},
		},
		"TRS_2": {
			ID:      "TRS_2",
			Left:    map[string]int{"CMPD_C": 1},
			Right:   map[string]int{"CMPD_B": 1},
			RuleIDs: []string{"RR-2"},
			Complement: map[string]transformation.RuleCompletion{
				"RR-2": {
					TemplateIDs: []string{"MNXR2"},
					ByTemplate:  map[string]transformation.AddedCompounds{"MNXR2": {}},
				},
			},
		},
	}
	combo := []transformation.CandidateTriplet{
		{TransfoID: "TRS_1", RuleID: "RR-1", TemplateID: "MNXR1"},
		{TransfoID: "TRS_2", RuleID: "RR-2", TemplateID: "MNXR2"},
	}
	return transfos, combo
}

func TestAssembler_BuildsForwardOrderedPathway(t *testing.T) {
	transfos, combo := assemblerFixture()
	registry := pathway.NewRegistry()
	compounds := transformation.StaticCompoundSource{
		"MNXM1": {SMILES: "O"},
	}
	scores := transformation.StaticScoreTable{
		"RR-1": {"MNXR1": 0.9},
		"RR-2": {"MNXR2": 0.7},
	}
	sink := map[string]struct{}{"CMPD_C": {}, "MNXM1": {}, "UNRELATED": {}}

	asm := NewAssembler(registry, compounds, scores, 0, 999999, logging.NewNopLogger())
	pw, err := asm.Assemble(context.Background(), "001_0001", combo, transfos, sink)
	require.NoError(t, err)

	reactions := pw.Reactions()
	require.Len(t, reactions, 2)

	// Forward order: the retrosynthetically-last step comes first.
	first, last := reactions[0], reactions[1]
	assert.Equal(t, "rxn_1", first.ID)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, map[string]int{"CMPD_C": 1}, first.Reactants)

	assert.Equal(t, "rxn_2", last.ID)
	assert.Equal(t, 2, last.Index)
	// Overlapping species coefficients sum; added no-structure species merge too.
	assert.Equal(t, map[string]int{"CMPD_B": 1, "MNXM1": 2}, last.Reactants)
	assert.Equal(t, map[string]int{"TARGET_0000000001": 1, "MNXM9": 2}, last.Products)
	assert.Equal(t, []string{"1.1.1.1"}, last.EC)
	assert.Equal(t, 0.9, last.RuleScore)
	assert.Equal(t, float64(999999), last.UpperFluxBound)

	assert.Equal(t, "TARGET_0000000001", pw.TargetID())
	assert.InDelta(t, 0.8, pw.MeanRuleScore(), 1e-9)

	// The source stoichiometry is untouched: merges go into fresh maps.
	assert.Equal(t, map[string]int{"CMPD_B": 1, "MNXM1": 1}, transfos["TRS_1"].Left)
}

func TestAssembler_SpeciesGroupsAndRegistry(t *testing.T) {
	transfos, combo := assemblerFixture()
	registry := pathway.NewRegistry()
	compounds := transformation.StaticCompoundSource{"MNXM1": {SMILES: "O"}}
	asm := NewAssembler(registry, compounds, transformation.StaticScoreTable{}, 0, 999999, logging.NewNopLogger())

	sink := map[string]struct{}{"CMPD_C": {}, "MNXM1": {}}
	pw, err := asm.Assemble(context.Background(), "001_0001", combo, transfos, sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"CMPD_B", "CMPD_C", "MNXM1", "TARGET_0000000001"}, pw.TrunkSpecies())
	assert.Equal(t, []string{"MNXM1", "MNXM9"}, pw.CompletedSpecies())
	assert.Equal(t, []string{"CMPD_C", "MNXM1"}, pw.SinkSpecies())

	// Added species land in the registry; unknown structures as placeholders.
	mnxm1, ok := registry.Lookup("MNXM1")
	require.True(t, ok)
	assert.Equal(t, "O", mnxm1.SMILES)
	mnxm9, ok := registry.Lookup("MNXM9")
	require.True(t, ok)
	assert.Empty(t, mnxm9.SMILES)
}

func TestMergeSide_SumsOverlappingCoefficients(t *testing.T) {
	base := map[string]int{"A": 1, "B": 2}
	added := transformation.SideCompounds{
		// The same id in both added sub-maps sums instead of overwriting.
		Struct:   map[string]int{"A": 1, "C": 1},
		NoStruct: map[string]int{"A": 2, "D": 3},
	}

	merged := mergeSide(base, added)
	assert.Equal(t, map[string]int{"A": 4, "B": 2, "C": 1, "D": 3}, merged)
	// Inputs stay untouched.
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, base)
}

func TestAssembler_MissingScoreDefaultsToZero(t *testing.T) {
	transfos, combo := assemblerFixture()
	registry := pathway.NewRegistry()
	asm := NewAssembler(registry, transformation.StaticCompoundSource{}, transformation.StaticScoreTable{}, 0, 999999, logging.NewNopLogger())

	pw, err := asm.Assemble(context.Background(), "001_0001", combo, transfos, nil)
	require.NoError(t, err)
	assert.Zero(t, pw.MeanRuleScore())
}

func TestAssembler_MissingCompletionRecordFails(t *testing.T) {
	transfos, combo := assemblerFixture()
	combo[0].TemplateID = "MNXR_UNKNOWN"
	registry := pathway.NewRegistry()
	asm := NewAssembler(registry, transformation.StaticCompoundSource{}, transformation.StaticScoreTable{}, 0, 999999, logging.NewNopLogger())

	_, err := asm.Assemble(context.Background(), "001_0001", combo, transfos, nil)
	require.Error(t, err)
}
