package transformation

import (
	"context"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
)

// DirectionForward is the rebuild direction used for completion queries.
const DirectionForward = "forward"

// RebuildService is the external service that, given a reaction rule and the
// transformation rendered as a reaction expression, returns the chemical
// species the rule's generalization removed, per template reaction.
//
// A rule that resolves no template reactions returns an empty completion,
// not an error; errors are reserved for transport-level failures.
type RebuildService interface {
	Rebuild(ctx context.Context, ruleID, reactionExpr, direction string) (RuleCompletion, error)
}

// PathwaySource yields the master pathways and their transformations.
// Implementations fail the whole run on an empty source or a non-integer
// master pathway identifier.
type PathwaySource interface {
	Read(ctx context.Context) ([]MasterPathway, map[string]*Transformation, error)
}

// ECSource yields EC number annotations per transformation id.  A missing
// transformation maps to an empty list; the "NOEC" sentinel is filtered out
// by implementations.
type ECSource interface {
	ECNumbers(ctx context.Context) (map[string][]string, error)
}

// SinkSource yields the set of species ids available as pathway boundary
// conditions.
type SinkSource interface {
	Sink(ctx context.Context) (map[string]struct{}, error)
}

// CompoundSource resolves structural data for a species id.  The second
// return value is false when the id is unknown; callers degrade to an
// id-only placeholder compound in that case.
type CompoundSource interface {
	Structure(ctx context.Context, id string) (pathway.Structure, bool)
}

// RuleScoreTable resolves the score of a (rule, template reaction) pair.
// The second return value is false when the pair is unknown.
type RuleScoreTable interface {
	Score(ctx context.Context, ruleID, templateID string) (float64, bool)
}

// StaticScoreTable is an in-memory RuleScoreTable keyed by rule id then
// template reaction id.
type StaticScoreTable map[string]map[string]float64

// Score implements RuleScoreTable.
func (t StaticScoreTable) Score(_ context.Context, ruleID, templateID string) (float64, bool) {
	byTemplate, ok := t[ruleID]
	if !ok {
		return 0, false
	}
	score, ok := byTemplate[templateID]
	return score, ok
}

// StaticCompoundSource is an in-memory CompoundSource.
type StaticCompoundSource map[string]pathway.Structure

// Structure implements CompoundSource.
func (s StaticCompoundSource) Structure(_ context.Context, id string) (pathway.Structure, bool) {
	strc, ok := s[id]
	return strc, ok
}
