package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// targetTag marks the synthesis target inside a species id.
const targetTag = "TARGET"

// Assembler turns one candidate combination into a concrete pathway: merged
// stoichiometry, forward-indexed reactions, rule scores, and the derived
// species groupings.
type Assembler struct {
	registry  *pathway.Registry
	compounds transformation.CompoundSource
	scores    transformation.RuleScoreTable
	lowerFlux float64
	upperFlux float64
	logger    logging.Logger
}

// NewAssembler constructs an Assembler.  lowerFlux and upperFlux are applied
// uniformly to every assembled reaction.
func NewAssembler(registry *pathway.Registry, compounds transformation.CompoundSource, scores transformation.RuleScoreTable, lowerFlux, upperFlux float64, logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Assembler{
		registry:  registry,
		compounds: compounds,
		scores:    scores,
		lowerFlux: lowerFlux,
		upperFlux: upperFlux,
		logger:    logger.Named("assembler"),
	}
}

// Assemble builds the pathway identified by id from combo, whose triplets
// are given in retrosynthetic order.  Each step's reactant and product maps
// are fresh merges of the transformation's own stoichiometry with the
// completion's added compounds; forward indices run from len(combo) for the
// first triplet down to 1 for the last.
func (a *Assembler) Assemble(ctx context.Context, id string, combo []transformation.CandidateTriplet, transfos map[string]*transformation.Transformation, sink map[string]struct{}) (*pathway.Pathway, error) {
	pw := pathway.NewPathway(id)
	n := len(combo)

	for retroIdx, trip := range combo {
		t, ok := transfos[trip.TransfoID]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeSourceMalformed,
				"candidate references unknown transformation %s", trip.TransfoID)
		}
		added, ok := t.Added(trip)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeRebuildFailed,
				"no completion record for rule %s template %s", trip.RuleID, trip.TemplateID)
		}

		a.ensureRegistered(ctx, added.SpeciesIDs())

		reactants := mergeSide(t.Left, added.Left)
		products := mergeSide(t.Right, added.Right)

		fwdIdx := n - retroIdx
		score, ok := a.scores.Score(ctx, trip.RuleID, trip.TemplateID)
		if !ok {
			a.logger.Debug("rule score not found, defaulting to zero",
				logging.String("rule", trip.RuleID),
				logging.String("template", trip.TemplateID),
			)
			score = 0
		}

		rxn := pathway.NewReaction(
			fmt.Sprintf("rxn_%d", fwdIdx),
			t.EC,
			reactants, products,
			a.lowerFlux, a.upperFlux,
			trip.RuleID, trip.TemplateID,
			score,
			fwdIdx,
		)
		pw.AddReaction(rxn, targetIn(products))

		pw.AddTrunkSpecies(mapKeys(t.Left))
		pw.AddTrunkSpecies(mapKeys(t.Right))
		pw.AddCompletedSpecies(added.SpeciesIDs())
	}

	pw.ComputeSink(sink)
	return pw, nil
}

// ensureRegistered registers every id, resolving structures through the
// compound source and degrading to id-only placeholders on misses.
func (a *Assembler) ensureRegistered(ctx context.Context, ids []string) {
	for _, id := range ids {
		if a.registry.Contains(id) {
			continue
		}
		if strc, ok := a.compounds.Structure(ctx, id); ok {
			a.registry.Register(pathway.NewCompound(id, strc))
			continue
		}
		a.logger.Debug("species structure unavailable, registering placeholder",
			logging.String("species", id))
		a.registry.Register(pathway.NewPlaceholderCompound(id))
	}
}

// mergeSide sums the base stoichiometry with the added compounds of one side
// into a fresh map; neither input is mutated.
func mergeSide(base map[string]int, added transformation.SideCompounds) map[string]int {
	out := make(map[string]int, len(base)+len(added.Struct)+len(added.NoStruct))
	for id, sto := range base {
		out[id] += sto
	}
	for id, sto := range added.Struct {
		out[id] += sto
	}
	for id, sto := range added.NoStruct {
		out[id] += sto
	}
	return out
}

// targetIn returns the id of the target species among products, or "".
func targetIn(products map[string]int) string {
	for id := range products {
		if strings.Contains(id, targetTag) {
			return id
		}
	}
	return ""
}

func mapKeys(side map[string]int) []string {
	ids := make([]string, 0, len(side))
	for id := range side {
		ids = append(ids, id)
	}
	return ids
}
