package pathway

import (
	"sort"
	"strings"
)

// Pathway is one concrete realization of a master pathway: an ordered chain
// of reactions stored in forward direction (toward the synthesis target),
// together with derived species groupings and a scalar score.
type Pathway struct {
	ID string

	reactions []*Reaction

	// trunk holds species present in the original, uncompleted
	// transformations; completed holds species the rebuild step put back.
	trunk     map[string]struct{}
	completed map[string]struct{}

	sink     []string
	targetID string
}

// NewPathway returns an empty pathway with the given id.
func NewPathway(id string) *Pathway {
	return &Pathway{
		ID:        id,
		trunk:     make(map[string]struct{}),
		completed: make(map[string]struct{}),
	}
}

// AddReaction inserts rxn keeping the chain ordered by ascending forward
// index.  Assembly discovers reactions in retrosynthetic order (highest
// forward index first), so insertion anchors each new reaction ahead of the
// ones already placed.  targetID, when non-empty, identifies the synthesis
// target produced by rxn and is recorded for the pathway.
func (p *Pathway) AddReaction(rxn *Reaction, targetID string) {
	pos := sort.Search(len(p.reactions), func(i int) bool {
		return p.reactions[i].Index >= rxn.Index
	})
	p.reactions = append(p.reactions, nil)
	copy(p.reactions[pos+1:], p.reactions[pos:])
	p.reactions[pos] = rxn

	if targetID != "" {
		p.targetID = targetID
	}
}

// Reactions returns the reaction chain in forward order.
func (p *Pathway) Reactions() []*Reaction {
	return p.reactions
}

// TargetID returns the id of the synthesis target species, or "" when no
// reaction was flagged as producing it.
func (p *Pathway) TargetID() string {
	return p.targetID
}

// AddTrunkSpecies records ids as species of the original (pre-completion)
// transformation stoichiometry.
func (p *Pathway) AddTrunkSpecies(ids []string) {
	for _, id := range ids {
		p.trunk[id] = struct{}{}
	}
}

// AddCompletedSpecies records ids as species introduced by the rebuild step.
func (p *Pathway) AddCompletedSpecies(ids []string) {
	for _, id := range ids {
		p.completed[id] = struct{}{}
	}
}

// TrunkSpecies returns the sorted trunk species ids.
func (p *Pathway) TrunkSpecies() []string {
	return sortedKeys(p.trunk)
}

// CompletedSpecies returns the sorted completed species ids.
func (p *Pathway) CompletedSpecies() []string {
	return sortedKeys(p.completed)
}

// SpeciesIDs returns the sorted, duplicate-free ids of every species
// referenced by any reaction of the pathway.
func (p *Pathway) SpeciesIDs() []string {
	seen := make(map[string]struct{})
	for _, rxn := range p.reactions {
		for id := range rxn.Reactants {
			seen[id] = struct{}{}
		}
		for id := range rxn.Products {
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// ComputeSink stores the intersection of the pathway's species set with the
// external sink set.  Each id appears at most once regardless of how many
// reactions reference it.
func (p *Pathway) ComputeSink(sink map[string]struct{}) {
	p.sink = p.sink[:0]
	for _, id := range p.SpeciesIDs() {
		if _, ok := sink[id]; ok {
			p.sink = append(p.sink, id)
		}
	}
}

// SinkSpecies returns the sink subset computed by ComputeSink.
func (p *Pathway) SinkSpecies() []string {
	return p.sink
}

// MeanRuleScore returns the arithmetic mean of the reactions' rule scores,
// the pathway's ranking score.  An empty pathway scores zero.
func (p *Pathway) MeanRuleScore() float64 {
	if len(p.reactions) == 0 {
		return 0
	}
	var sum float64
	for _, rxn := range p.reactions {
		sum += rxn.RuleScore
	}
	return sum / float64(len(p.reactions))
}

// StructuralKey returns the canonical key of the whole chain: the ordered
// concatenation of the per-reaction structural keys.  Two pathways are
// duplicates exactly when their keys are equal.
func (p *Pathway) StructuralKey() string {
	keys := make([]string, len(p.reactions))
	for i, rxn := range p.reactions {
		keys[i] = rxn.StructuralKey()
	}
	return strings.Join(keys, "|")
}

// StructurallyEqual reports whether p and other have the same ordered
// reaction count and pairwise structurally-equal reactions, ignoring
// provenance ids.
func (p *Pathway) StructurallyEqual(other *Pathway) bool {
	if len(p.reactions) != len(other.reactions) {
		return false
	}
	return p.StructuralKey() == other.StructuralKey()
}

// MergeProvenanceFrom unions the provenance sets of other's reactions into
// p's corresponding reactions.  Both pathways must be structurally equal;
// the pairing is positional since structural equality fixes the order.
func (p *Pathway) MergeProvenanceFrom(other *Pathway) {
	for i, rxn := range p.reactions {
		if i < len(other.reactions) {
			rxn.MergeProvenance(other.reactions[i])
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
