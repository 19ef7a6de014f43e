package pathway

import (
	"fmt"
	"sort"
	"strings"
)

// Reaction is one concrete chemical reaction of a completed pathway: the
// original transformation stoichiometry merged with the compounds the
// rebuild step put back, plus provenance and scoring metadata.
//
// RuleIDs and TemplateIDs start as single-element sets seeded from the
// candidate triplet the reaction was built from; the deduplication stage
// unions provenance from structurally-equal pathways into them.  They are
// deliberately excluded from structural equality.
type Reaction struct {
	ID             string
	EC             []string
	Reactants      map[string]int
	Products       map[string]int
	LowerFluxBound float64
	UpperFluxBound float64
	RuleIDs        []string
	TemplateIDs    []string
	RuleScore      float64

	// Index is the 1-based forward position of the reaction, increasing
	// toward the synthesis target.
	Index int
}

// NewReaction constructs a reaction seeded with a single rule/template
// provenance pair.  The reactant and product maps are stored as given;
// callers hand over ownership.
func NewReaction(id string, ec []string, reactants, products map[string]int, lowerFlux, upperFlux float64, ruleID, templateID string, ruleScore float64, index int) *Reaction {
	return &Reaction{
		ID:             id,
		EC:             ec,
		Reactants:      reactants,
		Products:       products,
		LowerFluxBound: lowerFlux,
		UpperFluxBound: upperFlux,
		RuleIDs:        []string{ruleID},
		TemplateIDs:    []string{templateID},
		RuleScore:      ruleScore,
		Index:          index,
	}
}

// AddRuleID appends id to the rule provenance set if not already present.
func (r *Reaction) AddRuleID(id string) {
	for _, existing := range r.RuleIDs {
		if existing == id {
			return
		}
	}
	r.RuleIDs = append(r.RuleIDs, id)
}

// AddTemplateID appends id to the template provenance set if not already present.
func (r *Reaction) AddTemplateID(id string) {
	for _, existing := range r.TemplateIDs {
		if existing == id {
			return
		}
	}
	r.TemplateIDs = append(r.TemplateIDs, id)
}

// MergeProvenance unions the provenance sets of other into r.
func (r *Reaction) MergeProvenance(other *Reaction) {
	for _, id := range other.RuleIDs {
		r.AddRuleID(id)
	}
	for _, id := range other.TemplateIDs {
		r.AddTemplateID(id)
	}
}

// SpeciesIDs returns the sorted, duplicate-free ids of every species the
// reaction references on either side.
func (r *Reaction) SpeciesIDs() []string {
	seen := make(map[string]struct{}, len(r.Reactants)+len(r.Products))
	for id := range r.Reactants {
		seen[id] = struct{}{}
	}
	for id := range r.Products {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StructuralKey returns an order-independent canonical key for the reaction:
// sorted reactant items, sorted product items, flux bounds, and EC numbers.
// Provenance ids are excluded, since they are exactly what deduplication
// unions across structurally-equal reactions.
func (r *Reaction) StructuralKey() string {
	var sb strings.Builder
	sb.WriteString("r{")
	writeSortedStoichiometry(&sb, r.Reactants)
	sb.WriteString("}p{")
	writeSortedStoichiometry(&sb, r.Products)
	sb.WriteString("}")
	fmt.Fprintf(&sb, "fb[%g,%g]", r.LowerFluxBound, r.UpperFluxBound)
	sb.WriteString("ec[")
	sb.WriteString(strings.Join(r.EC, ","))
	sb.WriteString("]")
	return sb.String()
}

// StructurallyEqual reports whether r and other have the same reactant map,
// product map, flux bounds, and EC numbers.
func (r *Reaction) StructurallyEqual(other *Reaction) bool {
	return r.StructuralKey() == other.StructuralKey()
}

func writeSortedStoichiometry(sb *strings.Builder, side map[string]int) {
	ids := make([]string, 0, len(side))
	for id := range side {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(sb, "%s:%d", id, side[id])
	}
}
