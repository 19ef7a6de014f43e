// Package transformation models the abstract chemical transformations of a
// master pathway and their completion: mapping each transformation's
// candidate reaction rules to the template reactions they were derived from,
// together with the compounds the rule generalization removed.
package transformation

// MasterPathway is an ordered list of transformation ids produced by the
// upstream retrosynthesis search, prior to completion.  The ids are stored
// in retrosynthetic order (first entry closest to the target).
type MasterPathway struct {
	ID         int
	TransfoIDs []string
}

// SideCompounds holds the compounds to add back to one side of a reaction,
// split by whether their structure is known.  A species id appears in at
// most one of the two maps.
type SideCompounds struct {
	Struct   map[string]int
	NoStruct map[string]int
}

// SpeciesIDs returns the ids of both sub-maps.
func (s SideCompounds) SpeciesIDs() []string {
	ids := make([]string, 0, len(s.Struct)+len(s.NoStruct))
	for id := range s.Struct {
		ids = append(ids, id)
	}
	for id := range s.NoStruct {
		ids = append(ids, id)
	}
	return ids
}

// AddedCompounds is the per-template completion record: the compounds the
// rebuild service adds back to each side of a reaction.
type AddedCompounds struct {
	Left  SideCompounds
	Right SideCompounds
}

// SpeciesIDs returns the ids of every added species on either side.
func (a AddedCompounds) SpeciesIDs() []string {
	return append(a.Left.SpeciesIDs(), a.Right.SpeciesIDs()...)
}

// RuleCompletion maps a rule's template reactions to their added-compounds
// records.  TemplateIDs preserves the enumeration order the rebuild service
// returned so candidate flattening stays deterministic.
type RuleCompletion struct {
	TemplateIDs []string
	ByTemplate  map[string]AddedCompounds
}

// Empty reports whether the rule resolved no template reactions and thus
// contributes no candidates.
func (rc RuleCompletion) Empty() bool {
	return len(rc.TemplateIDs) == 0
}

// CandidateTriplet identifies one concrete way to realize one pathway
// position: a transformation, the rule chosen for it, and the template
// reaction the rule was completed against.
type CandidateTriplet struct {
	TransfoID  string
	RuleID     string
	TemplateID string
}

// Transformation is an abstract stoichiometric reaction step that may be
// realized by multiple reaction rules.  Left and Right map species ids to
// integer coefficients.  Complement is populated by the Completer; RuleIDs
// preserves input order so the flattened candidate list is reproducible.
type Transformation struct {
	ID         string
	EC         []string
	Left       map[string]int
	Right      map[string]int
	RuleIDs    []string
	Complement map[string]RuleCompletion
}

// Candidates flattens the completion into one candidate triplet per
// (rule, template) pair, iterating rules then templates in their recorded
// order.  Rules with no resolved templates contribute nothing.
func (t *Transformation) Candidates() []CandidateTriplet {
	var out []CandidateTriplet
	for _, ruleID := range t.RuleIDs {
		rc, ok := t.Complement[ruleID]
		if !ok {
			continue
		}
		for _, tmplID := range rc.TemplateIDs {
			out = append(out, CandidateTriplet{
				TransfoID:  t.ID,
				RuleID:     ruleID,
				TemplateID: tmplID,
			})
		}
	}
	return out
}

// Added returns the added-compounds record selected by trip, which must
// reference this transformation.
func (t *Transformation) Added(trip CandidateTriplet) (AddedCompounds, bool) {
	rc, ok := t.Complement[trip.RuleID]
	if !ok {
		return AddedCompounds{}, false
	}
	added, ok := rc.ByTemplate[trip.TemplateID]
	return added, ok
}
