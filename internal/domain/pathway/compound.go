// Package pathway provides the core domain model for completed metabolic
// pathways: chemical compounds and their shared registry, reactions with
// merged stoichiometry and provenance, assembled pathways with species
// groupings, and the score-ordered container used for ranking.
package pathway

import (
	"sort"
	"sync"
)

// Structure holds the structural description of a chemical species.  All
// fields may be empty: species whose structure is unknown degrade to an
// id-only placeholder.
type Structure struct {
	SMILES   string `json:"smiles,omitempty"`
	InChI    string `json:"inchi,omitempty"`
	InChIKey string `json:"inchikey,omitempty"`
	Formula  string `json:"formula,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Compound is a chemical species participating in one or more reactions.
type Compound struct {
	ID string `json:"id"`
	Structure
}

// NewCompound constructs a fully-described compound.
func NewCompound(id string, strc Structure) *Compound {
	return &Compound{ID: id, Structure: strc}
}

// NewPlaceholderCompound constructs an id-only compound for species whose
// structural data is unavailable.
func NewPlaceholderCompound(id string) *Compound {
	return &Compound{ID: id}
}

// Registry is the shared compound store for one completion run.  It replaces
// the process-wide mutable cache of the legacy design with an explicit object
// passed to every stage that needs it.  Registration is idempotent and safe
// for concurrent use: racing registrations of one id resolve to a single
// canonical record.
type Registry struct {
	mu        sync.RWMutex
	compounds map[string]*Compound
}

// NewRegistry returns an empty compound registry.
func NewRegistry() *Registry {
	return &Registry{compounds: make(map[string]*Compound)}
}

// Register inserts c if no compound with the same id is present and returns
// the canonical record for c.ID.  Re-registering a known id is a no-op; the
// first record wins.
func (r *Registry) Register(c *Compound) *Compound {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.compounds[c.ID]; ok {
		return existing
	}
	r.compounds[c.ID] = c
	return c
}

// Lookup returns the compound registered under id, if any.
func (r *Registry) Lookup(id string) (*Compound, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.compounds[id]
	return c, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.compounds[id]
	return ok
}

// Len returns the number of registered compounds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.compounds)
}

// IDs returns the sorted ids of all registered compounds.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.compounds))
	for id := range r.compounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
