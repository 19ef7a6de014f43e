package pathway

import "sort"

// RankedEntry pairs a canonical pathway with its score and cached structural
// key inside a RankedList.
type RankedEntry struct {
	Pathway *Pathway
	Score   float64
	Key     string
}

// RankedList is an explicit ordered container of canonical pathways sorted
// ascending by score.  Insertion locates the position by binary search and
// shifts; the tie-break is stable: among equal scores, later-discovered
// entries are placed after earlier ones, so discovery order is preserved.
type RankedList struct {
	entries []RankedEntry
}

// NewRankedList returns an empty ranked list.
func NewRankedList() *RankedList {
	return &RankedList{}
}

// Len returns the number of canonical entries.
func (l *RankedList) Len() int {
	return len(l.entries)
}

// Entries returns the entries in ascending score order.
func (l *RankedList) Entries() []RankedEntry {
	return l.entries
}

// FindStructuralMatch returns the canonical pathway structurally equal to p,
// if one is present.
func (l *RankedList) FindStructuralMatch(p *Pathway) (*Pathway, bool) {
	key := p.StructuralKey()
	for _, e := range l.entries {
		if e.Key == key {
			return e.Pathway, true
		}
	}
	return nil, false
}

// Insert places p into the list at the position preserving ascending score
// order.  Callers are responsible for deduplicating first via
// FindStructuralMatch; Insert does not check.
func (l *RankedList) Insert(p *Pathway, score float64) {
	pos := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Score > score
	})
	l.entries = append(l.entries, RankedEntry{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = RankedEntry{Pathway: p, Score: score, Key: p.StructuralKey()}
}
