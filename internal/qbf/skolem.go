package qbf

// skolemLevel groups the clauses added to a literal's Skolem implication
// list at one decision level.
type skolemLevel struct {
	level   DecLvl
	clauses []ClauseID
}

// skolemMap is, for each literal, the ordered (by increasing decision
// level) list of clauses that are partial Skolem-function implications for
// that literal: each such clause has every other literal false, forcing the
// literal true to satisfy it. Grounded on original_source's skolem.rs
// Implications, flattened into per-level slices since levels are only ever
// appended in increasing order during forward search.
type skolemMap struct {
	byLit [][]skolemLevel
}

func newSkolemMap() *skolemMap {
	return &skolemMap{}
}

func (s *skolemMap) Reserve(l Lit) {
	for len(s.byLit) <= int(l) {
		s.byLit = append(s.byLit, nil)
	}
}

// Add records cid as a Skolem implication for l at level.
func (s *skolemMap) Add(l Lit, level DecLvl, cid ClauseID) {
	s.Reserve(l)
	levels := s.byLit[l]
	if n := len(levels); n > 0 && levels[n-1].level == level {
		levels[n-1].clauses = append(levels[n-1].clauses, cid)
		s.byLit[l] = levels
		return
	}
	s.byLit[l] = append(levels, skolemLevel{level: level, clauses: []ClauseID{cid}})
}

// Len returns the number of Skolem implications recorded for l.
func (s *skolemMap) Len(l Lit) int {
	if int(l) >= len(s.byLit) {
		return 0
	}
	n := 0
	for _, lv := range s.byLit[l] {
		n += len(lv.clauses)
	}
	return n
}

// HasUniqueConsequence reports whether l has at least one candidate Skolem
// clause on record: a syntactic necessary condition for l to be truly
// forced, used as a cheap pre-check before Solver.hasUniqueConsequence
// (conflict.go) asks the conflict-check oracle whether some candidate
// clause is guaranteed to fire under every remaining ∀-instantiation (§4.4).
func (s *skolemMap) HasUniqueConsequence(l Lit) bool {
	return s.Len(l) > 0
}

// Implications iterates every clause recorded as a Skolem implication for
// l, in the order they were added (increasing decision level).
func (s *skolemMap) Implications(l Lit, fn func(ClauseID) bool) {
	if int(l) >= len(s.byLit) {
		return
	}
	for _, lv := range s.byLit[l] {
		for _, cid := range lv.clauses {
			if !fn(cid) {
				return
			}
		}
	}
}

// First returns the first clause recorded as a Skolem implication for l,
// used by the unit-clause checks (quickConflicted in conflict.go, and
// IsConstant below).
func (s *skolemMap) First(l Lit) (ClauseID, bool) {
	if int(l) >= len(s.byLit) {
		return 0, false
	}
	for _, lv := range s.byLit[l] {
		if len(lv.clauses) > 0 {
			return lv.clauses[0], true
		}
	}
	return 0, false
}

// IsConstant reports whether l is forced regardless of the surrounding
// universal assignment, i.e. it has a Skolem implication that is a unit
// clause added at the root level. The corresponding fast path
// (ENABLE_CONSTANT_PROPAGATION upstream) is deliberately not implemented
// here; see propagate.go's propagateConstant.
func (s *skolemMap) IsConstant(l Lit, arena *Arena) bool {
	cid, ok := s.First(l)
	if !ok {
		return false
	}
	return len(arena.Get(cid).literals) == 1
}

// BacktrackTo drops every implication recorded at a level above lvl.
func (s *skolemMap) BacktrackTo(lvl DecLvl) {
	for l := range s.byLit {
		levels := s.byLit[l]
		i := len(levels)
		for i > 0 && levels[i-1].level > lvl {
			i--
		}
		s.byLit[l] = levels[:i]
	}
}
