package qbf

// analyze builds a learnt clause from the current conflict and returns the
// decision level to backtrack to. It reports false if the conflict persists
// at the root level (the instance is unsatisfiable). Grounded on
// original_source/src/incdet/conflict/analysis.rs's ConflictAnalysis/
// IncDet::analyze.
func (s *Solver) analyze() (DecLvl, bool) {
	s.analysisClause = s.analysisClause[:0]
	s.analysisCurLvlCount = 0
	s.seenVar.Clear()

	v := s.conflictVar
	conflict := s.conflictWitness
	s.decisionHeap.Bump(v)

	s.nucleus(conflict, NegativeLit(v))
	s.nucleus(conflict, PositiveLit(v))

	if s.analysisCurLvlCount == 0 {
		maxLvl := s.clauseMaxDecLvl()
		if maxLvl == RootLevel {
			return RootLevel, false
		}
		bt := s.backtrackLevelExcluding(maxLvl)
		s.decisionHeap.Decay()
		return bt, true
	}

	if s.analysisCurLvlCount <= 1 {
		s.minimize(conflict)
		bt := s.backtrackLevelExcluding(s.tr.Level())
		s.decisionHeap.Decay()
		return bt, true
	}

	trailLits := s.tr.Literals()
	for i := len(trailLits) - 1; i >= 0 && s.analysisCurLvlCount > 1; i-- {
		lit := trailLits[i]
		if !s.clauseHasVar(lit.Var()) {
			continue
		}

		pivot := lit
		if s.clauseContains(lit) {
			pivot = lit.Negated()
		}

		cid, ok := s.firstImpliedEdge(conflict, pivot)
		if !ok {
			continue
		}

		s.removeVar(lit.Var())
		s.analysisCurLvlCount--

		for _, premise := range s.arena.Get(cid).literals {
			if premise.Var() == pivot.Var() {
				continue
			}
			s.addLiteral(premise)
		}
	}

	s.minimize(conflict)
	bt := s.backtrackLevelExcluding(s.tr.Level())
	s.decisionHeap.Decay()
	return bt, true
}

// nucleus seeds the analysis clause from the first implication edge at
// pivot whose clause is not already satisfied under the conflict's witness
// assignment. The witness, not the trail, is the right thing to check here:
// ∀-variables are never on the trail (invariant 5), yet most Skolem-clause
// premises are ∀-literals, so a trail-based check could never see them.
func (s *Solver) nucleus(conflict *Conflict, pivot Lit) {
	for _, edge := range s.graph.Edges(pivot) {
		lits := s.arena.Get(edge.clause).literals
		if clauseSatisfiedBy(conflict, lits) {
			continue
		}
		for _, l := range lits {
			if l == pivot {
				continue
			}
			s.addLiteral(l)
		}
		return
	}
}

// firstImpliedEdge returns the first implication edge at pivot whose clause
// is currently a valid justification under the conflict's witness (every
// other literal false there).
func (s *Solver) firstImpliedEdge(conflict *Conflict, pivot Lit) (ClauseID, bool) {
	for _, edge := range s.graph.Edges(pivot) {
		lits := s.arena.Get(edge.clause).literals
		if isImpliedBy(conflict, lits, pivot) {
			return edge.clause, true
		}
	}
	return 0, false
}

func (s *Solver) addLiteral(lit Lit) {
	if s.clauseContains(lit) {
		return
	}
	s.seenVar.Add(int(lit))
	s.analysisClause = append(s.analysisClause, lit)
	if s.prefix.IsUniversal(lit.Var()) {
		return
	}
	if DecLvl(s.decLvl[lit.Var()]) == s.tr.Level() {
		s.analysisCurLvlCount++
	}
	s.decisionHeap.Bump(lit.Var())
}

// clauseHasVar reports whether either literal of v is already in the
// analysis clause being built. Backed by seenVar rather than a scan over
// analysisClause, since the resolution loop in analyze consults this once
// per trail literal.
func (s *Solver) clauseHasVar(v Var) bool {
	return s.seenVar.Contains(int(PositiveLit(v))) || s.seenVar.Contains(int(NegativeLit(v)))
}

// clauseContains reports whether l itself is already in the analysis
// clause, via the seenVar marker set.
func (s *Solver) clauseContains(l Lit) bool {
	return s.seenVar.Contains(int(l))
}

func (s *Solver) removeVar(v Var) {
	out := s.analysisClause[:0]
	for _, l := range s.analysisClause {
		if l.Var() != v {
			out = append(out, l)
		}
	}
	s.analysisClause = out
	s.seenVar.Clear()
	for _, l := range out {
		s.seenVar.Add(int(l))
	}
}

func (s *Solver) clauseMaxDecLvl() DecLvl {
	max := RootLevel
	for _, l := range s.analysisClause {
		if lvl := s.decLvl[l.Var()]; lvl >= 0 && DecLvl(lvl) > max {
			max = DecLvl(lvl)
		}
	}
	return max
}

func (s *Solver) backtrackLevelExcluding(exclude DecLvl) DecLvl {
	max := RootLevel
	for _, l := range s.analysisClause {
		lvl := s.decLvl[l.Var()]
		if lvl < 0 {
			continue
		}
		if DecLvl(lvl) == exclude {
			continue
		}
		if DecLvl(lvl) > max {
			max = DecLvl(lvl)
		}
	}
	return max
}

// minimize drops literals from the analysis clause that are redundant: the
// single literal at the current decision level is always kept, every other
// literal is dropped if is_literal_redundant finds that every clause
// justifying its negation is itself built entirely from redundant premises.
func (s *Solver) minimize(conflict *Conflict) {
	redundant := make(map[Lit]bool)
	for _, l := range s.analysisClause {
		if DecLvl(s.decLvl[l.Var()]) == s.tr.Level() {
			continue
		}
		if s.isLiteralRedundant(conflict, l) {
			redundant[l] = true
		}
	}
	if len(redundant) == 0 {
		return
	}
	out := s.analysisClause[:0]
	for _, l := range s.analysisClause {
		if !redundant[l] {
			out = append(out, l)
		}
	}
	s.analysisClause = out
}

func (s *Solver) isLiteralRedundant(conflict *Conflict, lit Lit) bool {
	if s.prefix.IsUniversal(lit.Var()) {
		return false
	}
	if s.tr.IsDecisionLit(lit) {
		return false
	}
	for _, edge := range s.graph.Edges(lit.Negated()) {
		reason := s.arena.Get(edge.clause).literals
		if !isImpliedBy(conflict, reason, lit.Negated()) {
			continue
		}
		for _, premise := range reason {
			if premise.Var() == lit.Negated().Var() {
				continue
			}
			if !s.isLiteralRedundant(conflict, premise) {
				return false
			}
		}
	}
	return true
}

// clauseSatisfiedBy reports whether any literal of lits holds under the
// conflict's witness assignment.
func clauseSatisfiedBy(conflict *Conflict, lits []Lit) bool {
	for _, l := range lits {
		if conflict.holds(l) {
			return true
		}
	}
	return false
}

// isImpliedBy reports whether, under the conflict's witness, every literal
// of lits other than lit is false, i.e. the clause currently justifies lit.
// Grounded on original_source/src/clause.rs's Clause::is_implied, which
// checks the oracle's returned witness rather than the solver's own trail:
// ∀-variables are never assigned on the trail (invariant 5), so a
// trail-based check could never recognize a clause whose premises are
// ∀-literals as justifying anything.
func isImpliedBy(conflict *Conflict, lits []Lit, lit Lit) bool {
	for _, l := range lits {
		if l == lit {
			continue
		}
		if conflict.holds(l) {
			return false
		}
	}
	return true
}
