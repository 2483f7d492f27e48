package qbf

import "github.com/twoqbf/incdet/internal/oracle"

// Conflict is the witness of a detected global conflict (§4.8): the
// variable whose two Skolem-forced directions collided, and the set of
// literals the oracle's forcing model made true. Clause premises are
// checked against this witness during conflict analysis (analysis.go),
// never against the solver's own trail, since ∀-variables are never
// assigned there (invariant 5) and most Skolem-clause premises are
// ∀-literals. Grounded on original_source/src/incdet.rs's Conflict struct.
type Conflict struct {
	Var        Var
	Assignment map[Lit]bool
}

// holds reports whether l is true under the witness. A nil Conflict (never
// actually produced, but defensive against a missed wiring) holds nothing.
func (c *Conflict) holds(l Lit) bool {
	if c == nil {
		return false
	}
	return c.Assignment[l]
}

// isConflicted is the two-stage check of §4.6 steps 1-2: a cheap,
// structural pre-check that can only say "definitely conflicted" or
// "inconclusive", followed, only when inconclusive, by the incremental,
// oracle-backed global check. forced, if not LitNull, is the literal about
// to be assigned by propagation: its own defining clauses are known to fire
// already (that's why propagation chose it), so only the opposite polarity
// needs to be tested. Pass LitNull when no polarity is yet known (the
// pre-decision check in main_loop), in which case both polarities of v are
// tested. Grounded on original_source's IncDet::is_conflicted, which calls
// the non-incremental _is_conflicted with exact=false first and only falls
// back to the incremental SAT call when that quick check cannot decide.
func (s *Solver) isConflicted(v Var, forced Lit) bool {
	if conflict, ok := s.quickConflicted(v); ok {
		s.conflictWitness = conflict
		return true
	}
	s.stats.GlobalConflictChecks++
	conflict, ok := s.globalConflicted(v, forced)
	if !ok {
		return false
	}
	s.conflictWitness = conflict
	return true
}

// quickConflicted is the cheap pre-check: if both polarities of v already
// have a Skolem implication whose clause is a unit clause (forced
// regardless of context), the two directions directly contradict each
// other and no oracle call is needed to know this is a conflict. The
// witness for this case is the empty assignment: a unit clause has no
// premises to check, so every premise check against it is vacuously true.
func (s *Solver) quickConflicted(v Var) (*Conflict, bool) {
	s.stats.LocalConflictChecks++
	pos, posOK := s.skolem.First(PositiveLit(v))
	neg, negOK := s.skolem.First(NegativeLit(v))
	if !posOK || !negOK {
		return nil, false
	}
	if len(s.arena.Get(pos).literals) != 1 || len(s.arena.Get(neg).literals) != 1 {
		return nil, false
	}
	return &Conflict{Var: v, Assignment: map[Lit]bool{}}, true
}

// globalConflicted asks the incremental conflict-check oracle whether, for
// some ∀-instantiation consistent with every Skolem and decision definition
// made so far (the oracle's persistent clause database), both of v's
// polarities currently have a clause with every other literal false (i.e.
// both fire and force v in contradicting directions). It builds one fresh
// "arbiter" variable per candidate clause per polarity: the arbiter can only
// stay false (meaning "this clause fires") if every other literal of the
// clause is made false by the model, and a final clause requires at least
// one arbiter per polarity to be false. Grounded on
// original_source/src/incdet/conflict/check.rs's is_conflicted_incremental.
func (s *Solver) globalConflicted(v Var, forced Lit) (*Conflict, bool) {
	incremental := s.global.FreshVariable()

	for _, lit := range [2]Lit{PositiveLit(v), NegativeLit(v)} {
		if lit == forced {
			// forced's own defining clause already fires by construction
			// (that's why propagation picked it): no need to re-derive it
			// through an arbiter, and there is nothing to escape.
			continue
		}

		var arbiters []oracle.Lit
		s.skolem.Implications(lit, func(cid ClauseID) bool {
			arb := s.global.FreshVariable()
			for _, premise := range s.arena.Get(cid).literals {
				if premise == lit {
					continue
				}
				neg := premise.Negated()
				s.global.AddArbiterPremise(incremental, arb, int(neg.Var()), neg.IsPositive())
			}
			arbiters = append(arbiters, arb)
			return true
		})
		if len(arbiters) == 0 {
			// This polarity has no candidate clause at all: it can never
			// fire, so v cannot be conflicted.
			return nil, false
		}
		s.global.AssertSomeFires(incremental, arbiters)
	}

	sat, err := s.global.Solve(incremental)
	if err != nil || !sat {
		return nil, false
	}

	model := s.global.Model()
	assignment := make(map[Lit]bool, len(model))
	for varID, positive := range model {
		if positive {
			assignment[PositiveLit(Var(varID))] = true
		} else {
			assignment[NegativeLit(Var(varID))] = true
		}
	}
	return &Conflict{Var: v, Assignment: assignment}, true
}

// hasUniqueConsequence asks whether l is truly, semantically forced: not
// merely that a candidate Skolem clause exists for it (skolemMap's own
// HasUniqueConsequence, a syntactic necessary-condition pre-check), but that
// every ∀-instantiation consistent with every definition made so far has at
// least one candidate clause with every other literal false, so l cannot be
// escaped. Implemented as a one-shot query against the same persistent
// conflict-check oracle: for each candidate clause, assert (while a fresh
// incremental literal holds) that at least one of its other literals is
// true, i.e. forbid that clause from firing; if the resulting system is
// satisfiable, some consistent ∀-instantiation exists under which none of
// l's candidates fire, so l is not yet truly forced. Grounded on §4.4 and
// original_source's local-determinism pre-check ahead of propagation.
func (s *Solver) hasUniqueConsequence(l Lit) bool {
	if !s.skolem.HasUniqueConsequence(l) {
		return false
	}
	s.stats.LocalDeterminismChecks++

	incremental := s.global.FreshVariable()
	s.skolem.Implications(l, func(cid ClauseID) bool {
		lits := s.arena.Get(cid).literals
		vars := make([]int, 0, len(lits)-1)
		positives := make([]bool, 0, len(lits)-1)
		for _, premise := range lits {
			if premise == l {
				continue
			}
			vars = append(vars, int(premise.Var()))
			positives = append(positives, premise.IsPositive())
		}
		s.global.AddEscapeClause(incremental, vars, positives)
		return true
	})

	sat, err := s.global.Solve(incremental)
	if err != nil {
		// The oracle could not decide: trust the syntactic answer rather
		// than stalling the search.
		return true
	}
	return !sat
}

// addDefinitionToGlobalCheck registers v's newly-made assignment with the
// global conflict-check oracle: its Skolem implication clauses (if any)
// are added as definition clauses gated by the current decision level, and
// if the assignment was a decision, a direct assertion of its direction is
// added too (§4.7).
func (s *Solver) addDefinitionToGlobalCheck(v Var, l Lit, isDecision bool) {
	level := int(s.tr.Level())

	addFor := func(head Lit) {
		s.skolem.Implications(head, func(cid ClauseID) bool {
			lits := s.arena.Get(cid).literals
			vars := make([]int, len(lits))
			positives := make([]bool, len(lits))
			for i, lit := range lits {
				vars[i] = int(lit.Var())
				positives[i] = lit.IsPositive()
			}
			s.global.AddDefinitionClause(level, vars, positives)
			return true
		})
	}

	addFor(PositiveLit(v))
	addFor(NegativeLit(v))

	if isDecision {
		s.global.AddDecisionAssertion(level, int(v), l.IsPositive())
	}
}

// backtrackTo undoes every assignment made after decision level lvl,
// cascading the undo to every piece of search state that tracks decision
// levels (§4.8's last step, and original_source's backtrack_to).
func (s *Solver) backtrackTo(lvl DecLvl) {
	s.tr.BacktrackTo(lvl, func(l Lit) {
		v := l.Var()
		s.assign[v] = Unassigned
		s.decLvl[v] = -1
		s.reason[v] = -1
		if s.prefix.IsExistential(v) {
			s.decisionHeap.Add(v)
			s.global.Forget(int(v))
		}
	})
	s.skolem.BacktrackTo(lvl)
	s.graph.BacktrackTo(lvl)
	s.constQueue.Clear()
	s.global.BacktrackTo(int(lvl))
}
