package qbf

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Solve runs the incremental-determinization search to completion (or until
// Options.MaxConflicts is reached). Grounded on original_source/src/
// incdet.rs's _solve and a classic CDCL main-loop shape (propagate, handle
// conflict or decide, repeat).
func (s *Solver) Solve() (Result, error) {
	scopes := 0
	for _, sc := range s.prefix.Scopes() {
		if len(sc.Vars) > 0 {
			scopes++
		}
	}
	if scopes > 2 {
		return Unknown, nil
	}

	if s.conflicted {
		return Unsatisfiable, nil
	}

	start := time.Now()
	defer func() { s.stats.SolveTime = time.Since(start) }()

	for {
		if !s.propagate() {
			s.log.WithFields(logFields(s.conflictVar)).Debug("conflict during propagation")
			if !s.handleConflict() {
				return Unsatisfiable, nil
			}
			continue
		}

		if s.opts.MaxConflicts > 0 && s.stats.Conflicts >= s.opts.MaxConflicts {
			return Unknown, nil
		}

		v, ok := s.nextDecisionVar()
		if !ok {
			return Satisfiable, nil
		}

		if s.isConflicted(v, LitNull) {
			s.decisionHeap.Add(v)
			s.conflicted = true
			s.conflictVar = v
			s.log.WithFields(logFields(v)).Debug("conflict before decision")
			if !s.handleConflict() {
				return Unsatisfiable, nil
			}
			continue
		}

		lit := s.decidePolarity(v)
		s.assignAndPropagate(lit, true)
		s.stats.Decisions++
		s.conflictRate.Add(0)
		s.stats.ConflictRate = s.conflictRate.Value()
		s.log.WithFields(logFields(v)).Trace("decision")
	}
}

func logFields(v Var) logrus.Fields {
	return logrus.Fields{"var": v.ToDIMACS()}
}

// nextDecisionVar returns the highest-priority existential variable still
// unassigned, or false if every existential variable has been assigned
// (the instance is satisfiable under the current universal assignment, and
// since the search never backtracked past a universal decision without
// resolving it, under every universal assignment).
func (s *Solver) nextDecisionVar() (Var, bool) {
	return s.decisionHeap.Peek(func(v Var) bool {
		return s.valueOf(v) == Unassigned && s.prefix.IsExistential(v)
	})
}

// decidePolarity picks the direction with the smaller Skolem implication
// list, the cheaper one to re-justify if this decision is later retracted
// (§4.10, mirroring original_source's lit_count tie-break).
func (s *Solver) decidePolarity(v Var) Lit {
	if s.skolem.Len(PositiveLit(v)) <= s.skolem.Len(NegativeLit(v)) {
		return PositiveLit(v)
	}
	return NegativeLit(v)
}

// handleConflict analyzes the current conflict, learns a clause, and
// backtracks. It returns false if the instance is unsatisfiable.
func (s *Solver) handleConflict() bool {
	s.stats.Conflicts++
	s.conflictRate.Add(1)
	s.stats.ConflictRate = s.conflictRate.Value()
	s.conflicted = false

	backtrackLvl, ok := s.analyze()
	if !ok {
		return false
	}

	learnt := append([]Lit(nil), s.analysisClause...)
	s.backtrackTo(backtrackLvl)

	cid, reduced, res := s.arena.Add(learnt, s.prefix, true)
	switch res {
	case addTautology:
		// A minimized learnt clause should never be a tautology; treat
		// defensively as an empty learnt clause would be handled.
		return true
	case addEmpty:
		return false
	case addUnit:
		s.assignAndPropagate(reduced[0], false)
		return true
	}

	s.stats.ClausesAdded++
	s.installClause(cid, reduced, backtrackLvl)
	return true
}
