package qbf

// propagate drains the constant queue and then repeatedly pops the
// highest-priority variable off the function heap, propagating until
// either a conflict is found or both are empty. Grounded on
// original_source/src/incdet.rs's next_propagation/propagate: constants are
// always drained first, the (size-ordered) function heap is only consulted
// once the constant queue is empty.
func (s *Solver) propagate() bool {
	for {
		if !s.constQueue.IsEmpty() {
			l := s.constQueue.Pop()
			if !s.propagateConstant(l) {
				return false
			}
			continue
		}

		v, ok := s.nextFunctionCandidate()
		if !ok {
			return true
		}
		if !s.propagateFunction(v) {
			return false
		}
	}
}

// nextFunctionCandidate pops variables off the function heap, skipping
// stale entries (already assigned, or with no unique consequence in either
// direction) until a live candidate is found.
func (s *Solver) nextFunctionCandidate() (Var, bool) {
	for {
		v, ok := s.funcHeap.Pop()
		if !ok {
			return 0, false
		}
		if s.valueOf(v) != Unassigned {
			continue
		}
		if !s.hasUniqueConsequence(PositiveLit(v)) && !s.hasUniqueConsequence(NegativeLit(v)) {
			continue
		}
		return v, true
	}
}

// propagateFunction checks whether v now has a unique consequence (§4.4)
// and, if so, picks the forced direction (when both directions are forced,
// the one with the smaller Skolem implication list, the cheaper direction to
// re-justify later), checks that assigning it does not conflict (§4.6 steps
// 1-2), and only then assigns it.
func (s *Solver) propagateFunction(v Var) bool {
	s.stats.FunctionPropagations++

	pos := s.hasUniqueConsequence(PositiveLit(v))
	neg := s.hasUniqueConsequence(NegativeLit(v))
	if !pos && !neg {
		return true
	}

	var decided Lit
	switch {
	case pos && !neg:
		decided = PositiveLit(v)
	case neg && !pos:
		decided = NegativeLit(v)
	default:
		if s.skolem.Len(PositiveLit(v)) <= s.skolem.Len(NegativeLit(v)) {
			decided = PositiveLit(v)
		} else {
			decided = NegativeLit(v)
		}
	}

	if s.isConflicted(v, decided) {
		s.conflicted = true
		s.conflictVar = v
		return false
	}

	s.assignAndPropagate(decided, false)
	return true
}

// propagateConstant assigns a literal that was queued as forced regardless
// of the surrounding universal assignment. A dedicated watch-based fast
// path for this (skipping the general assignment machinery) was left
// unimplemented upstream (see DESIGN.md's "unresolved constant-propagation
// path" entry); this implementation always drains the constant queue
// through the same assignment/consistency path propagateFunction uses.
func (s *Solver) propagateConstant(l Lit) bool {
	s.stats.ConstantPropagations++

	if s.valueOf(l.Var()) != Unassigned {
		// Already assigned: check the existing assignment matches.
		if s.litFalse(l) {
			s.conflicted = true
			s.conflictVar = l.Var()
			return false
		}
		return true
	}

	if s.isConflicted(l.Var(), l) {
		s.conflicted = true
		s.conflictVar = l.Var()
		return false
	}

	s.assignAndPropagate(l, false)
	return true
}

// assignAndPropagate records l as assigned, removes its variable from the
// decision heap, registers its Skolem definition with the global conflict
// oracle, and rescans the clauses watching ¬l to find replacement watches
// or new Skolem implications (§4.3/§4.5).
func (s *Solver) assignAndPropagate(l Lit, isDecision bool) {
	v := l.Var()

	if isDecision {
		s.tr.PushDecision(l)
	} else {
		s.tr.Push(l)
	}

	implied := !isDecision && s.prefix.IsExistential(v)
	s.assign[v] = valueFor(l.IsPositive(), implied)
	s.decLvl[v] = int(s.tr.Level())

	s.decisionHeap.Remove(v)
	s.funcHeap.Remove(v)

	if s.prefix.IsExistential(v) {
		s.addDefinitionToGlobalCheck(v, l, isDecision)
	}

	s.rescanWatchers(l.Negated())
}

func valueFor(positive, implied bool) Value {
	switch {
	case positive && implied:
		return PositiveImplications
	case !positive && implied:
		return NegativeImplications
	case positive:
		return True
	default:
		return False
	}
}

// rescanWatchers re-examines every clause watching falsified, looking
// either for a new existential literal to watch or, failing that,
// installing the clause as a new Skolem implication for its one remaining
// unassigned existential literal.
func (s *Solver) rescanWatchers(falsified Lit) {
	key := falsified.Negated()
	watchers := append([]ClauseID(nil), s.watches.Watchers(key)...)
	for _, cid := range watchers {
		c := s.arena.Get(cid)
		lits := c.literals

		if clauseSatisfied(lits, s) {
			continue
		}

		var remaining Lit = LitNull
		remainingCount := 0
		for _, l := range lits {
			if l == falsified {
				continue
			}
			if !s.prefix.IsExistential(l.Var()) {
				continue
			}
			if s.litUnassigned(l) {
				remainingCount++
				remaining = l
			}
		}

		switch {
		case remainingCount >= 2:
			// There are at least two unassigned existential literals other
			// than the falsified one: watch one of them instead.
			s.watches.Unwatch(key, cid)
			s.watches.Watch(remaining.Negated(), cid)
		case remainingCount == 1:
			// Only one unassigned existential literal is left: the clause
			// keeps its watch and becomes a Skolem implication for it.
			s.installImplicationFor(remaining, cid, s.tr.Level())
		default:
			s.installAsImplication(cid, lits, s.tr.Level())
		}
	}
}
