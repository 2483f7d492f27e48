package oracle

// ConflictCheck is the incremental, assumption-gated global conflict
// oracle of §4.7: one fresh "assumption literal" per active decision level
// enables that level's Skolem definition clauses; backtracking past a level
// permanently asserts the negation of its assumption literal (gini, like
// any modern incremental SAT solver, never re-enables a clause once its
// guard has been negated by a unit clause, so "permanently" here really
// means "for the remaining lifetime of this oracle instance", exactly the
// behavior the incremental conflict check relies on). Grounded on
// original_source/src/incdet/conflict/check.rs's ConflictCheck.
type ConflictCheck struct {
	lookup      *Lookup
	assumptions []Lit // index: decision level, noLit if not yet allocated or disabled
}

// NewConflictCheck returns a ConflictCheck backed by lookup.
func NewConflictCheck(lookup *Lookup) *ConflictCheck {
	return &ConflictCheck{lookup: lookup}
}

func (c *ConflictCheck) ensure(level int) {
	for len(c.assumptions) <= level {
		c.assumptions = append(c.assumptions, noLit)
	}
}

func (c *ConflictCheck) assumptionFor(level int) Lit {
	c.ensure(level)
	if c.assumptions[level] == noLit {
		c.assumptions[level] = c.lookup.Solver().AddVariable()
	}
	return c.assumptions[level]
}

// AddDefinitionClause adds a Skolem-implication clause, gated by level's
// assumption literal: the clause only constrains the oracle while level
// remains active. vars/positives are parallel slices describing the
// clause's literals in the external variable space (see Lookup).
func (c *ConflictCheck) AddDefinitionClause(level int, vars []int, positives []bool) {
	assumption := c.assumptionFor(level)
	lits := make([]Lit, 0, len(vars)+1)
	for i := range vars {
		lits = append(lits, c.lookup.Lookup(vars[i], positives[i]))
	}
	lits = append(lits, assumption.Not())
	c.lookup.Solver().AddClause(lits)
}

// AddDecisionAssertion additionally asserts, for a variable that was
// assigned by decision rather than forced by propagation, that its decided
// direction holds while level remains active. A decision has no premises to
// justify it (unlike a Skolem-implication clause, which genuinely needs the
// per-clause arbiter built by is_conflicted_incremental below), so it is
// asserted directly as a binary fact. Grounded on check.rs's
// add_definition_to_conflict_check.
func (c *ConflictCheck) AddDecisionAssertion(level, varID int, positive bool) {
	assumption := c.assumptionFor(level)
	lit := c.lookup.Lookup(varID, positive)
	c.lookup.Solver().AddClause([]Lit{assumption.Not(), lit})
}

// BacktrackTo permanently disables every assumption literal for a level
// above lvl: backtracking never re-enables a level once its definitions
// have been retracted.
func (c *ConflictCheck) BacktrackTo(lvl int) {
	for level := len(c.assumptions) - 1; level > lvl; level-- {
		if c.assumptions[level] == noLit {
			continue
		}
		c.lookup.Solver().AddClause([]Lit{c.assumptions[level].Not()})
		c.assumptions[level] = noLit
	}
}

// Solve checks whether the Skolem definitions made at every still-active
// level, together with extra, are jointly satisfiable.
func (c *ConflictCheck) Solve(extra ...Lit) (bool, error) {
	assumptions := make([]Lit, 0, len(c.assumptions)+len(extra))
	for _, a := range c.assumptions {
		if a != noLit {
			assumptions = append(assumptions, a)
		}
	}
	assumptions = append(assumptions, extra...)
	return c.lookup.Solver().SolveAssuming(assumptions)
}

// Forget evicts the external variable's oracle mapping, see Lookup.Forget.
func (c *ConflictCheck) Forget(varID int) {
	c.lookup.Forget(varID)
}

// FreshVariable allocates a fresh oracle variable outside the external
// variable space, used both as the per-query "incremental" assumption
// literal of the fires_C encoding below and as a per-clause arbiter.
func (c *ConflictCheck) FreshVariable() Lit {
	return c.lookup.Solver().AddVariable()
}

// AddArbiterPremise adds one gating clause of the fires_C encoding: arbiter
// can only stay false (meaning "this clause currently fires") while
// incremental holds if lookup(varID, positive) also holds, i.e. the clause's
// other literal named by (varID, positive) is false. Call once per other
// literal of a Skolem-implication clause, with the literal's own negation as
// (varID, positive), to build the clause's arbiter. Grounded on
// check.rs's is_conflicted_incremental.
func (c *ConflictCheck) AddArbiterPremise(incremental, arbiter Lit, varID int, positive bool) {
	premiseFalse := c.lookup.Lookup(varID, positive)
	c.lookup.Solver().AddClause([]Lit{incremental.Not(), arbiter, premiseFalse})
}

// AssertSomeFires adds the final disjunction of the fires_C encoding: while
// incremental holds, at least one of arbiters must be false, i.e. at least
// one of the clauses it was built from genuinely fires under the model the
// oracle finds (every one of that clause's other literals is false).
func (c *ConflictCheck) AssertSomeFires(incremental Lit, arbiters []Lit) {
	lits := make([]Lit, 0, len(arbiters)+1)
	lits = append(lits, incremental.Not())
	for _, a := range arbiters {
		lits = append(lits, a.Not())
	}
	c.lookup.Solver().AddClause(lits)
}

// AddEscapeClause asserts, while incremental holds, that at least one of the
// literals named by vars/positives holds. Used by the local-determinism
// check to forbid a single candidate Skolem clause from having every other
// literal false (i.e. to ask the oracle for a model where that clause does
// NOT fire): vars/positives there are the clause's own premises, each named
// in its own (non-negated) polarity.
func (c *ConflictCheck) AddEscapeClause(incremental Lit, vars []int, positives []bool) {
	lits := make([]Lit, 0, len(vars)+1)
	lits = append(lits, incremental.Not())
	for i := range vars {
		lits = append(lits, c.lookup.Lookup(vars[i], positives[i]))
	}
	c.lookup.Solver().AddClause(lits)
}

// Model returns the oracle's last satisfying model, translated back into
// the external variable space. Only valid immediately after a Solve call
// returned (true, nil).
func (c *ConflictCheck) Model() map[int]bool {
	return c.lookup.Model()
}
