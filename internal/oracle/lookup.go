package oracle

// noLit marks an unmapped lookup slot.
const noLit Lit = -1

// Lookup lazily allocates one oracle variable per distinct variable id it
// is asked to map, translating negation in this package's own Lit space so
// that the underlying Solver only ever sees its own literals. Grounded on
// original_source/src/sat.rs's LookupSolver: Forget evicts a mapping so the
// next Lookup call for that variable allocates a brand new oracle
// variable, used when a Skolem definition naming that variable is retracted
// on backtrack and the old oracle variable's clauses must no longer be
// reachable through a fresh lookup.
type Lookup struct {
	solver Solver
	byVar  []Lit // index: external variable id, value: positive oracle Lit or noLit
}

// NewLookup wraps solver with a lazy per-variable mapping.
func NewLookup(solver Solver) *Lookup {
	return &Lookup{solver: solver}
}

func (l *Lookup) ensure(v int) {
	for len(l.byVar) <= v {
		l.byVar = append(l.byVar, noLit)
	}
}

// Lookup returns the oracle literal corresponding to the external literal
// identified by (v, positive), allocating a fresh oracle variable on first
// use of v since the last Forget(v).
func (l *Lookup) Lookup(v int, positive bool) Lit {
	l.ensure(v)
	if l.byVar[v] == noLit {
		l.byVar[v] = l.solver.AddVariable()
	}
	if positive {
		return l.byVar[v]
	}
	return l.byVar[v].Not()
}

// Forget evicts the mapping for v, if any.
func (l *Lookup) Forget(v int) {
	if v < len(l.byVar) {
		l.byVar[v] = noLit
	}
}

// AddClause adds a clause given as (variable, positive) pairs, translating
// through Lookup.
func (l *Lookup) AddClause(vars []int, positives []bool) {
	lits := make([]Lit, len(vars))
	for i := range vars {
		lits[i] = l.Lookup(vars[i], positives[i])
	}
	l.solver.AddClause(lits)
}

// Solver exposes the underlying oracle for calls that already operate in
// oracle-Lit space (fresh arbiter variables, assumptions).
func (l *Lookup) Solver() Solver {
	return l.solver
}

// Model returns, for every external variable with a live mapping, whether
// its positive literal held in the oracle's last satisfying model. Only
// valid immediately after a Solve/SolveAssuming call returned (true, nil).
// Grounded on original_source/src/sat.rs's LookupSolver::orig_model.
func (l *Lookup) Model() map[int]bool {
	out := make(map[int]bool, len(l.byVar))
	for v, lit := range l.byVar {
		if lit == noLit {
			continue
		}
		out[v] = l.solver.Value(lit)
	}
	return out
}
