// Package oracle wraps an embedded incremental SAT solver behind a small,
// opaque interface, used by the QBF solver to check the local determinism
// of a Skolem function and, incrementally, whether the set of Skolem
// definitions made so far remains jointly satisfiable (§4.7 of the
// specification this package implements).
//
// The only concrete implementation is backed by github.com/go-air/gini; the
// interface exists so that the solver never depends on gini's types
// directly, matching the "single instantiation point" design note.
package oracle

import (
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Lit is an oracle-space literal: an opaque handle with the same
// even-is-positive encoding as this module's own qbf.Lit, so that
// translating between the two spaces (see Lookup in lookup.go) is a plain
// integer mapping, not a semantic conversion.
type Lit int32

// Not returns the negation of l.
func (l Lit) Not() Lit { return l ^ 1 }

// ErrUnknown is returned by SolveAssuming when the embedded solver could
// not determine satisfiability (gini's synchronous Solve never actually
// returns this for a solver without a deadline, but the interface reports
// it defensively since other embeddable solvers can).
var ErrUnknown = errors.New("oracle: solver returned an unknown result")

// Solver is the abstract embedded SAT oracle. Grounded on
// original_source/src/sat.rs's SatSolver trait.
type Solver interface {
	// AddVariable allocates a fresh oracle variable and returns its
	// positive literal.
	AddVariable() Lit
	// AddClause adds a clause over oracle literals.
	AddClause(lits []Lit)
	// SolveAssuming solves the current clause database under the given
	// assumption literals.
	SolveAssuming(assumptions []Lit) (sat bool, err error)
	// Value returns the value a satisfying model assigned to l. Only valid
	// immediately after SolveAssuming returned (true, nil).
	Value(l Lit) bool
	// FailedAssumptions returns the subset of the last SolveAssuming call's
	// assumptions that the oracle used to certify unsatisfiability. Only
	// valid immediately after SolveAssuming returned (false, nil).
	FailedAssumptions() []Lit
}

// giniSolver adapts *gini.Gini to the Solver interface. gini's own z.Lit
// encoding ((var<<1)|sign, 0 reserved) is identical to this package's Lit,
// so conversions are plain casts.
type giniSolver struct {
	g       *gini.Gini
	numVars int
}

// New returns a fresh embedded SAT solver instance backed by gini.
func New() Solver {
	return &giniSolver{g: gini.New()}
}

func (s *giniSolver) AddVariable() Lit {
	l := s.g.Lit()
	s.numVars++
	return Lit(l)
}

func (s *giniSolver) AddClause(lits []Lit) {
	for _, l := range lits {
		s.g.Add(z.Lit(l))
	}
	s.g.Add(z.LitNull)
}

func (s *giniSolver) SolveAssuming(assumptions []Lit) (bool, error) {
	zs := make([]z.Lit, len(assumptions))
	for i, l := range assumptions {
		zs[i] = z.Lit(l)
	}
	s.g.Assume(zs...)
	switch s.g.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, ErrUnknown
	}
}

func (s *giniSolver) Value(l Lit) bool {
	return s.g.Value(z.Lit(l))
}

func (s *giniSolver) FailedAssumptions() []Lit {
	why := s.g.Why(nil)
	out := make([]Lit, len(why))
	for i, l := range why {
		out[i] = Lit(l)
	}
	return out
}
