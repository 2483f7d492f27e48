package oracle

import "testing"

// fakeSolver is a minimal in-memory Solver used to test Lookup and
// ConflictCheck without depending on gini's actual search behavior: it
// only needs to record what was asked of it.
type fakeSolver struct {
	numVars     int
	clauses     [][]Lit
	lastSolved  []Lit
	solveResult bool
	solveErr    error
}

func (s *fakeSolver) AddVariable() Lit {
	l := Lit(s.numVars * 2)
	s.numVars++
	return l
}

func (s *fakeSolver) AddClause(lits []Lit) {
	cp := append([]Lit(nil), lits...)
	s.clauses = append(s.clauses, cp)
}

func (s *fakeSolver) SolveAssuming(assumptions []Lit) (bool, error) {
	s.lastSolved = append([]Lit(nil), assumptions...)
	return s.solveResult, s.solveErr
}

func (s *fakeSolver) Value(l Lit) bool         { return false }
func (s *fakeSolver) FailedAssumptions() []Lit { return nil }

func TestLookup_lazyAllocationIsStable(t *testing.T) {
	fake := &fakeSolver{}
	l := NewLookup(fake)

	a := l.Lookup(3, true)
	b := l.Lookup(3, true)
	if a != b {
		t.Errorf("Lookup(3, true) = %v then %v, want a stable mapping", a, b)
	}
	if neg := l.Lookup(3, false); neg != a.Not() {
		t.Errorf("Lookup(3, false) = %v, want %v (Not of positive)", neg, a.Not())
	}
}

func TestLookup_forgetAllocatesFreshVariable(t *testing.T) {
	fake := &fakeSolver{}
	l := NewLookup(fake)

	first := l.Lookup(1, true)
	l.Forget(1)
	second := l.Lookup(1, true)

	if first == second {
		t.Errorf("Lookup(1, true) after Forget = %v, want a different oracle variable than %v", second, first)
	}
}

func TestLookup_addClauseTranslatesThroughLookup(t *testing.T) {
	fake := &fakeSolver{}
	l := NewLookup(fake)

	l.AddClause([]int{1, 2}, []bool{true, false})

	if len(fake.clauses) != 1 {
		t.Fatalf("clauses recorded = %d, want 1", len(fake.clauses))
	}
	want := []Lit{l.Lookup(1, true), l.Lookup(2, false)}
	got := fake.clauses[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AddClause() recorded %v, want %v", got, want)
	}
}
