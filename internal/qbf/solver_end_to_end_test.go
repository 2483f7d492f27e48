package qbf_test

import (
	"strings"
	"testing"

	"github.com/twoqbf/incdet/internal/qbf"
	"github.com/twoqbf/incdet/internal/qdimacs"
)

// testBuilder feeds a parsed QDIMACS document straight into a qbf.Solver,
// the same adaptation main.go's solverBuilder performs.
type testBuilder struct {
	solver *qbf.Solver
}

func (b *testBuilder) SetNumVars(n int) {
	for i := 0; i < n; i++ {
		b.solver.AddVariable(qbf.Existential)
	}
}

func (b *testBuilder) AddQuantifierBlock(universal bool, vars []int) {
	q := qbf.Existential
	if universal {
		q = qbf.Universal
	}
	for _, n := range vars {
		v, err := qbf.VarFromDIMACS(n)
		if err != nil {
			panic(err)
		}
		b.solver.Quantify(v, q)
	}
}

func (b *testBuilder) AddClause(lits []int) {
	ls := make([]qbf.Lit, 0, len(lits))
	for _, n := range lits {
		l, err := qbf.LitFromDIMACS(n)
		if err != nil {
			panic(err)
		}
		ls = append(ls, l)
	}
	b.solver.AddClause(ls)
}

func solve(t *testing.T, doc string) (qbf.Result, *qbf.Solver) {
	t.Helper()
	solver := qbf.NewSolver(qbf.DefaultOptions(), nil)
	b := &testBuilder{solver: solver}
	if err := qdimacs.Parse(strings.NewReader(doc), b); err != nil {
		t.Fatalf("Parse(): unexpected error: %s", err)
	}
	result, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve(): unexpected error: %s", err)
	}
	return result, solver
}

// The six concrete scenarios below range from a trivially satisfiable
// two-variable instance up to one that forces a decision, a conflict,
// analysis, and a learnt clause.

func TestSolve_satisfiableTwoVars(t *testing.T) {
	const doc = `p cnf 2 2
a 1 0
e 2 0
1 -2 0
-1 2 0
`
	got, _ := solve(t, doc)
	if got != qbf.Satisfiable {
		t.Errorf("Solve() = %s, want SATISFIABLE", got)
	}
}

func TestSolve_unsatisfiableTwoVars(t *testing.T) {
	const doc = `p cnf 2 3
a 1 0
e 2 0
1 -2 0
-1 2 0
-1 -2 0
`
	got, _ := solve(t, doc)
	if got != qbf.Unsatisfiable {
		t.Errorf("Solve() = %s, want UNSATISFIABLE", got)
	}
}

// TestSolve_incDetPaperExample reproduces the IncDet paper's running
// example: forall x1 x2, exists y1 y2, with y1 <-> x1 & x2 and
// y2 <-> x1 | y1. It is satisfiable purely by propagation, with no
// decisions at all, since both Skolem functions are pinned down by
// unit-propagatable biconditional clauses.
func TestSolve_incDetPaperExample(t *testing.T) {
	const doc = `p cnf 4 6
a 1 2 0
e 3 4 0
-3 1 0
-3 2 0
3 -1 -2 0
4 -1 0
4 -3 0
-4 1 3 0
`
	got, solver := solve(t, doc)
	if got != qbf.Satisfiable {
		t.Errorf("Solve() = %s, want SATISFIABLE", got)
	}
	if d := solver.Stats().Decisions; d != 0 {
		t.Errorf("Stats().Decisions = %d, want 0 (solved by propagation alone)", d)
	}
}

func TestSolve_satisfiableThreeVars(t *testing.T) {
	const doc = `p cnf 3 4
a 1 0
e 2 3 0
2 0
2 -3 0
-2 3 0
2 3 0
`
	got, _ := solve(t, doc)
	if got != qbf.Satisfiable {
		t.Errorf("Solve() = %s, want SATISFIABLE", got)
	}
}

func TestSolve_unsatisfiableRequiresConflictAnalysis(t *testing.T) {
	const doc = `p cnf 5 7
a 1 2 0
e 3 4 5 0
2 -3 0
-1 -2 3 0
1 -4 0
-3 -4 0
1 3 4 0
-1 5 0
1 -5 0
`
	got, solver := solve(t, doc)
	if got != qbf.Unsatisfiable {
		t.Errorf("Solve() = %s, want UNSATISFIABLE", got)
	}
	if solver.Stats().Conflicts == 0 {
		t.Error("Stats().Conflicts = 0, want at least one conflict")
	}
}

func TestSolve_unsatisfiableViaConstantPropagation(t *testing.T) {
	const doc = `p cnf 2 2
a 2 0
e 1 0
-1 0
1 -2 0
`
	got, _ := solve(t, doc)
	if got != qbf.Unsatisfiable {
		t.Errorf("Solve() = %s, want UNSATISFIABLE", got)
	}
}

func TestSolve_emptyMatrixIsSatisfiable(t *testing.T) {
	const doc = `p cnf 0 0
`
	got, _ := solve(t, doc)
	if got != qbf.Satisfiable {
		t.Errorf("Solve() = %s, want SATISFIABLE", got)
	}
}
