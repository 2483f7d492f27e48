package oracle

import "testing"

func TestConflictCheck_solveForwardsEnabledAssumptions(t *testing.T) {
	fake := &fakeSolver{solveResult: true}
	cc := NewConflictCheck(NewLookup(fake))

	cc.AddDefinitionClause(0, []int{1}, []bool{true})
	cc.AddDefinitionClause(1, []int{2}, []bool{false})

	ok, err := cc.Solve()
	if err != nil {
		t.Fatalf("Solve(): unexpected error: %s", err)
	}
	if !ok {
		t.Error("Solve() = false, want true")
	}
	if len(fake.lastSolved) != 2 {
		t.Errorf("SolveAssuming() got %d assumptions, want 2 (one per active level)", len(fake.lastSolved))
	}
}

func TestConflictCheck_backtrackDisablesHigherLevelsPermanently(t *testing.T) {
	fake := &fakeSolver{solveResult: true}
	cc := NewConflictCheck(NewLookup(fake))

	cc.AddDefinitionClause(0, []int{1}, []bool{true})
	cc.AddDefinitionClause(1, []int{2}, []bool{true})
	cc.AddDefinitionClause(2, []int{3}, []bool{true})

	before := len(fake.clauses)
	cc.BacktrackTo(0)
	after := len(fake.clauses)

	if after <= before {
		t.Errorf("BacktrackTo() added %d clauses, want at least one disabling clause per retracted level", after-before)
	}

	cc.Solve()
	if len(fake.lastSolved) != 1 {
		t.Errorf("SolveAssuming() got %d assumptions after backtrack, want 1 (only level 0 remains active)", len(fake.lastSolved))
	}
}

func TestConflictCheck_forgetDelegatesToLookup(t *testing.T) {
	fake := &fakeSolver{}
	lookup := NewLookup(fake)
	cc := NewConflictCheck(lookup)

	first := lookup.Lookup(5, true)
	cc.Forget(5)
	second := lookup.Lookup(5, true)

	if first == second {
		t.Errorf("Lookup(5, true) after Forget = %v, want a different oracle variable than %v", second, first)
	}
}
