package qbf

import "testing"

func mustLit(t *testing.T, n int) Lit {
	t.Helper()
	l, err := LitFromDIMACS(n)
	if err != nil {
		t.Fatalf("LitFromDIMACS(%d): %s", n, err)
	}
	return l
}

func TestArena_Add_tautologyIsNoOp(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()
	lits := []Lit{mustLit(t, 1), mustLit(t, -1), mustLit(t, 2)}
	for _, l := range lits {
		prefix.Quantify(l.Var(), Existential)
	}

	_, _, res := arena.Add(lits, prefix, false)
	if res != addTautology {
		t.Errorf("Add() result = %v, want addTautology", res)
	}
	if len(arena.clauses) != 0 {
		t.Errorf("arena has %d clauses, want 0", len(arena.clauses))
	}
}

func TestArena_Add_dedupesDuplicateLiterals(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()
	lits := []Lit{mustLit(t, 1), mustLit(t, 2), mustLit(t, 1)}
	for _, l := range lits {
		prefix.Quantify(l.Var(), Existential)
	}

	_, reduced, res := arena.Add(lits, prefix, false)
	if res != addOK {
		t.Fatalf("Add() result = %v, want addOK", res)
	}
	if len(reduced) != 2 {
		t.Errorf("Add() returned %d literals, want 2 (deduplicated): %v", len(reduced), reduced)
	}
}

func TestArena_Add_emptyClauseAfterReduction(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()

	_, _, res := arena.Add(nil, prefix, false)
	if res != addEmpty {
		t.Errorf("Add(nil) result = %v, want addEmpty", res)
	}
}

func TestArena_Add_unitClause(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()
	l := mustLit(t, 1)
	prefix.Quantify(l.Var(), Existential)

	_, reduced, res := arena.Add([]Lit{l}, prefix, false)
	if res != addUnit {
		t.Fatalf("Add() result = %v, want addUnit", res)
	}
	if len(reduced) != 1 || reduced[0] != l {
		t.Errorf("Add() reduced = %v, want [%v]", reduced, l)
	}
}

// TestArena_Add_dropsTrailingUniversal checks that a universal literal
// whose scope is never depended on by any existential literal of the
// clause is reduced away.
func TestArena_Add_dropsTrailingUniversal(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()
	x1, _ := VarFromDIMACS(1)
	y1, _ := VarFromDIMACS(2)
	u2, _ := VarFromDIMACS(3)
	prefix.Quantify(x1, Universal)
	prefix.Quantify(y1, Existential)
	prefix.Quantify(u2, Universal) // bound after the only existential: droppable

	lits := []Lit{PositiveLit(x1), PositiveLit(y1), PositiveLit(u2)}
	_, reduced, res := arena.Add(lits, prefix, false)
	if res != addOK {
		t.Fatalf("Add() result = %v, want addOK", res)
	}
	for _, l := range reduced {
		if l.Var() == u2 {
			t.Errorf("Add() kept trailing universal literal %v, want it reduced away", l)
		}
	}
}

func TestArena_Get(t *testing.T) {
	arena := NewArena()
	prefix := NewPrefix()
	l1, l2 := mustLit(t, 1), mustLit(t, 2)
	prefix.Quantify(l1.Var(), Existential)
	prefix.Quantify(l2.Var(), Existential)

	id, _, res := arena.Add([]Lit{l1, l2}, prefix, false)
	if res != addOK {
		t.Fatalf("Add() result = %v, want addOK", res)
	}
	c := arena.Get(id)
	if len(c.Literals()) != 2 {
		t.Errorf("Get(id).Literals() = %v, want 2 literals", c.Literals())
	}
	if c.Learnt() {
		t.Error("Get(id).Learnt() = true, want false")
	}
}
