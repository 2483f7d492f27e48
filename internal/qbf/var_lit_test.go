package qbf

import "testing"

func TestLit_negatedIsInvolution(t *testing.T) {
	v, err := VarFromDIMACS(5)
	if err != nil {
		t.Fatalf("VarFromDIMACS(): %s", err)
	}
	l := PositiveLit(v)
	if got := l.Negated().Negated(); got != l {
		t.Errorf("l.Negated().Negated() = %v, want %v", got, l)
	}
}

func TestLit_encoding(t *testing.T) {
	v, err := VarFromDIMACS(3)
	if err != nil {
		t.Fatalf("VarFromDIMACS(): %s", err)
	}
	pos := PositiveLit(v)
	neg := NegativeLit(v)
	if int(pos) != int(v)*2 {
		t.Errorf("PositiveLit index = %d, want %d", pos, int(v)*2)
	}
	if int(neg) != int(v)*2+1 {
		t.Errorf("NegativeLit index = %d, want %d", neg, int(v)*2+1)
	}
	if pos.Var() != v || neg.Var() != v {
		t.Errorf("Var() round-trip failed for v=%v", v)
	}
	if !pos.IsPositive() || neg.IsPositive() {
		t.Errorf("IsPositive() mismatch: pos=%v neg=%v", pos.IsPositive(), neg.IsPositive())
	}
}

func TestLitFromDIMACS_roundTrip(t *testing.T) {
	for _, n := range []int{1, -1, 7, -7, 1<<31 - 1, -(1<<31 - 1)} {
		l, err := LitFromDIMACS(n)
		if err != nil {
			t.Fatalf("LitFromDIMACS(%d): %s", n, err)
		}
		if got := l.ToDIMACS(); got != n {
			t.Errorf("LitFromDIMACS(%d).ToDIMACS() = %d, want %d", n, got, n)
		}
	}
}

func TestLitFromDIMACS_rejectsZero(t *testing.T) {
	if _, err := LitFromDIMACS(0); err == nil {
		t.Error("LitFromDIMACS(0): want error, got none")
	}
}

func TestVarFromDIMACS_acceptsLargestAndRejectsBeyond(t *testing.T) {
	if _, err := VarFromDIMACS(1<<31 - 1); err != nil {
		t.Errorf("VarFromDIMACS(2^31-1): unexpected error: %s", err)
	}
	if _, err := VarFromDIMACS(1 << 31); err == nil {
		t.Error("VarFromDIMACS(2^31): want error, got none")
	}
	if _, err := VarFromDIMACS(0); err == nil {
		t.Error("VarFromDIMACS(0): want error, got none")
	}
}
