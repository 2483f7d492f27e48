package qbf

import "testing"

func TestVSIDS_peekReturnsHighestScore(t *testing.T) {
	h := newVSIDS()
	for v := Var(0); v < 3; v++ {
		h.Reserve(v)
		h.Add(v)
	}

	h.Bump(1)
	h.Bump(1)
	h.Bump(2)

	got, ok := h.Peek(func(Var) bool { return true })
	if !ok {
		t.Fatal("Peek(): want a candidate, got none")
	}
	if got != 1 {
		t.Errorf("Peek() = %v, want variable 1 (highest bumped score)", got)
	}
}

func TestVSIDS_peekSkipsNonCandidates(t *testing.T) {
	h := newVSIDS()
	for v := Var(0); v < 3; v++ {
		h.Reserve(v)
		h.Add(v)
	}
	h.Bump(1)

	got, ok := h.Peek(func(v Var) bool { return v != 1 })
	if !ok {
		t.Fatal("Peek(): want a candidate, got none")
	}
	if got == 1 {
		t.Error("Peek() returned the excluded variable")
	}
}

func TestVSIDS_rescaleKeepsScoresBelowLimit(t *testing.T) {
	h := newVSIDS()
	h.Reserve(0)
	h.Add(0)
	h.scores[0] = vsidsRescaleLimit * 2

	h.Bump(0)

	if h.scores[0] >= vsidsRescaleLimit {
		t.Errorf("scores[0] = %g, want < %g after rescale", h.scores[0], vsidsRescaleLimit)
	}
}

func TestPropHeap_popsLargestSizeFirst(t *testing.T) {
	h := newPropHeap()
	for v := Var(0); v < 3; v++ {
		h.Reserve(v)
	}
	h.Push(0, 1)
	h.Push(1, 5)
	h.Push(2, 3)

	got, ok := h.Pop()
	if !ok {
		t.Fatal("Pop(): want a candidate, got none")
	}
	if got != 1 {
		t.Errorf("Pop() = %v, want variable 1 (largest size)", got)
	}
}

func TestPropHeap_reserveIsIdempotentAndTerminates(t *testing.T) {
	h := newPropHeap()
	h.Reserve(5)
	h.Reserve(5)
	h.Reserve(2)
	if h.reserved != 6 {
		t.Errorf("reserved = %d, want 6", h.reserved)
	}
}
