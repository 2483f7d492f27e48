package qbf

import (
	"math"

	"github.com/rhartert/yagh"
)

// vsidsBumpInitial, vsidsDecayInitial and vsidsRescaleLimit match the
// constants of the incremental-determinization VSIDS variant: scores are
// bumped by scoreInc (itself inflated on every decay instead of deflating
// every score), and both are rescaled together once a score would exceed
// the limit, preserving relative order.
const (
	vsidsBumpInitial  = 1.0
	vsidsDecayInitial = 0.95
	vsidsRescaleLimit = math.MaxFloat64 / 16
)

// vsids is the decision-variable priority heap: existential variables not
// currently assigned, ordered by activity score, highest first.
type vsids struct {
	order    *yagh.IntMap[float64]
	scores   []float64
	scoreInc float64
	decay    float64
}

func newVSIDS() *vsids {
	return &vsids{
		order:    yagh.New[float64](0),
		scoreInc: vsidsBumpInitial,
		decay:    vsidsDecayInitial,
	}
}

// Reserve grows the heap's backing storage to cover variable v, initially
// absent from the heap (the caller adds it explicitly once it is known to
// be existential and unassigned).
func (h *vsids) Reserve(v Var) {
	for len(h.scores) <= int(v) {
		h.scores = append(h.scores, 0)
		h.order.GrowBy(1)
	}
}

// Add inserts v into the heap (called when v becomes unassigned, including
// at initial setup for every existential variable).
func (h *vsids) Add(v Var) {
	h.order.Put(int(v), -h.scores[v])
}

// Remove takes v out of the heap (called when v is assigned).
func (h *vsids) Remove(v Var) {
	// yagh has no explicit delete; Peek/Pop skip stale entries lazily by
	// checking assignment state instead, the way a NextDecision loop
	// discards already-assigned pops.
	_ = v
}

// Contains reports whether v is currently a heap candidate.
func (h *vsids) Contains(v Var) bool {
	return h.order.Contains(int(v))
}

// Bump increases v's score, rescaling all scores if the limit is exceeded.
func (h *vsids) Bump(v Var) {
	h.scores[v] += h.scoreInc
	if h.order.Contains(int(v)) {
		h.order.Put(int(v), -h.scores[v])
	}
	if h.scores[v] > vsidsRescaleLimit {
		h.rescale()
	}
}

// Decay inflates the bump increment, reducing the relative weight of past
// bumps compared to future ones.
func (h *vsids) Decay() {
	h.scoreInc /= h.decay
	if h.scoreInc > vsidsRescaleLimit {
		h.rescale()
	}
}

func (h *vsids) rescale() {
	h.scoreInc *= 1 / vsidsRescaleLimit
	for v, s := range h.scores {
		h.scores[v] = s * (1 / vsidsRescaleLimit)
		if h.order.Contains(v) {
			h.order.Put(v, -h.scores[v])
		}
	}
}

// Peek pops and returns the candidate with the highest score, popping and
// discarding every entry for which isCandidate reports false (yagh has no
// decrease/delete, so Remove is a no-op and staleness is resolved lazily
// here instead).
func (h *vsids) Peek(isCandidate func(Var) bool) (Var, bool) {
	for {
		entry, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		v := Var(entry.Elem)
		if !isCandidate(v) {
			continue
		}
		return v, true
	}
}

// propHeap orders existential variables by the combined size of their two
// Skolem implication lists, largest first (§4.6: the function-propagation
// heap prioritizes variables whose Skolem function is closest to being
// fully determined).
type propHeap struct {
	order    *yagh.IntMap[int]
	reserved int
}

func newPropHeap() *propHeap {
	return &propHeap{order: yagh.New[int](0)}
}

// Reserve grows the heap's backing storage so that variable v has a slot.
func (h *propHeap) Reserve(v Var) {
	for h.reserved <= int(v) {
		h.order.GrowBy(1)
		h.reserved++
	}
}

func (h *propHeap) Push(v Var, size int) {
	h.order.Put(int(v), -size)
}

func (h *propHeap) Remove(v Var) {
	_ = v
}

func (h *propHeap) Pop() (Var, bool) {
	entry, ok := h.order.Pop()
	if !ok {
		return 0, false
	}
	return Var(entry.Elem), true
}
