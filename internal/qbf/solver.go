package qbf

import (
	"github.com/sirupsen/logrus"
	"github.com/twoqbf/incdet/internal/oracle"
)

// Result is the outcome of a Solve call.
type Result int

const (
	Unknown Result = iota
	Satisfiable
	Unsatisfiable
)

func (r Result) String() string {
	switch r {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Solver is the incremental-determinization 2QBF engine: it searches for a
// Skolem function for every existential variable that is consistent for
// every universal assignment, using a CDCL-shaped loop over an implication
// graph of "this clause currently forces this existential literal".
type Solver struct {
	prefix  *Prefix
	arena   *Arena
	watches *watchList
	skolem  *skolemMap
	graph   *implicationGraph
	tr      *trail

	decisionHeap *vsids
	funcHeap     *propHeap
	constQueue   *litQueue

	assign []Value
	decLvl []int // -1 if unassigned
	reason []ClauseID

	seenVar ResetSet

	global *oracle.ConflictCheck

	conflicted      bool
	conflictVar     Var
	conflictWitness *Conflict

	opts  Options
	stats Stats
	log   logrus.FieldLogger

	conflictRate movingAverage

	analysisClause      []Lit
	analysisCurLvlCount int
}

// NewSolver returns a solver for a (possibly still growing) prefix/arena
// pair. opts tunes its heuristics; a nil logger defaults to the standard
// logrus logger, following the "no logger means use the package default"
// convention.
func NewSolver(opts Options, log logrus.FieldLogger) *Solver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	lookup := oracle.NewLookup(oracle.New())
	s := &Solver{
		prefix:       NewPrefix(),
		arena:        NewArena(),
		watches:      newWatchList(),
		skolem:       newSkolemMap(),
		graph:        newImplicationGraph(),
		tr:           newTrail(),
		decisionHeap: newVSIDS(),
		funcHeap:     newPropHeap(),
		constQueue:   newLitQueue(16),
		global:       oracle.NewConflictCheck(lookup),
		opts:         opts,
		log:          log,
		conflictRate: newMovingAverage(0.99),
	}
	if opts.VariableDecay > 0 {
		s.decisionHeap.decay = opts.VariableDecay
	}
	return s
}

// NumVars returns the number of variables declared so far.
func (s *Solver) NumVars() int { return s.prefix.NumVars() }

// Stats returns a snapshot of the solver's statistics.
func (s *Solver) Stats() Stats { return s.stats }

// AddVariable declares a new variable bound by quantifier q and returns it.
func (s *Solver) AddVariable(q Quantifier) Var {
	v := Var(s.prefix.NumVars())
	s.prefix.Quantify(v, q)
	s.reserve(v)
	if q == Existential {
		s.decisionHeap.Add(v)
		s.funcHeap.Push(v, 0)
	}
	return v
}

// Quantify (re)binds an already-declared variable to quantifier q.
func (s *Solver) Quantify(v Var, q Quantifier) {
	s.prefix.Quantify(v, q)
}

func (s *Solver) reserve(v Var) {
	for len(s.assign) <= int(v) {
		s.assign = append(s.assign, Unassigned)
		s.decLvl = append(s.decLvl, -1)
		s.reason = append(s.reason, -1)
	}
	s.decisionHeap.Reserve(v)
	s.funcHeap.Reserve(v)
	s.watches.Reserve(PositiveLit(v))
	s.watches.Reserve(NegativeLit(v))
	s.skolem.Reserve(PositiveLit(v))
	s.skolem.Reserve(NegativeLit(v))
	s.graph.Reserve(PositiveLit(v))
	s.graph.Reserve(NegativeLit(v))
}

// valueOf returns the current assignment value of v.
func (s *Solver) valueOf(v Var) Value { return s.assign[v] }

// litTrue reports whether l currently holds.
func (s *Solver) litTrue(l Lit) bool {
	b, assigned := LitValue(s.assign[l.Var()], l)
	return assigned && b
}

// litFalse reports whether l currently does not hold (it is assigned and
// false).
func (s *Solver) litFalse(l Lit) bool {
	b, assigned := LitValue(s.assign[l.Var()], l)
	return assigned && !b
}

func (s *Solver) litUnassigned(l Lit) bool {
	return s.assign[l.Var()] == Unassigned
}

// AddClause adds a clause to the instance. It returns false if the clause
// is trivially true (a tautology) and was therefore dropped, matching the
// teacher's NewClause boolean-success convention.
func (s *Solver) AddClause(lits []Lit) bool {
	for _, l := range lits {
		s.reserve(l.Var())
	}

	cid, reduced, res := s.arena.Add(lits, s.prefix, false)
	switch res {
	case addTautology:
		return false
	case addEmpty:
		s.conflicted = true
		return true
	case addUnit:
		s.assignAndPropagate(reduced[0], false)
		return true
	}

	s.stats.ClausesAdded++
	s.installClause(cid, reduced, RootLevel)
	return true
}

// installClause wires a newly inserted clause into the watch list or the
// Skolem map, depending on how many existential literals of it are
// unassigned (§4.3/§4.5).
func (s *Solver) installClause(cid ClauseID, lits []Lit, level DecLvl) {
	unassignedExistential := make([]Lit, 0, 2)
	for _, l := range lits {
		if s.prefix.IsExistential(l.Var()) && s.litUnassigned(l) {
			unassignedExistential = append(unassignedExistential, l)
			if len(unassignedExistential) == 2 {
				break
			}
		}
	}

	switch len(unassignedExistential) {
	case 0:
		// Every existential literal is already assigned, so the clause is
		// either satisfied or has every existential literal false;
		// installAsImplication records no implication in either case.
		s.installAsImplication(cid, lits, level)
	case 1:
		s.watches.Watch(unassignedExistential[0].Negated(), cid)
		s.installImplicationFor(unassignedExistential[0], cid, level)
	default:
		s.watches.Watch(unassignedExistential[0].Negated(), cid)
		s.watches.Watch(unassignedExistential[1].Negated(), cid)
	}
}

// installAsImplication installs cid as a Skolem implication for the single
// existential literal in lits that is not yet falsified, if exactly one
// such literal exists. If the clause is already satisfied by the current
// assignment, no bookkeeping is necessary.
func (s *Solver) installAsImplication(cid ClauseID, lits []Lit, level DecLvl) {
	if clauseSatisfied(lits, s) {
		return
	}
	var head Lit = LitNull
	for _, l := range lits {
		if !s.prefix.IsExistential(l.Var()) {
			continue
		}
		if !s.litFalse(l) {
			if head != LitNull {
				return // more than one: nothing to install
			}
			head = l
		}
	}
	if head != LitNull {
		s.installImplicationFor(head, cid, level)
	}
}

// installImplicationFor records cid as the (a) Skolem-function implication
// for head: every other literal of cid is currently false, so cid forces
// head true to stay satisfied. The graph records the same fact the other
// way around, keyed by head, since conflict analysis walks "what justifies
// this literal's current value" starting from a literal, not a clause.
func (s *Solver) installImplicationFor(head Lit, cid ClauseID, level DecLvl) {
	s.skolem.Add(head, level, cid)
	s.graph.Add(head, cid, level)
	size := s.skolem.Len(PositiveLit(head.Var())) + s.skolem.Len(NegativeLit(head.Var()))
	s.funcHeap.Push(head.Var(), size)
}

func clauseSatisfied(lits []Lit, s *Solver) bool {
	for _, l := range lits {
		if s.litTrue(l) {
			return true
		}
	}
	return false
}
