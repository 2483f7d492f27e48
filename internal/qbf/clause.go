package qbf

import "strings"

// ClauseID addresses a clause stored in an Arena.
type ClauseID int

// Clause is an ordered, duplicate-free, non-tautological sequence of
// literals, reduced of universal literals that no existential literal of a
// later scope depends on. Clause contents never change after insertion;
// only the arena's bookkeeping (watch lists, Skolem map, implication graph)
// that points at a clause changes as the search proceeds.
type Clause struct {
	literals []Lit
	learnt   bool
	activity float64
}

// Literals returns the clause's literals. Callers must not modify the
// returned slice.
func (c *Clause) Literals() []Lit { return c.literals }

// Learnt reports whether the clause was derived by conflict analysis rather
// than present in the original instance.
func (c *Clause) Learnt() bool { return c.learnt }

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Arena is the append-only store of clauses, addressed by ClauseID.
type Arena struct {
	clauses []*Clause
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Get returns the clause stored at id.
func (a *Arena) Get(id ClauseID) *Clause {
	return a.clauses[id]
}

// addResult classifies the outcome of reducing and inserting a clause.
type addResult int

const (
	addOK addResult = iota
	addTautology
	addEmpty
	addUnit
)

// reduceAndDedup removes duplicates from lits and detects tautologies (a
// variable occurring with both polarities). It reports addTautology if the
// clause is trivially true, and otherwise returns the deduplicated prefix of
// lits. It does not sort: duplicates are swapped out of the live prefix, so
// the result keeps the input order only up to those swaps.
//
// Grounded on sat/clauses.go's NewClause: build a seen-set walking from
// the end, swapping duplicates (and the opposite-polarity tautology case)
// out of the live prefix.
func reduceAndDedup(lits []Lit) ([]Lit, addResult) {
	seen := make(map[Lit]struct{}, len(lits))
	size := len(lits)
	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[lits[i].Negated()]; ok {
			return nil, addTautology
		}
		if _, ok := seen[lits[i]]; ok {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[lits[i]] = struct{}{}
	}
	return lits[:size], addOK
}

// reduceUniversal drops trailing universal literals that no existential
// literal of the clause depends on: a universal literal u is redundant if
// every existential literal in the clause is bound in a scope that precedes
// u's scope (i.e. none of them quantify "after" u, so u cannot affect which
// existential values satisfy the clause). This is the standard universal
// reduction rule, grounded on original_source's _add_clause.
func reduceUniversal(lits []Lit, prefix *Prefix) []Lit {
	maxExistentialScope := ScopeID(-1)
	for _, l := range lits {
		if prefix.IsExistential(l.Var()) {
			if sid, ok := prefix.ScopeOf(l.Var()); ok && sid > maxExistentialScope {
				maxExistentialScope = sid
			} else if !ok && maxExistentialScope < 0 {
				maxExistentialScope = 0
			}
		}
	}

	kept := lits[:0]
	for _, l := range lits {
		if prefix.IsUniversal(l.Var()) {
			sid, _ := prefix.ScopeOf(l.Var())
			if sid > maxExistentialScope {
				continue // redundant: reduce away
			}
		}
		kept = append(kept, l)
	}
	return kept
}

// Add inserts lits as a new clause after deduplication and universal
// reduction. learnt marks clauses produced by conflict analysis.
func (a *Arena) Add(lits []Lit, prefix *Prefix, learnt bool) (ClauseID, []Lit, addResult) {
	deduped, res := reduceAndDedup(lits)
	if res == addTautology {
		return -1, nil, addTautology
	}

	reduced := reduceUniversal(deduped, prefix)

	switch len(reduced) {
	case 0:
		return -1, nil, addEmpty
	case 1:
		return -1, reduced, addUnit
	}

	c := &Clause{literals: append([]Lit(nil), reduced...), learnt: learnt}
	a.clauses = append(a.clauses, c)
	return ClauseID(len(a.clauses) - 1), c.literals, addOK
}
