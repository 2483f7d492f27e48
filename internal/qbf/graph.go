package qbf

// graphEdge records one reason a literal's Skolem direction was forced: the
// clause that forced it, and the decision level active at the time.
type graphEdge struct {
	clause ClauseID
	level  DecLvl
}

// implicationGraph is, for each literal, the list of clauses that at some
// point forced it (mirrors the Skolem map, but keyed the other way: the
// graph is walked during conflict analysis to find a clause that justifies
// a literal's current value, the Skolem map is walked during propagation to
// find a clause that could newly force a literal). Grounded on
// original_source's graph.rs ImplGraph.
type implicationGraph struct {
	byLit [][]graphEdge
}

func newImplicationGraph() *implicationGraph {
	return &implicationGraph{}
}

func (g *implicationGraph) Reserve(l Lit) {
	for len(g.byLit) <= int(l) {
		g.byLit = append(g.byLit, nil)
	}
}

// Add records that cid, at level, is a reason implying l.
func (g *implicationGraph) Add(l Lit, cid ClauseID, level DecLvl) {
	g.Reserve(l)
	g.byLit[l] = append(g.byLit[l], graphEdge{clause: cid, level: level})
}

// Edges returns the reasons recorded for l, most recently added last.
func (g *implicationGraph) Edges(l Lit) []graphEdge {
	if int(l) >= len(g.byLit) {
		return nil
	}
	return g.byLit[l]
}

// BacktrackTo drops every edge recorded at a level above lvl.
func (g *implicationGraph) BacktrackTo(lvl DecLvl) {
	for l := range g.byLit {
		edges := g.byLit[l]
		i := len(edges)
		for i > 0 && edges[i-1].level > lvl {
			i--
		}
		g.byLit[l] = edges[:i]
	}
}
