package region

// Link is a Region connecting two crossroads (or, for an isolated boundary
// node, standing alone): it propagates outward from a seed edge or node
// along unlabeled edges until it dead-ends or reaches an already-labeled
// node, at which point Filled records that it was stopped by a collision
// rather than by running out of graph (spec.md §3, §4.6). Grounded on
// lib/crseg/link.py's Link class.
type Link struct {
	*Region

	// Filled is true if construction stopped at an already-labeled node
	// rather than a true dead end.
	Filled bool
}

// NewLink creates an empty link region.
func NewLink(g *Graph, table *Table) *Link {
	return &Link{Region: NewRegion(g, LinkRegionKind, table)}
}

// NewSingleNodeLink creates a link containing only n, for isolated boundary
// nodes with no outgoing unlabeled edges (spec.md §4.6).
func NewSingleNodeLink(g *Graph, n NodeID, table *Table) *Link {
	l := NewLink(g, table)
	l.AddNode(n)
	l.Filled = true
	return l
}

// GrowFromEdge seeds the link on the edge (u, v) and propagates through
// unlabeled edges from both ends until each side dead-ends or meets a node
// already labeled by some other region. Filled is set if any side stopped
// on a collision.
func (l *Link) GrowFromEdge(u, v NodeID) {
	l.AddNode(u)
	l.AddNode(v)
	l.AddEdgeBetween(u, v)
	l.growFrom(u, v)
	l.growFrom(v, u)
}

func (l *Link) growFrom(from, into NodeID) {
	prev, cur := from, into
	for {
		next, extended := l.extend(prev, cur)
		if !extended {
			return
		}
		prev, cur = cur, next
	}
}

// extend looks at cur's incident edges not yet in the link (other than
// the one back to prev), in neighbor order, and follows the first one
// whose far node is unlabeled; at a branching, the other unlabeled
// continuations are not followed. Meeting a labeled neighbor sets Filled
// without stopping the scan; growth stops when no unlabeled continuation
// remains.
func (l *Link) extend(prev, cur NodeID) (NodeID, bool) {
	for _, nb := range l.Graph.Neighbors(cur) {
		if nb == prev {
			continue
		}
		ek, ok := l.Graph.EdgeBetween(cur, nb)
		if !ok || l.HasEdge(ek) {
			continue
		}
		if l.Graph.NodeRegion(nb) != UnlabeledRegion {
			l.Filled = true
			continue
		}
		l.AddNode(nb)
		l.AddEdge(ek)
		return nb, true
	}
	return 0, false
}
