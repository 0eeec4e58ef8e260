// Package crossing builds pedestrian Crossings by shortest-pathing through
// the dual graph of crosswalk-connected sidewalks and islands, per
// spec.md §4.10. Grounded on lib/crseg/crossroad_connections.py's
// dual-graph construction and crdesc/description.py's crossing assembly.
package crossing

import (
	"container/heap"
	"sort"

	"crossroad/pkg/region"
)

// RegionID names a vertex of the dual graph: a sidewalk ("s<N>") or
// island ("i<N>") identifier, per spec.md §4.10.
type RegionID string

// Crosswalk is one edge of the dual graph: a physical crosswalk joining
// two pedestrian regions at a pair of nodes.
type Crosswalk struct {
	ID       int
	A, B     RegionID
	NodeA    region.NodeID
	NodeB    region.NodeID
	OnBorder bool // true if NodeA or NodeB is a crossroad border node
}

// Dedup removes duplicate crosswalks sharing the same ordered-or-reversed
// (NodeA, NodeB) pair, keeping whichever one has OnBorder set (spec.md
// §4.10: "keep the one whose id is in the crossroad border").
func Dedup(crosswalks []Crosswalk) []Crosswalk {
	type key struct{ a, b region.NodeID }
	keyOf := func(c Crosswalk) key {
		if c.NodeA <= c.NodeB {
			return key{c.NodeA, c.NodeB}
		}
		return key{c.NodeB, c.NodeA}
	}
	best := map[key]Crosswalk{}
	var order []key
	for _, c := range crosswalks {
		k := keyOf(c)
		existing, ok := best[k]
		if !ok {
			best[k] = c
			order = append(order, k)
			continue
		}
		if c.OnBorder && !existing.OnBorder {
			best[k] = c
		}
	}
	out := make([]Crosswalk, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

// dualGraph is the Pg of spec.md §4.10.
type dualGraph struct {
	adj map[RegionID][]edgeRef
}

type edgeRef struct {
	to RegionID
	cw Crosswalk
}

func buildDualGraph(crosswalks []Crosswalk) *dualGraph {
	g := &dualGraph{adj: make(map[RegionID][]edgeRef)}
	for _, c := range crosswalks {
		g.adj[c.A] = append(g.adj[c.A], edgeRef{to: c.B, cw: c})
		g.adj[c.B] = append(g.adj[c.B], edgeRef{to: c.A, cw: c})
	}
	return g
}

type pqItem struct {
	id   RegionID
	dist int
}
type pq []pqItem

func (p pq) Len() int            { return len(p) }
func (p pq) Less(i, j int) bool  { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *pq) Push(x interface{}) { *p = append(*p, x.(pqItem)) }
func (p *pq) Pop() interface{} {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// shortestPath returns the sequence of Crosswalks joining from and to in
// the dual graph, by fewest hops (spec.md §4.10 doesn't specify a
// distance metric beyond "shortest path"; hop count over crosswalks is
// the natural one since Pg vertices are regions, not coordinates).
func (g *dualGraph) shortestPath(from, to RegionID) ([]Crosswalk, bool) {
	dist := map[RegionID]int{from: 0}
	prev := map[RegionID]edgeRef{}
	visited := map[RegionID]bool{}

	h := &pq{{id: from, dist: 0}}
	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == to {
			break
		}
		for _, e := range g.adj[cur.id] {
			nd := cur.dist + 1
			if old, ok := dist[e.to]; !ok || nd < old {
				dist[e.to] = nd
				prev[e.to] = edgeRef{to: cur.id, cw: e.cw}
				heap.Push(h, pqItem{id: e.to, dist: nd})
			}
		}
	}
	if !visited[to] {
		return nil, false
	}

	var path []Crosswalk
	cur := to
	for cur != from {
		e, ok := prev[cur]
		if !ok {
			return nil, false
		}
		path = append(path, e.cw)
		cur = e.to
	}
	// reverse into from->to order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// Crossing is a retained pedestrian crossing: an ordered list of
// crosswalks forming a shortest dual-graph path between two sidewalks.
type Crossing struct {
	ID         int
	From, To   RegionID
	Crosswalks []Crosswalk
}

// sidewalksCrossed returns the set of distinct sidewalk (not island)
// vertices a path passes through, including its endpoints.
func sidewalksCrossed(path []Crosswalk) map[RegionID]bool {
	set := map[RegionID]bool{}
	mark := func(id RegionID) {
		if len(id) > 0 && id[0] == 's' {
			set[id] = true
		}
	}
	for _, c := range path {
		mark(c.A)
		mark(c.B)
	}
	return set
}

// Build computes every retained Crossing: for each ordered pair of
// distinct sidewalk ids, the dual-graph shortest path between them, kept
// iff it crosses at most two sidewalks (its own endpoints), deduplicated
// by unordered crosswalk-id list.
func Build(crosswalks []Crosswalk, sidewalkIDs []RegionID) []Crossing {
	g := buildDualGraph(crosswalks)

	sorted := append([]RegionID(nil), sidewalkIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	seen := map[string]bool{}
	var out []Crossing
	id := 0
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			path, ok := g.shortestPath(sorted[i], sorted[j])
			if !ok || len(path) == 0 {
				continue
			}
			if len(sidewalksCrossed(path)) > 2 {
				continue
			}
			key := dedupKey(path)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Crossing{ID: id, From: sorted[i], To: sorted[j], Crosswalks: path})
			id++
		}
	}
	return out
}

func dedupKey(path []Crosswalk) string {
	ids := make([]int, len(path))
	for i, c := range path {
		ids[i] = c.ID
	}
	sort.Ints(ids)
	key := make([]byte, 0, len(ids)*5)
	for _, id := range ids {
		key = append(key, byte(id), byte(id>>8), byte(id>>16), byte(id>>24), ',')
	}
	return string(key)
}

// AttachesToBranch reports whether crossing c's set of referenced
// sidewalks equals (unordered) the set of sidewalks of a branch's ways.
func AttachesToBranch(c Crossing, branchSidewalks map[RegionID]bool) bool {
	crossed := sidewalksCrossed(c.Crosswalks)
	if len(crossed) != len(branchSidewalks) {
		return false
	}
	for id := range crossed {
		if !branchSidewalks[id] {
			return false
		}
	}
	return true
}
