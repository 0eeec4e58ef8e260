package region

import "crossroad/pkg/geom"

// Kind classifies a Region, per spec.md §3.
type Kind int

const (
	// Plain is a region with no further semantics (used internally by
	// Link's single-node seed case, and available to callers that only
	// need generic node/edge bookkeeping).
	Plain Kind = iota
	// CrossroadRegionKind is backing storage for a *Crossroad.
	CrossroadRegionKind
	// LinkRegionKind is backing storage for a *Link.
	LinkRegionKind
)

var nextRegionID = 0

// NextID returns the next globally unique region id, mirroring the
// original lib/crseg/region.py class-level counter but without package
// level mutable registries elsewhere (spec.md §9's JunctionTable note
// applies the same discipline to regions: callers own a *Table and reset
// it between runs).
func NextID(table *Table) int {
	if table != nil {
		id := table.nextID
		table.nextID++
		return id
	}
	id := nextRegionID
	nextRegionID++
	return id
}

// Table owns region id allocation and the full id -> Region index for one
// segmentation run, replacing the teacher-adjacent Python's class-level
// counter with an explicit, resettable owner (spec.md §9).
type Table struct {
	nextID  int
	regions map[int]*Region
}

// NewTable creates an empty, fresh region table.
func NewTable() *Table {
	return &Table{regions: make(map[int]*Region)}
}

// Register records a region under its id.
func (t *Table) Register(r *Region) {
	t.regions[r.ID] = r
}

// Unregister removes a region's id from the table (used after it's been
// merged away).
func (t *Table) Unregister(id int) {
	delete(t.regions, id)
}

// Get returns the region with the given id, or nil.
func (t *Table) Get(id int) *Region {
	return t.regions[id]
}

// All returns every region currently registered, in id order.
func (t *Table) All() []*Region {
	ids := make([]int, 0, len(t.regions))
	for id := range t.regions {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	out := make([]*Region, len(ids))
	for i, id := range ids {
		out[i] = t.regions[id]
	}
	return out
}

// Region is a labeled subgraph: an ordered set of nodes and edges that all
// carry this region's id as their graph label (spec.md §3's core
// invariant).
type Region struct {
	ID    int
	Kind  Kind
	Graph *Graph

	Nodes []NodeID
	Edges []EdgeKey

	nodeSet map[NodeID]bool
	edgeSet map[EdgeKey]bool
}

// NewRegion creates an empty region of the given kind, registering it in
// table.
func NewRegion(g *Graph, kind Kind, table *Table) *Region {
	r := &Region{
		ID:      NextID(table),
		Kind:    kind,
		Graph:   g,
		nodeSet: make(map[NodeID]bool),
		edgeSet: make(map[EdgeKey]bool),
	}
	if table != nil {
		table.Register(r)
	}
	return r
}

// AddNode adds n to the region (idempotent) and labels it in the graph.
func (r *Region) AddNode(n NodeID) {
	if !r.nodeSet[n] {
		r.nodeSet[n] = true
		r.Nodes = append(r.Nodes, n)
	}
	r.Graph.setNodeRegion(n, r.ID)
}

// AddEdge adds the edge identified by ek to the region (idempotent,
// matching on the exact key) and labels it.
func (r *Region) AddEdge(ek EdgeKey) {
	if !r.HasEdge(ek) {
		r.edgeSet[ek] = true
		r.Edges = append(r.Edges, ek)
	}
	r.Graph.setEdgeRegion(ek, r.ID)
}

// AddEdgeBetween adds whichever stored edge connects u and v, if any, and
// reports whether one was found.
func (r *Region) AddEdgeBetween(u, v NodeID) bool {
	ek, ok := r.Graph.EdgeBetween(u, v)
	if !ok {
		return false
	}
	r.AddEdge(ek)
	return true
}

// AddPath adds every node of path, and an edge between each consecutive
// pair (looked up by endpoints, since callers work with node paths rather
// than edge keys directly).
func (r *Region) AddPath(path []NodeID) {
	for _, n := range path {
		r.AddNode(n)
	}
	for i := 0; i+1 < len(path); i++ {
		r.AddEdgeBetween(path[i], path[i+1])
	}
}

// AddPaths adds every path in paths.
func (r *Region) AddPaths(paths [][]NodeID) {
	for _, p := range paths {
		r.AddPath(p)
	}
}

// HasNode reports whether n is in the region.
func (r *Region) HasNode(n NodeID) bool {
	return r.nodeSet[n]
}

// HasEdge reports whether the edge identified by ek is in the region. The
// key must match the stored key exactly; a key with U and V swapped does
// not match (HasEdgeBetween matches either orientation).
func (r *Region) HasEdge(ek EdgeKey) bool {
	return r.edgeSet[ek]
}

// HasEdgeBetween reports whether any edge between u and v is in the
// region.
func (r *Region) HasEdgeBetween(u, v NodeID) bool {
	for _, ek := range r.Edges {
		e := r.Graph.Edge(ek)
		if (e.Key.U == u && e.Key.V == v) || (e.Key.U == v && e.Key.V == u) {
			return true
		}
	}
	return false
}

// Contains reports whether every node of other is also in r.
func (r *Region) Contains(other *Region) bool {
	for _, n := range other.Nodes {
		if !r.HasNode(n) {
			return false
		}
	}
	return true
}

// Clear unlabels every node and edge of the region that still carries this
// region's id in the graph (spec.md §3: "Removing a region clears those
// labels"); elements already relabeled by another region, such as a merge
// survivor that absorbed them, keep that region's label. The region's own
// node/edge lists are left intact so callers can still inspect what it
// used to contain (e.g. merge bookkeeping that clones before clearing).
func (r *Region) Clear() {
	for _, ek := range r.Edges {
		if r.Graph.EdgeRegion(ek) == r.ID {
			r.Graph.setEdgeRegion(ek, UnlabeledRegion)
		}
	}
	for _, n := range r.Nodes {
		if r.Graph.NodeRegion(n) == r.ID {
			r.Graph.setNodeRegion(n, UnlabeledRegion)
		}
	}
}

// IsBoundaryNode reports whether n has at least one incident edge whose
// region differs from the node's own membership — equivalently, whether
// its graph degree exceeds the number of region edges touching it.
func (r *Region) IsBoundaryNode(n NodeID) bool {
	degree := r.Graph.Degree(n)
	inside := 0
	for _, ek := range r.Edges {
		e := r.Graph.Edge(ek)
		if e.Key.U == n || e.Key.V == n {
			inside++
			if e.Key.U == e.Key.V {
				inside++
			}
		}
	}
	return degree != inside
}

// BoundaryNodes returns every boundary node of the region.
func (r *Region) BoundaryNodes() []NodeID {
	var out []NodeID
	for _, n := range r.Nodes {
		if r.IsBoundaryNode(n) {
			out = append(out, n)
		}
	}
	return out
}

// Centroid returns the arithmetic mean coordinate of the region's nodes.
func (r *Region) Centroid() geom.Point {
	pts := make([]geom.Point, len(r.Nodes))
	for i, n := range r.Nodes {
		pts[i] = r.Graph.Node(n).Point()
	}
	return geom.Centroid(pts)
}

// Diameter returns the maximum pairwise great-circle distance between the
// region's nodes. O(n²), acceptable for intersection-sized regions per
// spec.md §4.3.
func (r *Region) Diameter() float64 {
	best := 0.0
	for _, a := range r.Nodes {
		for _, b := range r.Nodes {
			if d := r.Graph.Distance(a, b); d > best {
				best = d
			}
		}
	}
	return best
}
