// Package region implements the multigraph and region data model of
// spec.md §3: tagged nodes/edges, region labels, and the Region/Crossroad/
// Link hierarchy used by every later pipeline stage. Adapted from the
// teacher's CSR pkg/graph (builder.go, component.go): that graph is a
// write-once array structure built for a whole road network; this one is
// small, mutable, and carries the region labels that the segmentation
// stages read and rewrite throughout a run.
package region

import (
	"sort"

	"github.com/paulmach/osm"

	"crossroad/pkg/geom"
)

// NodeID identifies a node, reusing the OSM node identifier type so the
// graph stays typed the way OSM data naturally is.
type NodeID = osm.NodeID

// UnlabeledRegion is the sentinel region id meaning "not yet assigned to
// any region" (spec.md §3: "−1 means unlabeled").
const UnlabeledRegion = -1

// Node is an immutable graph vertex: an id, a (lon, lat) coordinate, and a
// free-form OSM-style tag dictionary.
type Node struct {
	ID   NodeID
	X, Y float64
	Tags osm.Tags
}

// Point returns the node's coordinate as a geom.Point.
func (n *Node) Point() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// EdgeKey identifies one stored edge instance. K disambiguates parallel
// edges between the same pair of endpoints (spec.md §3: "accessed by
// (u,v,k)").
type EdgeKey struct {
	U, V NodeID
	K    int
}

// Edge is an undirected graph edge carrying OSM-derived way tags. The
// stored endpoint order (U, V) is whatever order it was added in; it is
// not normalized, per spec.md §3 ("Endpoint order is stable per stored
// instance").
type Edge struct {
	Key  EdgeKey
	Tags osm.Tags
}

// Other returns the endpoint of e that is not n. Panics if n is not an
// endpoint of e — callers always derive n from an adjacency lookup.
func (e *Edge) Other(n NodeID) NodeID {
	switch n {
	case e.Key.U:
		return e.Key.V
	case e.Key.V:
		return e.Key.U
	default:
		panic("region: node is not an endpoint of edge")
	}
}

func unorderedPair(a, b NodeID) [2]NodeID {
	if a <= b {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}

// Graph is the undirected multigraph over tagged nodes and edges, plus the
// two region-label dictionaries described in spec.md §3. Labels are
// mutated only through Region operations (AddNode/AddEdge/Clear) so that
// the invariant "every node/edge labeled R is present in region R's sets"
// always holds.
type Graph struct {
	nodes map[NodeID]*Node
	edges map[EdgeKey]*Edge

	// adjacency lists all edge keys incident to a node in insertion order;
	// readers that expose an order sort a copy by (other endpoint id, k)
	// (sortEdgeKeysAt) for deterministic traversal (spec.md §5: "use node
	// ids as the tie-breaker").
	adjacency map[NodeID][]EdgeKey
	nextK     map[[2]NodeID]int

	nodeRegion map[NodeID]int
	edgeRegion map[EdgeKey]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[NodeID]*Node),
		edges:      make(map[EdgeKey]*Edge),
		adjacency:  make(map[NodeID][]EdgeKey),
		nextK:      make(map[[2]NodeID]int),
		nodeRegion: make(map[NodeID]int),
		edgeRegion: make(map[EdgeKey]int),
	}
}

// AddNode inserts a node; if the id already exists, the existing node is
// returned unchanged. Newly added nodes start unlabeled.
func (g *Graph) AddNode(id NodeID, x, y float64, tg osm.Tags) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, X: x, Y: y, Tags: tg}
	g.nodes[id] = n
	g.nodeRegion[id] = UnlabeledRegion
	return n
}

// AddEdge inserts an undirected edge between u and v, assigning the next
// free disambiguation index k for that unordered pair. The new edge starts
// unlabeled.
func (g *Graph) AddEdge(u, v NodeID, tg osm.Tags) EdgeKey {
	pair := unorderedPair(u, v)
	k := g.nextK[pair]
	g.nextK[pair] = k + 1

	key := EdgeKey{U: u, V: v, K: k}
	g.edges[key] = &Edge{Key: key, Tags: tg}
	g.edgeRegion[key] = UnlabeledRegion

	g.adjacency[u] = append(g.adjacency[u], key)
	if v != u {
		g.adjacency[v] = append(g.adjacency[v], key)
	}
	return key
}

// sortEdgeKeysAt sorts a copy of edge keys incident to owner by (neighbor
// id, k), the deterministic order spec.md §5 requires whenever iteration
// order is observable (bearing sweeps, lane lists, ...).
func sortEdgeKeysAt(g *Graph, owner NodeID, keys []EdgeKey) []EdgeKey {
	out := make([]EdgeKey, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool {
		oi := g.edges[out[i]].Other(owner)
		oj := g.edges[out[j]].Other(owner)
		if oi != oj {
			return oi < oj
		}
		return out[i].K < out[j].K
	})
	return out
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Edge returns the edge with the given key, or nil if absent.
func (g *Graph) Edge(key EdgeKey) *Edge {
	return g.edges[key]
}

// HasNode reports whether id exists in the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns every node id in the graph, sorted for determinism.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgesAt returns the edge keys incident to n, sorted by neighbor id (and
// k as tie-breaker) for deterministic iteration.
func (g *Graph) EdgesAt(n NodeID) []EdgeKey {
	return sortEdgeKeysAt(g, n, g.adjacency[n])
}

// Degree returns the number of incident edges of n, counting parallel
// edges and self-loops twice (as networkx's MultiGraph.degree does, which
// the reliability rules in spec.md §4.2 are written against).
func (g *Graph) Degree(n NodeID) int {
	d := len(g.adjacency[n])
	for _, ek := range g.adjacency[n] {
		if ek.U == ek.V {
			d++
		}
	}
	return d
}

// Neighbors returns the node ids reachable by one edge from n, in
// deterministic order, including duplicates for parallel edges.
func (g *Graph) Neighbors(n NodeID) []NodeID {
	edges := g.EdgesAt(n)
	out := make([]NodeID, len(edges))
	for i, ek := range edges {
		e := g.edges[ek]
		out[i] = e.Other(n)
	}
	return out
}

// EdgeBetween returns the first (lowest k) edge key connecting u and v in
// either orientation, and whether one exists.
func (g *Graph) EdgeBetween(u, v NodeID) (EdgeKey, bool) {
	for _, ek := range g.adjacency[u] {
		if g.edges[ek].Other(u) == v {
			return ek, true
		}
	}
	return EdgeKey{}, false
}

// HasEdgeBetween reports whether any edge connects u and v.
func (g *Graph) HasEdgeBetween(u, v NodeID) bool {
	_, ok := g.EdgeBetween(u, v)
	return ok
}

// NodeRegion returns the region id labeling node n (UnlabeledRegion if
// none).
func (g *Graph) NodeRegion(n NodeID) int {
	if r, ok := g.nodeRegion[n]; ok {
		return r
	}
	return UnlabeledRegion
}

// EdgeRegion returns the region id labeling edge key ek.
func (g *Graph) EdgeRegion(ek EdgeKey) int {
	if r, ok := g.edgeRegion[ek]; ok {
		return r
	}
	return UnlabeledRegion
}

// setNodeRegion and setEdgeRegion are unexported: only Region operations
// (in region.go) may rewrite labels, preserving the single-writer
// invariant from spec.md §5.
func (g *Graph) setNodeRegion(n NodeID, id int)   { g.nodeRegion[n] = id }
func (g *Graph) setEdgeRegion(ek EdgeKey, id int) { g.edgeRegion[ek] = id }

// Distance returns the great-circle distance between two nodes.
func (g *Graph) Distance(u, v NodeID) float64 {
	return geom.Distance(g.nodes[u].Point(), g.nodes[v].Point())
}

// Bearing returns the initial bearing from u to v.
func (g *Graph) Bearing(u, v NodeID) float64 {
	return geom.Bearing(g.nodes[u].Point(), g.nodes[v].Point())
}

// PathLength sums the great-circle length of a node path.
func (g *Graph) PathLength(path []NodeID) float64 {
	pts := make([]geom.Point, len(path))
	for i, n := range path {
		pts[i] = g.nodes[n].Point()
	}
	return geom.PathLength(pts)
}

// IsMiddlePolyline reports whether n has exactly two incident edges
// (degree 2), the "middle of a polyline" shape walked by WalkToBifurcation.
func (g *Graph) IsMiddlePolyline(n NodeID) bool {
	return g.Degree(n) == 2
}

// OppositeNode returns the neighbor of n along its incident edges that is
// not `other`, assuming n has degree 2 (a middle-polyline node). Returns
// false if no such neighbor exists (n isn't degree-2, or is a dead end).
func (g *Graph) OppositeNode(n, other NodeID) (NodeID, bool) {
	for _, nb := range g.Neighbors(n) {
		if nb != other {
			return nb, true
		}
	}
	return 0, false
}

// WalkToBifurcation extends from edge (n1, n2) along degree-2 nodes until
// a node of degree != 2 is reached, or the optional maxLength is exceeded.
// maxLength < 0 means unbounded. This is spec.md §4.1's "Walk to
// bifurcation" primitive, grounded on lib/crseg/utils.py's
// get_path_to_biffurcation in the original implementation.
func (g *Graph) WalkToBifurcation(n1, n2 NodeID, maxLength float64) []NodeID {
	path := []NodeID{n1, n2}
	length := g.Distance(n1, n2)

	for (maxLength < 0 || length < maxLength) && g.IsMiddlePolyline(path[len(path)-1]) {
		next, ok := g.OppositeNode(path[len(path)-1], path[len(path)-2])
		if !ok {
			break
		}
		length += g.Distance(path[len(path)-1], next)
		path = append(path, next)
	}
	return path
}
