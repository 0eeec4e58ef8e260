// Package pedestrian detects the sidewalk and island pedestrian regions
// of spec.md §4.8: sidewalks follow the border walk between branches,
// islands come from a minimum cycle basis of a branch-closed temporary
// graph. Grounded on lib/crseg/crossroad.py's sidewalk/island extraction
// and crdesc/utils.py's getIslands/getSidewalks.
package pedestrian

import (
	"crossroad/pkg/geom"
	"crossroad/pkg/region"
	"crossroad/pkg/walk"
)

// Sidewalk is a pedestrian region running along the outer boundary
// between two branches, as walked in one direction.
type Sidewalk struct {
	ID    int
	Nodes []region.NodeID
	// Side is 0 (left) or 1 (right), the slot this sidewalk occupies on
	// the ways it runs alongside. It alternates with the sidewalk id (id
	// mod 2); it is not derived from the traversal direction.
	Side int
}

// Island is a pedestrian region bounding a traffic island: an inner face
// of the crossroad's branch-closed graph, oriented clockwise.
type Island struct {
	ID    int
	Nodes []region.NodeID
}

// Sidewalks scans a border walk and splits it at every branch-sidewalk
// node (the outermost external node of a branch) into maximal
// subsequences that don't stay within one branch, each becoming one
// Sidewalk (spec.md §4.8).
func Sidewalks(walkSteps []walk.Step, roles map[region.NodeID]walk.NodeRole, branchOf map[region.NodeID]int) []Sidewalk {
	var out []Sidewalk
	var current []region.NodeID
	id := 0

	flush := func() {
		if len(current) >= 2 {
			out = append(out, Sidewalk{ID: id, Nodes: append([]region.NodeID(nil), current...), Side: id % 2})
			id++
		}
	}

	var lastBranch int
	haveLast := false
	for _, s := range walkSteps {
		current = append(current, s.Node)
		if roles[s.Node] != walk.External {
			continue
		}
		b, ok := branchOf[s.Node]
		if !ok {
			continue
		}
		if haveLast && b != lastBranch {
			flush()
			current = []region.NodeID{s.Node}
		}
		lastBranch, haveLast = b, true
	}
	flush()
	return out
}

// Islands builds the closed temporary graph (the crossroad's edges plus
// the chords from branchChords) and returns its minimum cycle basis as
// oriented (clockwise) Islands.
func Islands(g *region.Graph, cr *region.Crossroad, roles map[region.NodeID]walk.NodeRole) []Island {
	var edges []rawEdge
	seen := map[region.EdgeKey]bool{}
	for _, ek := range cr.Edges {
		if seen[ek] {
			continue
		}
		seen[ek] = true
		e := g.Edge(ek)
		edges = append(edges, rawEdge{u: e.Key.U, v: e.Key.V, weight: g.Distance(e.Key.U, e.Key.V)})
	}
	edges = append(edges, branchChords(g, cr, roles)...)

	cycles := MinimumCycleBasis(edges)

	var out []Island
	for i, nodes := range cycles {
		pts := make([]geom.Point, len(nodes))
		for j, n := range nodes {
			pts[j] = g.Node(n).Point()
		}
		if !geom.IsClockwise(pts) {
			nodes = reverseNodes(nodes)
		}
		out = append(out, Island{ID: i, Nodes: nodes})
	}
	return out
}

// branchChords adds a chord between each pair of the crossroad's border
// nodes that are not already joined by an edge and lie no farther apart
// than the region's diameter, so the minimum cycle basis can see faces
// closed off between branches (spec.md §4.8). Chords are not chosen per
// branch, and non-border junctions get none.
func branchChords(g *region.Graph, cr *region.Crossroad, roles map[region.NodeID]walk.NodeRole) []rawEdge {
	var out []rawEdge
	var borders []region.NodeID
	for n, r := range roles {
		if r == walk.Border {
			borders = append(borders, n)
		}
	}
	for i := 0; i < len(borders); i++ {
		for j := i + 1; j < len(borders); j++ {
			a, b := borders[i], borders[j]
			if g.HasEdgeBetween(a, b) {
				continue
			}
			if cr.Diameter() > 0 && g.Distance(a, b) <= cr.Diameter() {
				out = append(out, rawEdge{u: a, v: b, weight: g.Distance(a, b)})
			}
		}
	}
	return out
}

func reverseNodes(nodes []region.NodeID) []region.NodeID {
	out := make([]region.NodeID, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}
