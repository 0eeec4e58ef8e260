// Package walk computes the border walk, branch ordering, and way
// selection of spec.md §4.7, the foundation that sidewalk/island detection
// (C8) and crossing attachment (C10) build on. Grounded on
// lib/crseg/crossroad.py's border walk and branch-numbering methods.
package walk

import (
	"sort"

	"crossroad/pkg/region"
)

// UnnamedWayPlaceholder is spec.md §4.7's fallback street name.
const UnnamedWayPlaceholder = "rue qui n'a pas de nom"

// NodeRole classifies a crossroad's nodes for the border walk.
type NodeRole int

const (
	Inner NodeRole = iota
	Border
	External
)

// Classify returns the role of every node touched by cr: inner nodes have
// every incident edge inside the region; border nodes have at least one
// incident edge inside and one outside; external nodes are the first
// non-region neighbor reached from a border node along an outgoing edge.
func Classify(g *region.Graph, cr *region.Crossroad) map[region.NodeID]NodeRole {
	roles := make(map[region.NodeID]NodeRole)
	for _, n := range cr.Nodes {
		if cr.IsBoundaryNode(n) {
			roles[n] = Border
		} else {
			roles[n] = Inner
		}
	}
	for n, role := range roles {
		if role != Border {
			continue
		}
		for _, nb := range g.Neighbors(n) {
			if !cr.HasNode(nb) {
				if _, ok := roles[nb]; !ok {
					roles[nb] = External
				}
			}
		}
	}
	return roles
}

// Step is one hop of the border walk: the node reached and the edge
// bearing used to reach it (from the previous node).
type Step struct {
	Node    region.NodeID
	Bearing float64
}

// BorderWalk computes the closed, doubled-outside walk of spec.md §4.7,
// starting at `start` (an external node). At every step it continues to
// the neighbor immediately clockwise of the incoming bearing; reaching
// another external node reverses the walk's effective direction (modeled
// here by continuing the same clockwise rule, since the incoming bearing
// already encodes direction). The walk stops once it returns to `start`
// or a safety bound on step count is hit (guards against malformed input
// graphs rather than a real termination case).
func BorderWalk(g *region.Graph, cr *region.Crossroad, roles map[region.NodeID]NodeRole, start region.NodeID) []Step {
	neighbors := externalOrBorderNeighbors(g, cr, roles, start)
	if len(neighbors) == 0 {
		return nil
	}
	first := neighbors[0]

	walk := []Step{{Node: start, Bearing: 0}, {Node: first, Bearing: g.Bearing(start, first)}}
	maxSteps := 4 * (len(cr.Nodes) + 10)

	for len(walk) < maxSteps {
		prev := walk[len(walk)-2].Node
		cur := walk[len(walk)-1].Node
		incoming := g.Bearing(prev, cur)

		next, bearing, ok := clockwiseNext(g, cr, roles, cur, prev, incoming)
		if !ok {
			break
		}
		walk = append(walk, Step{Node: next, Bearing: bearing})
		if next == start {
			break
		}
	}
	return walk
}

// externalOrBorderNeighbors lists cur's neighbors that are border or
// external nodes reachable directly (used to pick the walk's first hop).
func externalOrBorderNeighbors(g *region.Graph, cr *region.Crossroad, roles map[region.NodeID]NodeRole, cur region.NodeID) []region.NodeID {
	var out []region.NodeID
	for _, nb := range g.Neighbors(cur) {
		if roles[nb] == Border || roles[nb] == External {
			out = append(out, nb)
		}
	}
	return out
}

// clockwiseNext picks, among cur's neighbors other than prev, the one
// whose bearing from cur is the smallest clockwise turn away from the
// incoming bearing (the "hug the outside, turn to the first available
// neighbor clockwise" rule).
func clockwiseNext(g *region.Graph, cr *region.Crossroad, roles map[region.NodeID]NodeRole, cur, prev region.NodeID, incoming float64) (region.NodeID, float64, bool) {
	reverseIncoming := mod360(incoming + 180)

	type cand struct {
		node          region.NodeID
		bearing, turn float64
	}
	var candidates []cand
	for _, nb := range g.Neighbors(cur) {
		if nb == prev {
			continue
		}
		if _, ok := roles[nb]; !ok {
			continue
		}
		b := g.Bearing(cur, nb)
		turn := mod360(b - reverseIncoming)
		candidates = append(candidates, cand{node: nb, bearing: b, turn: turn})
	}
	if len(candidates) == 0 {
		// dead end within the border set: bounce back.
		return prev, mod360(incoming + 180), true
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].turn < candidates[j].turn })
	best := candidates[0]
	return best.node, best.bearing, true
}

func mod360(deg float64) float64 {
	d := deg
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}

// BranchOrder annotates border-walk steps landing on external nodes with
// a sequential order 0,1,2,... in first-visit order (spec.md §4.7). No
// negative orders are assigned: if the walk started mid-branch, that
// branch's nodes keep the orders of their visits, at both ends of the
// sequence.
func BranchOrder(walk []Step, roles map[region.NodeID]NodeRole) map[region.NodeID]int {
	order := make(map[region.NodeID]int)
	seq := 0
	for _, s := range walk {
		if roles[s.Node] != External {
			continue
		}
		if _, ok := order[s.Node]; ok {
			continue
		}
		order[s.Node] = seq
		seq++
	}
	return order
}

// NumberBranches sorts branches (each a slice of LaneDescription sharing
// a similar bearing) by clockwise angle from the center and returns them
// numbered 1..N.
func NumberBranches(branches [][]region.LaneDescription) [][]region.LaneDescription {
	sorted := append([][]region.LaneDescription(nil), branches...)
	sort.Slice(sorted, func(i, j int) bool {
		return branchBearing(sorted[i]) < branchBearing(sorted[j])
	})
	return sorted
}

func branchBearing(branch []region.LaneDescription) float64 {
	if len(branch) == 0 {
		return 0
	}
	return branch[0].Bearing
}

// WaySelection orders the ways of a branch by the bearing of their border
// node from the center, correcting for wraparound (bearings ≥ 270 are
// shifted by −360 before sorting, per spec.md §4.7), and returns the
// street name of the middle way.
type Way struct {
	Bearing float64
	Name    string
}

func WaySelection(ways []Way) (ordered []Way, streetName string) {
	adjusted := make([]Way, len(ways))
	copy(adjusted, ways)
	for i := range adjusted {
		if adjusted[i].Bearing >= 270 {
			adjusted[i].Bearing -= 360
		}
	}
	sort.Slice(adjusted, func(i, j int) bool { return adjusted[i].Bearing < adjusted[j].Bearing })

	if len(adjusted) == 0 {
		return adjusted, UnnamedWayPlaceholder
	}
	mid := adjusted[len(adjusted)/2]
	name := mid.Name
	if name == "" {
		name = UnnamedWayPlaceholder
	}
	return adjusted, name
}
