// Package reliability implements the per-node/edge scoring rules of
// spec.md §4.2: qualitative bands over two axes ("is this node/edge part
// of the crossroad" and "is this node on its boundary") derived from OSM
// tags and local degree. Grounded on lib/crseg/reliability.py, which scores
// the same two axes with the same seven-band vocabulary.
package reliability

import (
	"crossroad/pkg/geom"
	"crossroad/pkg/region"
)

// Band is a qualitative reliability score. The seven bands are ordered
// strongly_no < weakly_no < moderate_no < uncertain < moderate_yes <
// weakly_yes < strongly_yes, matching spec.md §3's invariant.
type Band int

const (
	StronglyNo Band = iota
	WeaklyNo
	ModerateNo
	Uncertain
	ModerateYes
	WeaklyYes
	StronglyYes
)

func (b Band) String() string {
	switch b {
	case StronglyNo:
		return "strongly_no"
	case WeaklyNo:
		return "weakly_no"
	case ModerateNo:
		return "moderate_no"
	case Uncertain:
		return "uncertain"
	case ModerateYes:
		return "moderate_yes"
	case WeaklyYes:
		return "weakly_yes"
	case StronglyYes:
		return "strongly_yes"
	default:
		return "unknown"
	}
}

// IsWeaklyYes reports whether b is at least weakly_yes.
func (b Band) IsWeaklyYes() bool { return b >= WeaklyYes }

// IsStronglyYes reports whether b is strongly_yes.
func (b Band) IsStronglyYes() bool { return b == StronglyYes }

// IsWeaklyNo reports whether b is at most weakly_no.
func (b Band) IsWeaklyNo() bool { return b <= WeaklyNo }

// IsStronglyNo reports whether b is strongly_no.
func (b Band) IsStronglyNo() bool { return b == StronglyNo }

// NodeScore holds a node's two reliability axes.
type NodeScore struct {
	Crossroad Band
	Boundary  Band
}

// IsWeaklyInCrossroad reports whether this node alone is enough to seed a
// crossroad (spec.md §4.4's "is_weakly_in_crossroad").
func (s NodeScore) IsWeaklyInCrossroad() bool { return s.Crossroad.IsWeaklyYes() }

// IsWeaklyBoundary reports whether this node counts as a weak boundary
// when the builder walks outward from a seed.
func (s NodeScore) IsWeaklyBoundary() bool { return s.Boundary.IsWeaklyYes() }

// EdgeScore holds an edge's single reliability axis plus its cached
// great-circle length (spec.md §4.2: "edges also carry their great-circle
// length").
type EdgeScore struct {
	Crossroad Band
	Length    float64
}

// IsWeaklyInCrossroadEdge reports whether this edge alone is enough to
// seed a crossroad (spec.md §4.4's "is_weakly_in_crossroad_edge").
func (s EdgeScore) IsWeaklyInCrossroadEdge() bool { return s.Crossroad.IsWeaklyYes() }

const triangleMaxPerimeter = 150.0

// ScoreEdge computes the crossroad-axis band and length for edge ek.
func ScoreEdge(g *region.Graph, ek region.EdgeKey) EdgeScore {
	e := g.Edge(ek)
	score := EdgeScore{
		Crossroad: Uncertain,
		Length:    g.Distance(ek.U, ek.V),
	}
	if e.Tags.Find("junction") != "" {
		score.Crossroad = StronglyYes
	}
	return score
}

// ScoreNode computes both reliability axes for node n, per the rule table
// in spec.md §4.2. The street names used by the d=3 "adjacent street
// names" rule are read from the "name" tags of n's incident edges.
func ScoreNode(g *region.Graph, n region.NodeID) NodeScore {
	node := g.Node(n)
	d := g.Degree(n)
	highway := node.Tags.Find("highway")

	score := NodeScore{Crossroad: Uncertain, Boundary: Uncertain}

	switch highway {
	case "bus_stop", "milestone", "steps", "elevator":
		score.Boundary = ModerateNo
	case "crossing":
		if d <= 3 {
			score.Boundary = StronglyYes
		}
	case "stop", "traffic_signals", "motorway_junction", "give_way":
		if d <= 3 {
			score.Boundary = ModerateYes
			score.Crossroad = ModerateYes
		}
	}

	switch {
	case highway != "" && d >= 3:
		score.Crossroad = StronglyYes
	case highway == "" && d == 2:
		score.Crossroad = StronglyNo
		score.Boundary = StronglyNo
	case highway == "" && d >= 4:
		score.Crossroad = StronglyYes
	case highway == "" && d == 3:
		score.Crossroad = scoreDegreeThreeUnnamed(g, n)
	case highway != "" && d == 2 && !isTrafficControlTag(highway):
		score.Crossroad = StronglyNo
	}

	return score
}

// isTrafficControlTag reports whether highway is one of the tags already
// handled by the first switch's d<=3 case (stop, traffic_signals,
// motorway_junction, give_way). The generic highway!=""&&d==2 fallback
// below must not overwrite the moderate_yes that rule already assigned.
func isTrafficControlTag(highway string) bool {
	switch highway {
	case "stop", "traffic_signals", "motorway_junction", "give_way":
		return true
	default:
		return false
	}
}

// scoreDegreeThreeUnnamed implements the d=3, no-highway-tag branch of
// spec.md §4.2, which itself branches three ways depending on adjacent
// street names, local-triangle membership, and one-way-pair separation.
func scoreDegreeThreeUnnamed(g *region.Graph, n region.NodeID) Band {
	if countDistinctStreetNames(g, n) >= 2 {
		return ModerateYes
	}
	if isLocalTriangle(g, n) || isOneWayPairSeparator(g, n) {
		return ModerateNo
	}
	return ModerateYes
}

func edgeName(g *region.Graph, ek region.EdgeKey) string {
	return g.Edge(ek).Tags.Find("name")
}

func countDistinctStreetNames(g *region.Graph, n region.NodeID) int {
	seen := map[string]bool{}
	for _, ek := range g.EdgesAt(n) {
		if name := edgeName(g, ek); name != "" {
			seen[name] = true
		}
	}
	return len(seen)
}

// isLocalTriangle reports whether n sits on a closed 3-bifurcation loop
// (a triangle of degree>2 nodes) of perimeter at most 150m: from n, two of
// its neighbors are themselves directly connected to each other.
func isLocalTriangle(g *region.Graph, n region.NodeID) bool {
	neighbors := g.Neighbors(n)
	for i := 0; i < len(neighbors); i++ {
		for j := i + 1; j < len(neighbors); j++ {
			a, b := neighbors[i], neighbors[j]
			if a == b {
				continue
			}
			if !g.HasEdgeBetween(a, b) {
				continue
			}
			perimeter := g.Distance(n, a) + g.Distance(a, b) + g.Distance(b, n)
			if perimeter <= triangleMaxPerimeter {
				return true
			}
		}
	}
	return false
}

// isOneWayPairSeparator reports whether n sits between two parallel
// one-way carriageways of the same named street (the common OSM pattern
// of splitting a dual carriageway into two oneway=yes ways): n has two
// incident edges sharing a name, both tagged oneway=yes, whose bearings
// from n point in opposite directions along the same corridor.
func isOneWayPairSeparator(g *region.Graph, n region.NodeID) bool {
	type oneway struct {
		ek      region.EdgeKey
		name    string
		bearing float64
	}
	var candidates []oneway
	for _, ek := range g.EdgesAt(n) {
		e := g.Edge(ek)
		if e.Tags.Find("oneway") != "yes" {
			continue
		}
		name := e.Tags.Find("name")
		if name == "" {
			continue
		}
		other := e.Other(n)
		candidates = append(candidates, oneway{ek: ek, name: name, bearing: g.Bearing(n, other)})
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i].name != candidates[j].name {
				continue
			}
			if geom.AngularDistance(candidates[i].bearing, candidates[j].bearing) >= 150 {
				return true
			}
		}
	}
	return false
}

// ScoreGraph scores every node and edge of g, returning them indexed by
// id/key for the builder (C4) to consult repeatedly without recomputation.
func ScoreGraph(g *region.Graph) (map[region.NodeID]NodeScore, map[region.EdgeKey]EdgeScore) {
	nodes := make(map[region.NodeID]NodeScore)
	for _, n := range g.NodeIDs() {
		nodes[n] = ScoreNode(g, n)
	}
	edges := make(map[region.EdgeKey]EdgeScore)
	for _, n := range g.NodeIDs() {
		for _, ek := range g.EdgesAt(n) {
			if _, ok := edges[ek]; ok {
				continue
			}
			edges[ek] = ScoreEdge(g, ek)
		}
	}
	return nodes, edges
}
