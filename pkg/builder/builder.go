// Package builder grows a Crossroad region outward from a seed node,
// following spec.md §4.4. Grounded on lib/crseg/crossroad.py's
// build_crossroad/search_best_path_from_boundary family and
// lib/crseg/utils.py's path helpers, adapted to the region.Graph model.
package builder

import (
	"crossroad/pkg/region"
	"crossroad/pkg/reliability"
)

// Config holds the tunables spec.md §6 lists for crossroad growth.
type Config struct {
	// BoundaryScale multiplies the class-dependent distance thresholds
	// when the center has more than four neighbors (r=2 case of §4.4).
	BoundaryScale float64
}

// DefaultConfig returns the tunables at their spec.md §6 defaults.
func DefaultConfig() Config {
	return Config{BoundaryScale: 2}
}

// Seeds returns every node that can start a crossroad: one for which
// is_weakly_in_crossroad holds on the node itself, or on some incident
// edge (spec.md §4.4).
func Seeds(g *region.Graph, nodes map[region.NodeID]reliability.NodeScore, edges map[region.EdgeKey]reliability.EdgeScore) []region.NodeID {
	var out []region.NodeID
	for _, n := range g.NodeIDs() {
		if g.NodeRegion(n) != region.UnlabeledRegion {
			continue
		}
		if nodes[n].IsWeaklyInCrossroad() {
			out = append(out, n)
			continue
		}
		for _, ek := range g.EdgesAt(n) {
			if edges[ek].IsWeaklyInCrossroadEdge() {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Build grows a new crossroad from seed and returns it, or nil if the
// result is a "straight crossing" to be discarded (spec.md §4.4 final
// rule). table owns the new region's id.
func Build(g *region.Graph, seed region.NodeID, nodes map[region.NodeID]reliability.NodeScore, edges map[region.EdgeKey]reliability.EdgeScore, cfg Config, table *region.Table) *region.Crossroad {
	cr := region.NewCrossroad(g, seed, table)

	for _, nb := range g.Neighbors(seed) {
		if g.NodeRegion(nb) != region.UnlabeledRegion {
			continue
		}
		path := bestPathFrom(g, seed, nb, nodes, edges, cfg)
		if path != nil {
			cr.AddPath(path)
		}
	}

	if cr.IsStraightCrossing() {
		cr.Clear()
		return nil
	}
	return cr
}

// bestPathFrom generates the weak-stop and strong-stop candidate paths
// starting at (center, next) and returns the last (longest) one that is
// still a correct inner path, or nil if neither qualifies.
func bestPathFrom(g *region.Graph, center, next region.NodeID, nodes map[region.NodeID]reliability.NodeScore, edges map[region.EdgeKey]reliability.EdgeScore, cfg Config) []region.NodeID {
	weak := walkOutward(g, center, next, nodes, false)
	strong := walkOutward(g, center, next, nodes, true)

	if isCorrectInnerPath(g, strong, center, nodes, edges, cfg) {
		return strong
	}
	if isCorrectInnerPath(g, weak, center, nodes, edges, cfg) {
		return weak
	}
	return nil
}

// walkOutward extends from (center, next) through unlabeled, degree-2,
// non-weak-boundary/non-weak-crossroad "middle" nodes. stopAtStrong
// selects whether to continue past weak boundaries to the first strong
// one (true) or halt at the first weak boundary (false).
func walkOutward(g *region.Graph, center, next region.NodeID, nodes map[region.NodeID]reliability.NodeScore, stopAtStrong bool) []region.NodeID {
	path := []region.NodeID{center, next}
	for {
		cur := path[len(path)-1]
		prev := path[len(path)-2]

		if g.NodeRegion(cur) != region.UnlabeledRegion {
			return path
		}
		score := nodes[cur]
		if stopAtStrong {
			if score.Crossroad.IsStronglyYes() || score.Boundary.IsStronglyYes() {
				return path
			}
		} else {
			if score.IsWeaklyBoundary() || score.Crossroad.IsWeaklyYes() {
				return path
			}
		}
		if g.Degree(cur) != 2 {
			return path
		}
		nb, ok := g.OppositeNode(cur, prev)
		if !ok {
			return path
		}
		path = append(path, nb)
	}
}

// isCorrectInnerPath implements the three-clause test of spec.md §4.4.
func isCorrectInnerPath(g *region.Graph, path []region.NodeID, center region.NodeID, nodes map[region.NodeID]reliability.NodeScore, edges map[region.EdgeKey]reliability.EdgeScore, cfg Config) bool {
	if len(path) < 2 || path[0] == path[len(path)-1] {
		return false
	}

	if everyInnerEdgeCarriesJunction(g, path) {
		return true
	}

	first, last := path[0], path[len(path)-1]
	if !nodes[first].IsWeaklyInCrossroad() {
		return false
	}
	if !nodes[last].IsWeaklyBoundary() {
		return false
	}

	c := maxHighwayClassExcept(g, center, path[1])
	r := 1.0
	if len(g.Neighbors(center)) > 4 {
		r = cfg.BoundaryScale
	}

	dist := g.PathLength(path)
	minThresh := region.MinBoundaryDistance(c) * r
	if dist < minThresh {
		return true
	}

	if nearestBifurcationCoincidesWithFirst(g, path, first) {
		maxThresh := region.MaxBoundaryDistance(c) * r
		return dist < maxThresh
	}
	return false
}

func everyInnerEdgeCarriesJunction(g *region.Graph, path []region.NodeID) bool {
	for i := 0; i+1 < len(path); i++ {
		ek, ok := g.EdgeBetween(path[i], path[i+1])
		if !ok {
			return false
		}
		if g.Edge(ek).Tags.Find("junction") == "" {
			return false
		}
	}
	return true
}

// maxHighwayClassExcept returns the fastest highway class among center's
// incident edges, excluding the branch toward `except`.
func maxHighwayClassExcept(g *region.Graph, center, except region.NodeID) region.HighwayClass {
	best := region.ClassDefault
	first := true
	for _, ek := range g.EdgesAt(center) {
		e := g.Edge(ek)
		if e.Other(center) == except {
			continue
		}
		c := region.BaseClass(e.Tags.Find("highway"))
		if first {
			best = c
			first = false
			continue
		}
		best = region.FastestClass(best, c)
	}
	return best
}

// nearestBifurcationCoincidesWithFirst reports whether continuing the
// walk past `last` (the candidate's far end) along the graph's next
// degree-2 polyline reaches `first` before any other bifurcation.
func nearestBifurcationCoincidesWithFirst(g *region.Graph, path []region.NodeID, first region.NodeID) bool {
	if len(path) < 2 {
		return false
	}
	last := path[len(path)-1]
	prevOfLast := path[len(path)-2]
	extended := g.WalkToBifurcation(prevOfLast, last, -1)
	if len(extended) == 0 {
		return false
	}
	return extended[len(extended)-1] == first
}
