// Package cluster merges crossroads that represent the same real-world
// intersection split across several OSM nodes (dog-bones, small
// roundabouts, offset T-junctions), per spec.md §4.5. Grounded on
// lib/crseg/crossroad.py's in_same_cluster/merge family.
package cluster

import (
	"crossroad/pkg/geom"
	"crossroad/pkg/region"
	"crossroad/pkg/reliability"
)

// DefaultScale is the neighborhood multiplier of spec.md §6 ("cluster_scale").
const DefaultScale = 3.0

// ShouldCluster reports whether crossroads a and b should be merged:
// a direct bifurcation-free path exists between their centers (walked via
// neighbors of a's center only — spec.md §4.5's "via neighbors of A's
// center"), no strongly_yes boundary node lies on that path, and some lane
// of a is similar to one of b with at least one orthogonal to the a-b
// bearing.
func ShouldCluster(g *region.Graph, a, b *region.Crossroad, nodes map[region.NodeID]reliability.NodeScore, scale float64) bool {
	if scale <= 0 {
		scale = DefaultScale
	}
	if geom.Distance(a.Centroid(), b.Centroid()) > scale*a.Radius {
		return false
	}

	path := bifurcationFreePath(g, a.Center, b.Center)
	if path == nil {
		return false
	}
	for _, n := range path[1 : len(path)-1] {
		if nodes[n].Boundary.IsStronglyYes() {
			return false
		}
	}

	bearing := g.Bearing(a.Center, b.Center)
	for _, la := range a.Lanes {
		for _, lb := range b.Lanes {
			if !la.IsSimilar(lb) {
				continue
			}
			aOrtho := geom.IsOrthogonal(bearing, la.Bearing, 45)
			bOrtho := geom.IsOrthogonal(bearing, lb.Bearing, 45)
			if aOrtho || bOrtho {
				return true
			}
		}
	}
	return false
}

// bifurcationFreePath walks from `from` through degree-2 nodes toward
// `to`, returning the path if it reaches `to` without passing any other
// bifurcation, or nil otherwise. A direct edge always qualifies.
func bifurcationFreePath(g *region.Graph, from, to region.NodeID) []region.NodeID {
	if g.HasEdgeBetween(from, to) {
		return []region.NodeID{from, to}
	}
	for _, nb := range g.Neighbors(from) {
		path := g.WalkToBifurcation(from, nb, -1)
		if path[len(path)-1] == to {
			return path
		}
	}
	return nil
}

// Merge absorbs b into a: concatenates their nodes/edges under a's id,
// adds a direct path between the two former centers if none existed,
// recomputes a's center as the region node nearest the centroid of the
// two former centers, and clears b from the table. Callers must re-run
// lane computation (builder.ComputeLanes) on the result afterward, since
// the branch set has changed.
func Merge(g *region.Graph, a, b *region.Crossroad, table *region.Table) {
	oldCenters := []region.NodeID{a.Center, b.Center}

	for _, n := range b.Nodes {
		a.AddNode(n)
	}
	for _, ek := range b.Edges {
		a.AddEdge(ek)
	}

	if !g.HasEdgeBetween(a.Center, b.Center) {
		if path := bifurcationFreePath(g, a.Center, b.Center); path != nil {
			a.AddPath(path)
		}
	}

	a.Center = nearestNodeToCentroid(g, a, oldCenters)

	table.Unregister(b.ID)
	b.Clear()
}

func nearestNodeToCentroid(g *region.Graph, r *region.Crossroad, former []region.NodeID) region.NodeID {
	pts := make([]geom.Point, len(former))
	for i, n := range former {
		pts[i] = g.Node(n).Point()
	}
	target := geom.Centroid(pts)

	best := r.Nodes[0]
	bestDist := geom.Distance(g.Node(best).Point(), target)
	for _, n := range r.Nodes[1:] {
		d := geom.Distance(g.Node(n).Point(), target)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// MergeAll repeatedly scans the given crossroads for clustering pairs and
// merges them until no more merges apply, implementing the transitive
// "partial overlaps are re-stitched" behavior of spec.md §4.5.
func MergeAll(g *region.Graph, crossroads []*region.Crossroad, nodes map[region.NodeID]reliability.NodeScore, scale float64, table *region.Table) []*region.Crossroad {
	live := append([]*region.Crossroad(nil), crossroads...)

	for {
		mergedAny := false
		for i := 0; i < len(live); i++ {
			for j := i + 1; j < len(live); j++ {
				if !ShouldCluster(g, live[i], live[j], nodes, scale) {
					continue
				}
				Merge(g, live[i], live[j], table)
				live = append(live[:j], live[j+1:]...)
				mergedAny = true
				break
			}
			if mergedAny {
				break
			}
		}
		if !mergedAny {
			break
		}
	}
	return live
}
