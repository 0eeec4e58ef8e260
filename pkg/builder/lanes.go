package builder

import (
	"crossroad/pkg/region"
	"crossroad/pkg/tags"
)

// ComputeLanes fills cr.Lanes and cr.Radius from the region's current
// boundary, per spec.md §4.4's final paragraph: one LaneDescription per
// outbound polyline from each border node (or from each neighbor of the
// center, when the center has no non-center border), and the radius as
// the mean distance from center to its non-center borders.
func ComputeLanes(g *region.Graph, cr *region.Crossroad) {
	borders := nonCenterBorders(g, cr)

	if len(borders) == 0 {
		for _, nb := range g.Neighbors(cr.Center) {
			addLaneFromBranch(g, cr, cr.Center, nb)
		}
	} else {
		for _, b := range borders {
			for _, ext := range externalNeighbors(g, cr, b) {
				addLaneFromBranch(g, cr, b, ext)
			}
		}
	}

	cr.Radius = computeRadius(g, cr, borders)
	cr.RegroupBranches()
}

func nonCenterBorders(g *region.Graph, cr *region.Crossroad) []region.NodeID {
	var out []region.NodeID
	for _, n := range cr.BoundaryNodes() {
		if n != cr.Center {
			out = append(out, n)
		}
	}
	return out
}

// externalNeighbors returns the neighbors of border node b that lie
// outside the region (the direction a branch leaves through).
func externalNeighbors(g *region.Graph, cr *region.Crossroad, b region.NodeID) []region.NodeID {
	var out []region.NodeID
	for _, nb := range g.Neighbors(b) {
		if !cr.HasNode(nb) {
			out = append(out, nb)
		}
	}
	return out
}

// addLaneFromBranch resolves a branch's outbound direction/bearing/name
// starting at (from, to) and appends the resulting LaneDescription to
// cr.Lanes. One lane is added per (from, to) pair, for the lowest-k edge
// between them; further parallel edges between the same two nodes do not
// get lanes of their own.
func addLaneFromBranch(g *region.Graph, cr *region.Crossroad, from, to region.NodeID) {
	bearing := g.Bearing(cr.Center, from)
	if from == cr.Center {
		bearing = g.Bearing(cr.Center, to)
	}
	name := resolveBranchName(g, from, to)
	ek, ok := g.EdgeBetween(from, to)
	if !ok {
		return
	}
	e := g.Edge(ek)
	inbound := e.Tags.Find("oneway") != "yes"
	cr.AddLane(region.LaneDescription{
		Bearing:      bearing,
		StreetName:   name,
		Width:        laneWidth(e),
		Inbound:      inbound,
		Edge:         ek,
		ExternalNode: to,
	})
}

func laneWidth(e *region.Edge) float64 {
	if n, ok := tags.Int(e.Tags, "lanes"); ok {
		return float64(n)
	}
	return 1
}

// resolveBranchName walks outward from (from, to) until it finds a named
// edge, following the teacher's tag-consulting idiom. If the whole branch
// is unnamed, a lone parallel return path's name is reused when one
// exists.
func resolveBranchName(g *region.Graph, from, to region.NodeID) string {
	path := g.WalkToBifurcation(from, to, -1)
	for i := 0; i+1 < len(path); i++ {
		ek, ok := g.EdgeBetween(path[i], path[i+1])
		if !ok {
			continue
		}
		if name := g.Edge(ek).Tags.Find("name"); name != "" {
			return name
		}
	}
	// parallel return path: another edge directly between from and the
	// far end of the walked polyline, going the other way.
	far := path[len(path)-1]
	for _, ek := range g.EdgesAt(from) {
		if g.Edge(ek).Other(from) == far {
			if name := g.Edge(ek).Tags.Find("name"); name != "" {
				return name
			}
		}
	}
	return ""
}

func computeRadius(g *region.Graph, cr *region.Crossroad, borders []region.NodeID) float64 {
	if len(borders) == 0 {
		c := fastestIncidentClass(g, cr.Center)
		return region.MinBoundaryDistance(c) / 2
	}
	total := 0.0
	for _, b := range borders {
		total += g.Distance(cr.Center, b)
	}
	return total / float64(len(borders))
}

func fastestIncidentClass(g *region.Graph, center region.NodeID) region.HighwayClass {
	best := region.ClassDefault
	first := true
	for _, ek := range g.EdgesAt(center) {
		c := region.BaseClass(g.Edge(ek).Tags.Find("highway"))
		if first {
			best = c
			first = false
			continue
		}
		best = region.FastestClass(best, c)
	}
	return best
}
