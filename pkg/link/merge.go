package link

import "crossroad/pkg/region"

// MergePair absorbs b into a: adds the link's path as an inner path of a,
// then absorbs b's nodes and edges. The connecting link is always removed
// from the table and cleared; of its nodes, only those on the path join a
// (spec.md §4.6: "absorb all but one region into a
// single surviving id... the paths through the links are added as inner
// paths"). Returns the surviving crossroad (always a).
func MergePair(g *region.Graph, p Pair, table *region.Table) *region.Crossroad {
	for _, n := range p.Path {
		p.A.AddNode(n)
	}
	for i := 0; i+1 < len(p.Path); i++ {
		p.A.AddEdgeBetween(p.Path[i], p.Path[i+1])
	}
	for _, n := range p.B.Nodes {
		p.A.AddNode(n)
	}
	for _, ek := range p.B.Edges {
		p.A.AddEdge(ek)
	}

	table.Unregister(p.B.ID)
	table.Unregister(p.Via.ID)
	p.B.Clear()
	p.Via.Clear()
	return p.A
}

// MergeCycle absorbs every crossroad named in a cycle into the
// lowest-id one, along with the links connecting them, mirroring
// MergePair across the whole loop.
func MergeCycle(g *region.Graph, cycle Cycle, byID map[int]*region.Region, crossroadsByID map[int]*region.Crossroad, table *region.Table) *region.Crossroad {
	var survivorID int
	first := true
	for _, id := range cycle.RegionIDs {
		if _, ok := crossroadsByID[id]; !ok {
			continue
		}
		if first || id < survivorID {
			survivorID = id
			first = false
		}
	}
	survivor := crossroadsByID[survivorID]
	if survivor == nil {
		return nil
	}

	for _, id := range cycle.RegionIDs {
		if id == survivorID {
			continue
		}
		r := byID[id]
		if r == nil {
			continue
		}
		for _, n := range r.Nodes {
			survivor.AddNode(n)
		}
		for _, ek := range r.Edges {
			survivor.AddEdge(ek)
		}
		table.Unregister(id)
		r.Clear()
	}
	return survivor
}
