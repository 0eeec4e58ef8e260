package link

import (
	"math"

	"crossroad/pkg/region"
	"crossroad/pkg/reliability"
)

// Pair is a retained connection between two crossroads through a link
// region, per spec.md §4.6.
type Pair struct {
	A, B *region.Crossroad
	Via  *region.Link
	Path []region.NodeID
	// Length is the path's raw great-circle length (including the
	// distance_with_shortcut discount), used against the retention
	// threshold.
	Length float64
	// Close marks pairs retained as singletons (total distance including
	// center stub lengths below threshold/5).
	Close bool
}

// FindPairs computes every (crossroadA, link, crossroadB) candidate pair
// and keeps the ones whose path length clears the spec.md §4.6 threshold,
// or that qualify as a "close" singleton.
func FindPairs(g *region.Graph, conns *Connections, nodes map[region.NodeID]reliability.NodeScore, connectionIntensity float64) []Pair {
	if connectionIntensity <= 0 {
		connectionIntensity = DefaultConnectionIntensity
	}

	type candidate struct {
		a, b *region.Crossroad
		via  *region.Link
		path []region.NodeID
	}
	var candidates []candidate

	for _, l := range conns.Links {
		var touching []*region.Crossroad
		for _, cr := range conns.Crossroads {
			if len(conns.ContactNodes(l, cr)) > 0 {
				touching = append(touching, cr)
			}
		}
		for i := 0; i < len(touching); i++ {
			for j := i + 1; j < len(touching); j++ {
				a, b := touching[i], touching[j]
				if b.ID < a.ID {
					a, b = b, a
				}
				contactsA := conns.ContactNodes(l, a)
				contactsB := conns.ContactNodes(l, b)
				path, _, found := l.ShortestPath(contactsA, contactsB, DistanceWithShortcut)
				if !found {
					continue
				}
				candidates = append(candidates, candidate{a: a, b: b, via: l, path: path})
			}
		}
	}

	type scored struct {
		cand      candidate
		length    float64
		threshold float64
		close     bool
	}
	groups := map[[2]int][]scored{}
	for _, c := range candidates {
		threshold := math.Min(connectionIntensity*math.Max(BranchWidth(g, c.a.Lanes), BranchWidth(g, c.b.Lanes)), 50)
		length := rawLength(g, c.path)
		stubA := g.Distance(c.a.Center, c.path[0])
		stubB := g.Distance(c.b.Center, c.path[len(c.path)-1])
		close := length+stubA+stubB < threshold/5

		if length >= threshold && !close {
			continue
		}
		key := [2]int{c.a.ID, c.b.ID}
		groups[key] = append(groups[key], scored{cand: c, length: length, threshold: threshold, close: close})
	}

	var out []Pair
	for _, g2 := range groups {
		hasClose := false
		for _, s := range g2 {
			if s.close {
				hasClose = true
			}
		}
		if !hasClose && len(g2) < 2 {
			continue
		}
		for _, s := range g2 {
			out = append(out, Pair{A: s.cand.a, B: s.cand.b, Via: s.cand.via, Path: s.cand.path, Length: s.length, Close: s.close})
		}
	}
	return out
}

func rawLength(g *region.Graph, path []region.NodeID) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += DistanceWithShortcut(g, path[i], path[i+1])
	}
	return total
}
