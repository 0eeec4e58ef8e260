// Package link builds Link regions between crossroads and computes the
// region-adjacency structure (CrossroadConnections) used to find, score,
// and merge the connections between them, per spec.md §4.6. Grounded on
// lib/crseg/link.py and lib/crseg/crossroad_connections.py.
package link

import (
	"math"
	"strconv"

	"crossroad/pkg/region"
	"crossroad/pkg/reliability"
)

// DefaultConnectionIntensity is spec.md §6's connection_intensity default.
const DefaultConnectionIntensity = 2.0

// DefaultMaxCycleElements is spec.md §6's max_cycle_elements default for
// the full pipeline (10; the component-level default of 5 is for
// single-stage testing only).
const DefaultMaxCycleElements = 10

// LaneWidthByClass is spec.md §4.6's class-dependent per-lane width table,
// in meters.
func LaneWidthByClass(c region.HighwayClass) float64 {
	switch c {
	case region.ClassMotorway, region.ClassTrunk:
		return 3.5
	case region.ClassPrimary, region.ClassSecondary:
		return 3.0
	case region.ClassService:
		return 2.25
	default:
		return 2.75
	}
}

// BranchWidth estimates the physical width of a branch (a slice of
// similarly-bearinged lanes) as the sum of its lanes' widths, per spec.md
// §4.6.
func BranchWidth(g *region.Graph, branch []region.LaneDescription) float64 {
	total := 0.0
	for _, l := range branch {
		total += laneWidth(g, l)
	}
	return total
}

func laneWidth(g *region.Graph, l region.LaneDescription) float64 {
	e := g.Edge(l.Edge)
	if e == nil {
		return 0
	}
	if w, ok := widthTag(e); ok {
		return w
	}

	n := 1.0
	if e.Tags.Find("oneway") != "yes" {
		n = 2
	}
	if lanes, ok := lanesTag(e); ok {
		n = lanes
	}

	c := region.BaseClass(e.Tags.Find("highway"))
	width := n * LaneWidthByClass(c)
	if isCyclewayTrack(e) {
		width += LaneWidthByClass(c)
	}
	return width
}

func widthTag(e *region.Edge) (float64, bool) {
	v := e.Tags.Find("width")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lanesTag(e *region.Edge) (float64, bool) {
	v := e.Tags.Find("lanes")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isCyclewayTrack(e *region.Edge) bool {
	return e.Tags.Find("cycleway") == "track"
}

// Connections indexes, per node, the set of region ids containing it, and
// the crossroad<->link adjacency derived from shared nodes (spec.md §4.6).
type Connections struct {
	Crossroads []*region.Crossroad
	Links      []*region.Link

	nodeRegions map[region.NodeID][]int
	byID        map[int]*region.Region
}

// Build indexes every node of every given crossroad and link by the set
// of region ids it belongs to (a boundary node between a crossroad and a
// link belongs to both).
func Build(crossroads []*region.Crossroad, links []*region.Link) *Connections {
	c := &Connections{
		Crossroads:  crossroads,
		Links:       links,
		nodeRegions: make(map[region.NodeID][]int),
		byID:        make(map[int]*region.Region),
	}
	for _, cr := range crossroads {
		c.byID[cr.ID] = cr.Region
		for _, n := range cr.Nodes {
			c.nodeRegions[n] = append(c.nodeRegions[n], cr.ID)
		}
	}
	for _, l := range links {
		c.byID[l.ID] = l.Region
		for _, n := range l.Nodes {
			c.nodeRegions[n] = append(c.nodeRegions[n], l.ID)
		}
	}
	return c
}

// ContactNodes returns the nodes of link l that also belong to crossroad
// cr (i.e. where the two regions touch).
func (c *Connections) ContactNodes(l *region.Link, cr *region.Crossroad) []region.NodeID {
	var out []region.NodeID
	for _, n := range l.Nodes {
		if cr.HasNode(n) {
			out = append(out, n)
		}
	}
	return out
}

// LinksTouching returns every link that shares at least one node with cr.
func (c *Connections) LinksTouching(cr *region.Crossroad) []*region.Link {
	var out []*region.Link
	seen := map[int]bool{}
	for _, n := range cr.Nodes {
		for _, rid := range c.nodeRegions[n] {
			if rid == cr.ID || seen[rid] {
				continue
			}
			for _, l := range c.Links {
				if l.ID == rid {
					out = append(out, l)
					seen[rid] = true
				}
			}
		}
	}
	return out
}

// DistanceWithShortcut is spec.md §4.6's pair-path weight: real
// great-circle distance, halved on "_link" highway classes.
func DistanceWithShortcut(g *region.Graph, u, v region.NodeID) float64 {
	d := g.Distance(u, v)
	ek, ok := g.EdgeBetween(u, v)
	if !ok {
		return d
	}
	tag := g.Edge(ek).Tags.Find("highway")
	const suffix = "_link"
	if len(tag) > len(suffix) && tag[len(tag)-len(suffix):] == suffix {
		return d * 0.5
	}
	return d
}

// PossibleCrossroadCount counts nodes in path (excluding the two
// endpoints) that are weakly classified as possibly part of a crossroad,
// the "k" of spec.md §4.6's log(e·(k+1)) divisor.
func PossibleCrossroadCount(path []region.NodeID, nodes map[region.NodeID]reliability.NodeScore) int {
	k := 0
	for _, n := range path[1 : len(path)-1] {
		if nodes[n].IsWeaklyInCrossroad() {
			k++
		}
	}
	return k
}

// PathWeight computes the spec.md §4.6 divided weight for a completed
// path: the summed DistanceWithShortcut, divided by log(e*(k+1)).
func PathWeight(g *region.Graph, path []region.NodeID, nodes map[region.NodeID]reliability.NodeScore) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += DistanceWithShortcut(g, path[i], path[i+1])
	}
	k := PossibleCrossroadCount(path, nodes)
	return total / math.Log(math.E*float64(k+1))
}
