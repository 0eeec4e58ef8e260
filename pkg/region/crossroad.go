package region

// Crossroad is a Region labeling the subgraph that belongs to one logical
// intersection: a center node, the lanes crossing its boundary, and those
// lanes grouped into branches by angular similarity (spec.md §3, §4.4).
// Grounded on lib/crseg/crossroad.py's Crossroad class.
type Crossroad struct {
	*Region

	Center NodeID

	// Lanes is every LaneDescription computed by the builder, one per
	// outbound polyline from a border (or neighbor of the center, when the
	// center itself has no non-center border — spec.md §4.4).
	Lanes []LaneDescription

	// Branches groups Lanes by angular similarity (spec.md §4.3's
	// LaneDescription.IsSimilar), rebuilt by RegroupBranches each time
	// builder.ComputeLanes runs, in order of first appearance in Lanes.
	// Clockwise order is not stored here; walk.NumberBranches returns a
	// sorted copy.
	Branches [][]LaneDescription

	// Radius is the mean distance from Center to its non-center borders,
	// or half the min threshold of the fastest incident class if there are
	// none (spec.md §4.4).
	Radius float64
}

// NewCrossroad creates an empty crossroad region seeded at center.
func NewCrossroad(g *Graph, center NodeID, table *Table) *Crossroad {
	c := &Crossroad{Region: NewRegion(g, CrossroadRegionKind, table), Center: center}
	c.AddNode(center)
	return c
}

// AddLane appends a lane, leaving Branches to be recomputed by
// RegroupBranches (called at the end of builder.ComputeLanes).
func (c *Crossroad) AddLane(l LaneDescription) {
	c.Lanes = append(c.Lanes, l)
}

// RegroupBranches rebuilds Branches from Lanes by angular similarity: each
// lane joins the first branch containing a similar lane, or starts a new
// one. Order of first appearance in Lanes is preserved; clockwise ordering
// is applied later by walk.NumberBranches, which sorts a copy.
func (c *Crossroad) RegroupBranches() {
	c.Branches = nil
	for _, lane := range c.Lanes {
		placed := false
		for i, branch := range c.Branches {
			if len(branch) > 0 && lane.IsSimilar(branch[0]) {
				c.Branches[i] = append(c.Branches[i], lane)
				placed = true
				break
			}
		}
		if !placed {
			c.Branches = append(c.Branches, []LaneDescription{lane})
		}
	}
}

// IsStraightCrossing reports whether this crossroad must be discarded: no
// node in it has degree (in the full graph) greater than 2 (spec.md §4.4,
// "A grown crossroad is discarded... if no node has degree > 2").
func (c *Crossroad) IsStraightCrossing() bool {
	for _, n := range c.Nodes {
		if c.Graph.Degree(n) > 2 {
			return false
		}
	}
	return true
}
