package region

import (
	"testing"

	"crossroad/pkg/geom"

	"github.com/paulmach/osm"
)

// line builds a simple path graph 1-2-3-4-5 with unit-degree coordinates
// spaced so great-circle distance is roughly proportional to id gaps.
func line(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	for i := 1; i <= 5; i++ {
		g.AddNode(osm.NodeID(i), float64(i)*0.001, 0, nil)
	}
	for i := 1; i < 5; i++ {
		g.AddEdge(osm.NodeID(i), osm.NodeID(i+1), osm.Tags{{Key: "highway", Value: "residential"}})
	}
	return g
}

func TestRegionAddPathLabelsNodesAndEdges(t *testing.T) {
	g := line(t)
	table := NewTable()
	r := NewRegion(g, Plain, table)
	r.AddPath([]NodeID{1, 2, 3})

	for _, n := range []NodeID{1, 2, 3} {
		if !r.HasNode(n) {
			t.Errorf("node %d not in region", n)
		}
		if g.NodeRegion(n) != r.ID {
			t.Errorf("node %d not labeled with region id", n)
		}
	}
	if r.HasNode(4) {
		t.Error("node 4 should not be in region")
	}
}

func TestRegionClearUnlabels(t *testing.T) {
	g := line(t)
	table := NewTable()
	r := NewRegion(g, Plain, table)
	r.AddPath([]NodeID{1, 2, 3})
	r.Clear()

	for _, n := range []NodeID{1, 2, 3} {
		if g.NodeRegion(n) != UnlabeledRegion {
			t.Errorf("node %d should be unlabeled after Clear", n)
		}
	}
}

func TestRegionBoundaryNodes(t *testing.T) {
	g := line(t)
	table := NewTable()
	r := NewRegion(g, Plain, table)
	r.AddPath([]NodeID{2, 3, 4})

	boundary := map[NodeID]bool{}
	for _, n := range r.BoundaryNodes() {
		boundary[n] = true
	}
	if !boundary[2] || !boundary[4] {
		t.Errorf("expected nodes 2 and 4 to be boundary nodes, got %v", boundary)
	}
	if boundary[3] {
		t.Error("node 3 has both neighbors inside the region, should not be boundary")
	}
}

func TestRegionTableAllOrdersByID(t *testing.T) {
	g := line(t)
	table := NewTable()
	r1 := NewRegion(g, Plain, table)
	r2 := NewRegion(g, Plain, table)
	all := table.All()
	if len(all) != 2 || all[0].ID != r1.ID || all[1].ID != r2.ID {
		t.Errorf("All() = %v, want ordered [%d %d]", all, r1.ID, r2.ID)
	}
}

func TestShortestPathFindsDirectRoute(t *testing.T) {
	g := line(t)
	table := NewTable()
	r := NewRegion(g, Plain, table)
	r.AddPath([]NodeID{1, 2, 3, 4, 5})

	path, _, found := r.ShortestPath([]NodeID{1}, []NodeID{5}, nil)
	if !found {
		t.Fatal("expected a path to be found")
	}
	want := []NodeID{1, 2, 3, 4, 5}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestShortestPathRestrictedToRegionEdges(t *testing.T) {
	g := line(t)
	table := NewTable()
	r := NewRegion(g, Plain, table)
	// only label 1-2 and 4-5: the region is disconnected even though the
	// underlying graph is a single path.
	r.AddPath([]NodeID{1, 2})
	r.AddPath([]NodeID{4, 5})

	if _, _, found := r.ShortestPath([]NodeID{1}, []NodeID{5}, nil); found {
		t.Error("expected no path: 2-3 and 3-4 are not in the region")
	}
}

func TestLaneDescriptionSimilarAndOrthogonal(t *testing.T) {
	a := LaneDescription{Bearing: 10, StreetName: "Rue A", Edge: EdgeKey{U: 1, V: 2}, Inbound: true}
	b := LaneDescription{Bearing: 20, StreetName: "Rue A", Edge: EdgeKey{U: 1, V: 3}, Inbound: true}
	c := LaneDescription{Bearing: 100, StreetName: "Rue A", Edge: EdgeKey{U: 1, V: 4}, Inbound: true}
	d := LaneDescription{Bearing: 20, StreetName: "Rue B", Edge: EdgeKey{U: 1, V: 5}, Inbound: true}

	if !a.IsSimilar(b) {
		t.Error("same name, 10 and 20 degrees apart should be similar")
	}
	if a.IsSimilar(d) {
		t.Error("different street names should not be similar regardless of angle")
	}
	if a.IsSimilar(c) {
		t.Error("90 degrees apart should not be similar")
	}
	if !geom.IsOrthogonal(a.Bearing, c.Bearing, 45) {
		t.Error("10 and 100 degrees should be orthogonal")
	}
}

func TestCrossroadStraightCrossingDiscarded(t *testing.T) {
	g := line(t)
	table := NewTable()
	cr := NewCrossroad(g, 3, table)
	cr.AddPath([]NodeID{2, 3, 4})

	if !cr.IsStraightCrossing() {
		t.Error("a path with max degree 2 should be a straight crossing")
	}
}

func TestLinkGrowFromEdgeStopsAtLabeledNode(t *testing.T) {
	g := line(t)
	table := NewTable()
	// label node 4 as belonging to some other region first.
	other := NewRegion(g, Plain, table)
	other.AddNode(4)

	link := NewLink(g, table)
	link.GrowFromEdge(2, 3)

	if !link.HasNode(1) {
		t.Error("link should grow left past node 2 to the dead end at node 1")
	}
	if link.HasNode(4) {
		t.Error("link should not absorb the already-labeled node 4")
	}
	if !link.Filled {
		t.Error("link should be marked Filled after colliding with a labeled node")
	}
}

func TestBaseClassStripsLinkSuffix(t *testing.T) {
	if BaseClass("primary_link") != ClassPrimary {
		t.Errorf("BaseClass(primary_link) = %v, want primary", BaseClass("primary_link"))
	}
	if BaseClass("made_up_value") != ClassDefault {
		t.Errorf("BaseClass(made_up_value) = %v, want default", BaseClass("made_up_value"))
	}
}
