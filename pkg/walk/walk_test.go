package walk

import (
	"testing"

	"crossroad/pkg/region"

	"github.com/paulmach/osm"
)

func fourWayCrossroad(t *testing.T) (*region.Graph, *region.Crossroad) {
	t.Helper()
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	coords := map[osm.NodeID][2]float64{
		2: {0.0001, 0},
		3: {-0.0001, 0},
		4: {0, 0.0001},
		5: {0, -0.0001},
	}
	for id, xy := range coords {
		g.AddNode(id, xy[0], xy[1], nil)
		g.AddEdge(1, id, nil)
	}
	table := region.NewTable()
	cr := region.NewCrossroad(g, 1, table)
	return g, cr
}

func TestClassifyCenterIsBorder(t *testing.T) {
	g, cr := fourWayCrossroad(t)
	roles := Classify(g, cr)
	if roles[1] != Border {
		t.Errorf("center with only external neighbors should be Border, got %v", roles[1])
	}
	for _, id := range []osm.NodeID{2, 3, 4, 5} {
		if roles[id] != External {
			t.Errorf("node %d should be External, got %v", id, roles[id])
		}
	}
}

func TestWaySelectionWraparound(t *testing.T) {
	ways := []Way{
		{Bearing: 350, Name: "Rue Nord"},
		{Bearing: 10, Name: "Rue Est"},
		{Bearing: 280, Name: "Rue Ouest"},
	}
	ordered, name := WaySelection(ways)
	if len(ordered) != 3 {
		t.Fatalf("expected 3 ways, got %d", len(ordered))
	}
	// after wraparound correction, 280->-80, 350->-10, 10 stays 10: order
	// should be Ouest(-80), Nord(-10), Est(10).
	if ordered[0].Name != "Rue Ouest" {
		t.Errorf("ordered[0] = %v, want Rue Ouest", ordered[0].Name)
	}
	if name != "Rue Nord" {
		t.Errorf("middle way name = %v, want Rue Nord", name)
	}
}

func TestWaySelectionUnnamedPlaceholder(t *testing.T) {
	_, name := WaySelection([]Way{{Bearing: 0, Name: ""}})
	if name != UnnamedWayPlaceholder {
		t.Errorf("name = %q, want placeholder", name)
	}
}
