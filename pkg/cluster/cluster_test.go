package cluster

import (
	"testing"

	"crossroad/pkg/region"

	"github.com/paulmach/osm"
)

func TestMergeAbsorbsNodesAndRecentersCrossroad(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.0002, 0, nil)
	g.AddNode(3, 0.0001, 0.0005, nil)
	g.AddEdge(1, 2, osm.Tags{{Key: "highway", Value: "residential"}})

	table := region.NewTable()
	a := region.NewCrossroad(g, 1, table)
	b := region.NewCrossroad(g, 2, table)
	b.AddNode(3)

	Merge(g, a, b, table)

	if !a.HasNode(3) {
		t.Error("expected node 3 to be absorbed into a after merge")
	}
	if table.Get(b.ID) != nil {
		t.Error("expected b to be unregistered from the table after merge")
	}
}
