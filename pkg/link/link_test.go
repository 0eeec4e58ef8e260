package link

import (
	"testing"

	"crossroad/pkg/region"

	"github.com/paulmach/osm"
)

func buildTwoCrossroadsWithLink(t *testing.T) (*region.Graph, *region.Crossroad, *region.Crossroad, *region.Link, *region.Table) {
	t.Helper()
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.0001, 0, nil)
	g.AddNode(3, 0.0002, 0, nil)
	g.AddNode(4, 0.0003, 0, nil)
	g.AddEdge(1, 2, osm.Tags{{Key: "highway", Value: "residential"}})
	g.AddEdge(2, 3, osm.Tags{{Key: "highway", Value: "residential"}})
	g.AddEdge(3, 4, osm.Tags{{Key: "highway", Value: "residential"}})

	table := region.NewTable()
	a := region.NewCrossroad(g, 1, table)
	a.AddNode(2)
	a.AddEdgeBetween(1, 2)

	b := region.NewCrossroad(g, 4, table)
	b.AddNode(3)
	b.AddEdgeBetween(3, 4)

	l := region.NewLink(g, table)
	l.GrowFromEdge(2, 3)

	return g, a, b, l, table
}

func TestFindPairsRetainsCloseConnection(t *testing.T) {
	g, a, b, l, _ := buildTwoCrossroadsWithLink(t)
	conns := Build([]*region.Crossroad{a, b}, []*region.Link{l})

	pairs := FindPairs(g, conns, nil, DefaultConnectionIntensity)
	if len(pairs) == 0 {
		t.Fatal("expected at least one retained pair for two close crossroads")
	}
	if pairs[0].A.ID != a.ID && pairs[0].B.ID != a.ID {
		t.Error("expected the pair to reference crossroad a")
	}
}

func TestMergePairAbsorbsLinkAndB(t *testing.T) {
	g, a, b, l, table := buildTwoCrossroadsWithLink(t)
	conns := Build([]*region.Crossroad{a, b}, []*region.Link{l})
	pairs := FindPairs(g, conns, nil, DefaultConnectionIntensity)
	if len(pairs) == 0 {
		t.Fatal("expected a pair to merge")
	}

	survivor := MergePair(g, pairs[0], table)
	for _, id := range []osm.NodeID{1, 2, 3, 4} {
		if !survivor.HasNode(id) {
			t.Errorf("expected node %d to be absorbed into the surviving crossroad", id)
		}
	}
}
