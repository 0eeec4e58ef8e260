package reliability

import (
	"testing"

	"crossroad/pkg/region"

	"github.com/paulmach/osm"
)

func tagged(pairs ...string) osm.Tags {
	var tg osm.Tags
	for i := 0; i+1 < len(pairs); i += 2 {
		tg = append(tg, osm.Tag{Key: pairs[i], Value: pairs[i+1]})
	}
	return tg
}

func TestScoreEdgeJunctionTag(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.001, 0, nil)
	ek := g.AddEdge(1, 2, tagged("junction", "roundabout"))

	score := ScoreEdge(g, ek)
	if score.Crossroad != StronglyYes {
		t.Errorf("junction-tagged edge Crossroad = %v, want strongly_yes", score.Crossroad)
	}
	if score.Length <= 0 {
		t.Error("expected a positive length")
	}
}

func TestScoreNodeCrossingBoundary(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, tagged("highway", "crossing"))
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddEdge(1, 2, nil)
	g.AddEdge(1, 3, nil)

	score := ScoreNode(g, 1)
	if score.Boundary != StronglyYes {
		t.Errorf("crossing node (d=2) Boundary = %v, want strongly_yes", score.Boundary)
	}
}

func TestScoreNodeDegreeTwoNoHighwayIsStronglyNoBoth(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddEdge(1, 2, nil)
	g.AddEdge(1, 3, nil)

	score := ScoreNode(g, 1)
	if score.Crossroad != StronglyNo || score.Boundary != StronglyNo {
		t.Errorf("score = %+v, want both strongly_no", score)
	}
}

func TestScoreNodeDegreeFourNoHighwayIsStronglyYesCrossroad(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddNode(4, 0, 0.001, nil)
	g.AddNode(5, 0, -0.001, nil)
	for _, id := range []osm.NodeID{2, 3, 4, 5} {
		g.AddEdge(1, id, nil)
	}

	score := ScoreNode(g, 1)
	if score.Crossroad != StronglyYes {
		t.Errorf("degree-4 unlabeled node Crossroad = %v, want strongly_yes", score.Crossroad)
	}
}

func TestScoreNodeHighwayDegreeTwoIsStronglyNoCrossroad(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, tagged("highway", "residential"))
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddEdge(1, 2, nil)
	g.AddEdge(1, 3, nil)

	score := ScoreNode(g, 1)
	if score.Crossroad != StronglyNo {
		t.Errorf("highway-tagged degree-2 node Crossroad = %v, want strongly_no", score.Crossroad)
	}
}

func TestScoreNodeStopTagDegreeTwoIsModerateYesCrossroad(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, tagged("highway", "stop"))
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddEdge(1, 2, nil)
	g.AddEdge(1, 3, nil)

	score := ScoreNode(g, 1)
	if score.Crossroad != ModerateYes {
		t.Errorf("highway=stop degree-2 node Crossroad = %v, want moderate_yes", score.Crossroad)
	}
	if score.Boundary != ModerateYes {
		t.Errorf("highway=stop degree-2 node Boundary = %v, want moderate_yes", score.Boundary)
	}
}

func TestScoreNodeDegreeThreeAdjacentNames(t *testing.T) {
	g := region.NewGraph()
	g.AddNode(1, 0, 0, nil)
	g.AddNode(2, 0.001, 0, nil)
	g.AddNode(3, -0.001, 0, nil)
	g.AddNode(4, 0, 0.001, nil)
	g.AddEdge(1, 2, tagged("name", "Rue A"))
	g.AddEdge(1, 3, tagged("name", "Rue B"))
	g.AddEdge(1, 4, tagged("name", "Rue A"))

	score := ScoreNode(g, 1)
	if score.Crossroad != ModerateYes {
		t.Errorf("degree-3 node with 2 distinct names Crossroad = %v, want moderate_yes", score.Crossroad)
	}
}

func TestBandOrdering(t *testing.T) {
	if !(StronglyNo < WeaklyNo && WeaklyNo < ModerateNo && ModerateNo < Uncertain &&
		Uncertain < ModerateYes && ModerateYes < WeaklyYes && WeaklyYes < StronglyYes) {
		t.Error("band ordering invariant violated")
	}
}
