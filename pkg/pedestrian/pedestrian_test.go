package pedestrian

import (
	"testing"
)

func TestMinimumCycleBasisFindsSingleSquare(t *testing.T) {
	edges := []rawEdge{
		{u: 1, v: 2, weight: 1},
		{u: 2, v: 3, weight: 1},
		{u: 3, v: 4, weight: 1},
		{u: 4, v: 1, weight: 1},
	}
	cycles := MinimumCycleBasis(edges)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle in a 4-cycle graph, got %d", len(cycles))
	}
	if len(cycles[0]) != 4 {
		t.Errorf("expected the cycle to visit 4 nodes, got %d: %v", len(cycles[0]), cycles[0])
	}
}

func TestMinimumCycleBasisTwoSquaresSharingEdge(t *testing.T) {
	// two unit squares sharing edge 2-3: nodes 1,2,3,4 and 2,3,5,6.
	edges := []rawEdge{
		{u: 1, v: 2, weight: 1},
		{u: 2, v: 3, weight: 1},
		{u: 3, v: 4, weight: 1},
		{u: 4, v: 1, weight: 1},
		{u: 2, v: 6, weight: 1},
		{u: 6, v: 5, weight: 1},
		{u: 5, v: 3, weight: 1},
	}
	cycles := MinimumCycleBasis(edges)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 independent cycles, got %d", len(cycles))
	}
}

func TestMinimumCycleBasisEmptyForTree(t *testing.T) {
	edges := []rawEdge{
		{u: 1, v: 2, weight: 1},
		{u: 2, v: 3, weight: 1},
	}
	cycles := MinimumCycleBasis(edges)
	if len(cycles) != 0 {
		t.Errorf("expected no cycles in a tree, got %d", len(cycles))
	}
}
