package region

import "container/heap"

// WeightFunc computes the traversal cost of the edge between u and v.
// Weight functions may be asymmetric (distance_with_shortcut in spec.md
// §4.6 is not, but the signature allows it).
type WeightFunc func(g *Graph, u, v NodeID) float64

// DefaultWeight is great-circle distance, the weight used unless a
// component overrides it (spec.md §4.3: "weights default to distance and
// may be overridden").
func DefaultWeight(g *Graph, u, v NodeID) float64 {
	return g.Distance(u, v)
}

type pqItem struct {
	node NodeID
	dist float64
}

// nodeHeap is a min-heap over (node, dist) pairs implementing
// container/heap.Interface, following the teacher's
// pkg/routing/dijkstra.go MinHeap idiom; items pass through interface{}
// on every push/pop.
type nodeHeap []pqItem

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ShortestPath computes the minimum-weight path within the region (edges
// outside the region are not traversable) from any node in sources to any
// node in targets, using Dijkstra with the given weight function (nil uses
// DefaultWeight). It returns the path, its total weight, and whether a
// path was found at all — spec.md §7 has shortest-path-between-
// disconnected-nodes return an empty result rather than erroring
// (UnreachableGraphState is reported by the caller, not here).
func (r *Region) ShortestPath(sources, targets []NodeID, weight WeightFunc) ([]NodeID, float64, bool) {
	if len(sources) == 0 || len(targets) == 0 {
		return nil, 0, false
	}
	if weight == nil {
		weight = DefaultWeight
	}

	targetSet := make(map[NodeID]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	dist := make(map[NodeID]float64, len(r.Nodes))
	prev := make(map[NodeID]NodeID)
	visited := make(map[NodeID]bool, len(r.Nodes))

	h := &nodeHeap{}
	heap.Init(h)
	for _, s := range sources {
		if !r.HasNode(s) {
			continue
		}
		if cur, ok := dist[s]; !ok || cur > 0 {
			dist[s] = 0
			heap.Push(h, pqItem{node: s, dist: 0})
		}
	}

	// regionNeighbors restricts graph adjacency to edges that belong to
	// this region, since Dijkstra here must not leave the region.
	regionNeighbors := func(n NodeID) []NodeID {
		var out []NodeID
		for _, ek := range r.Graph.EdgesAt(n) {
			if !r.HasEdge(ek) {
				continue
			}
			out = append(out, r.Graph.Edge(ek).Other(n))
		}
		return out
	}

	var best NodeID
	found := false
	bestDist := 0.0

	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if targetSet[cur.node] {
			best = cur.node
			bestDist = cur.dist
			found = true
			break
		}

		for _, nb := range regionNeighbors(cur.node) {
			if visited[nb] {
				continue
			}
			nd := cur.dist + weight(r.Graph, cur.node, nb)
			if old, ok := dist[nb]; !ok || nd < old {
				dist[nb] = nd
				prev[nb] = cur.node
				heap.Push(h, pqItem{node: nb, dist: nd})
			}
		}
	}

	if !found {
		return nil, 0, false
	}

	path := []NodeID{best}
	for {
		p, ok := prev[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, p)
	}
	// reverse into source -> target order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, bestDist, true
}

// GetPath is the spec.md §4.3 name for ShortestPath ("get_path"), kept as
// an alias so callers reading against the spec find a matching symbol.
func (r *Region) GetPath(nodes1, nodes2 []NodeID, weight WeightFunc) ([]NodeID, float64, bool) {
	return r.ShortestPath(nodes1, nodes2, weight)
}
