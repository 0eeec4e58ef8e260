package pedestrian

import (
	"sort"

	"crossroad/pkg/region"
)

// cycleGraph is a small, self-contained weighted undirected graph used for
// minimum cycle basis computation — the island-detection temporary graph
// of spec.md §4.8, closed over a crossroad's branches rather than the
// live region.Graph, since chords get added that don't exist in the real
// road network.
type cycleGraph struct {
	adj map[region.NodeID][]cycleEdge
}

type cycleEdge struct {
	to     region.NodeID
	weight float64
	idx    int // index into the graph's global edge list
}

type rawEdge struct {
	u, v   region.NodeID
	weight float64
}

func newCycleGraph(edges []rawEdge) (*cycleGraph, []rawEdge) {
	g := &cycleGraph{adj: make(map[region.NodeID][]cycleEdge)}
	for i, e := range edges {
		g.adj[e.u] = append(g.adj[e.u], cycleEdge{to: e.v, weight: e.weight, idx: i})
		g.adj[e.v] = append(g.adj[e.v], cycleEdge{to: e.u, weight: e.weight, idx: i})
	}
	return g, edges
}

// dijkstraTree computes shortest-path distances and predecessor edges
// from src over the whole cycleGraph.
func (g *cycleGraph) dijkstraTree(src region.NodeID) (dist map[region.NodeID]float64, pred map[region.NodeID]cycleEdge) {
	dist = map[region.NodeID]float64{src: 0}
	pred = map[region.NodeID]cycleEdge{}
	visited := map[region.NodeID]bool{}

	for {
		var u region.NodeID
		best := -1.0
		found := false
		for n, d := range dist {
			if visited[n] {
				continue
			}
			if !found || d < best {
				u, best, found = n, d, true
			}
		}
		if !found {
			break
		}
		visited[u] = true
		for _, e := range g.adj[u] {
			nd := best + e.weight
			if old, ok := dist[e.to]; !ok || nd < old {
				dist[e.to] = nd
				pred[e.to] = cycleEdge{to: u, weight: e.weight, idx: e.idx}
			}
		}
	}
	return dist, pred
}

// pathEdgesTo reconstructs the set of global edge indices on the
// shortest-path tree path from src to n, using pred computed by
// dijkstraTree(src).
func pathEdgesTo(pred map[region.NodeID]cycleEdge, n region.NodeID) []int {
	var idxs []int
	for {
		e, ok := pred[n]
		if !ok {
			break
		}
		idxs = append(idxs, e.idx)
		n = e.to
	}
	return idxs
}

// bitset is a GF(2) vector over the global edge index space, used to test
// linear independence of candidate cycles (Horton's algorithm's standard
// selection step).
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) xorInto(other bitset) {
	for i := range b {
		b[i] ^= other[i]
	}
}

func (b bitset) isZero() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b bitset) highestBit() int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			for bit := 63; bit >= 0; bit-- {
				if b[i]&(1<<uint(bit)) != 0 {
					return i*64 + bit
				}
			}
		}
	}
	return -1
}

type candidate struct {
	weight float64
	nodes  []region.NodeID
	vec    bitset
}

// MinimumCycleBasis computes a minimum-weight cycle basis of the graph
// described by edges, via Horton's algorithm: for every vertex v and
// every edge (x,y), form the candidate cycle v->x, edge(x,y), y->v via
// shortest-path trees, then greedily select the lightest candidates that
// are linearly independent (over GF(2), by edge set) of those already
// chosen, until the basis reaches its expected dimension |E|-|V|+C.
func MinimumCycleBasis(edges []rawEdge) [][]region.NodeID {
	if len(edges) == 0 {
		return nil
	}
	g, edgeList := newCycleGraph(edges)

	var vertices []region.NodeID
	seen := map[region.NodeID]bool{}
	for _, e := range edgeList {
		for _, n := range []region.NodeID{e.u, e.v} {
			if !seen[n] {
				seen[n] = true
				vertices = append(vertices, n)
			}
		}
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	dimension := len(edgeList) - len(vertices) + countComponents(g, vertices)
	if dimension <= 0 {
		return nil
	}

	var candidates []candidate
	for _, v := range vertices {
		dist, pred := g.dijkstraTree(v)
		for eIdx, e := range edgeList {
			pathX := pathEdgesTo(pred, e.u)
			pathY := pathEdgesTo(pred, e.v)
			if sharesEdge(pathX, pathY) {
				continue
			}
			weight := dist[e.u] + e.weight + dist[e.v]
			if weight <= 0 {
				continue
			}
			nodes := cycleNodes(pred, e.u, e.v, edgeList[eIdx])
			if len(nodes) < 3 {
				continue
			}
			vec := newBitset(len(edgeList))
			for _, idx := range pathX {
				vec.set(idx)
			}
			for _, idx := range pathY {
				vec.set(idx)
			}
			vec.set(eIdx)
			candidates = append(candidates, candidate{weight: weight, nodes: nodes, vec: vec})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].weight < candidates[j].weight })

	var basisVecs []bitset
	var result [][]region.NodeID
	for _, c := range candidates {
		if len(result) >= dimension {
			break
		}
		reduced := append(bitset(nil), c.vec...)
		for _, bv := range basisVecs {
			h := bv.highestBit()
			if h >= 0 && reduced[h/64]&(1<<uint(h%64)) != 0 {
				reduced.xorInto(bv)
			}
		}
		if reduced.isZero() {
			continue
		}
		basisVecs = append(basisVecs, reduced)
		result = append(result, c.nodes)
	}
	return result
}

func sharesEdge(a, b []int) bool {
	set := map[int]bool{}
	for _, x := range a {
		set[x] = true
	}
	for _, y := range b {
		if set[y] {
			return true
		}
	}
	return false
}

func cycleNodes(pred map[region.NodeID]cycleEdge, u, v region.NodeID, closing rawEdge) []region.NodeID {
	var left []region.NodeID
	n := u
	for {
		left = append(left, n)
		e, ok := pred[n]
		if !ok {
			break
		}
		n = e.to
	}
	var right []region.NodeID
	n = v
	for {
		right = append(right, n)
		e, ok := pred[n]
		if !ok {
			break
		}
		n = e.to
	}
	// left and right both end at the same root; splice them into one
	// walk root -> ... -> u -> v -> ... that lists the root once and closes
	// implicitly from its last node back to the first.
	out := make([]region.NodeID, 0, len(left)+len(right))
	for i := len(left) - 1; i >= 0; i-- {
		out = append(out, left[i])
	}
	out = append(out, right[:len(right)-1]...)
	return out
}

func countComponents(g *cycleGraph, vertices []region.NodeID) int {
	visited := map[region.NodeID]bool{}
	count := 0
	for _, start := range vertices {
		if visited[start] {
			continue
		}
		count++
		stack := []region.NodeID{start}
		visited[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.adj[n] {
				if !visited[e.to] {
					visited[e.to] = true
					stack = append(stack, e.to)
				}
			}
		}
	}
	return count
}
