package link

import "math"

// Cycle is a retained simple loop in the crossroad-link adjacency graph,
// per spec.md §4.6.
type Cycle struct {
	RegionIDs []int
}

type adjNode struct {
	id       int
	isLink   bool
	neighbor []int
}

// buildAdjacency returns the crossroad<->link bipartite adjacency graph,
// keyed by region id.
func (c *Connections) buildAdjacency() map[int]*adjNode {
	graph := map[int]*adjNode{}
	get := func(id int, isLink bool) *adjNode {
		n, ok := graph[id]
		if !ok {
			n = &adjNode{id: id, isLink: isLink}
			graph[id] = n
		}
		return n
	}
	for _, cr := range c.Crossroads {
		get(cr.ID, false)
	}
	for _, l := range c.Links {
		lNode := get(l.ID, true)
		for _, cr := range c.Crossroads {
			if len(c.ContactNodes(l, cr)) == 0 {
				continue
			}
			crNode := get(cr.ID, false)
			lNode.neighbor = append(lNode.neighbor, cr.ID)
			crNode.neighbor = append(crNode.neighbor, l.ID)
		}
	}
	return graph
}

// FindCycles enumerates simple loops of at most maxElements regions
// (crossroads and links both count) in the region-adjacency graph; a walk
// from a crossroad into one link and straight back is not a loop. It keeps
// those whose cumulative direct
// center-to-center distance (crossroad-to-crossroad hops only) is below
// the spec.md §4.6 threshold, deduplicated by vertex set.
func (c *Connections) FindCycles(centerDistance func(a, b int) float64, branchWidth func(crossroadID int) float64, connectionIntensity float64, maxElements int) []Cycle {
	if connectionIntensity <= 0 {
		connectionIntensity = DefaultConnectionIntensity
	}
	if maxElements <= 0 {
		maxElements = DefaultMaxCycleElements
	}
	graph := c.buildAdjacency()

	seen := map[string]bool{}
	var out []Cycle

	var ids []int
	for id := range graph {
		ids = append(ids, id)
	}

	for _, start := range ids {
		var path []int
		var visit func(cur int)
		visit = func(cur int) {
			path = append(path, cur)
			defer func() { path = path[:len(path)-1] }()

			if len(path) > maxElements {
				return
			}
			for _, nb := range graph[cur].neighbor {
				if nb == start {
					if len(path) >= 3 && isValidCycle(graph, path, centerDistance, branchWidth, connectionIntensity) {
						recordCycle(path, seen, &out)
					}
					continue
				}
				if containsInt(path, nb) {
					continue
				}
				visit(nb)
			}
		}
		visit(start)
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func isValidCycle(graph map[int]*adjNode, path []int, centerDistance func(a, b int) float64, branchWidth func(crossroadID int) float64, connectionIntensity float64) bool {
	if centerDistance == nil {
		return true
	}
	total := 0.0
	maxWidth := 0.0
	n := len(path)
	for i := 0; i < n; i++ {
		a, b := path[i], path[(i+1)%n]
		if !graph[a].isLink && !graph[b].isLink {
			total += centerDistance(a, b)
		}
		if !graph[a].isLink && branchWidth != nil {
			if w := branchWidth(a); w > maxWidth {
				maxWidth = w
			}
		}
	}
	threshold := math.Min(maxWidth*connectionIntensity*math.Pi, 50*math.Pi)
	return total < threshold
}

func recordCycle(path []int, seen map[string]bool, out *[]Cycle) {
	key := vertexSetKey(path)
	if seen[key] {
		return
	}
	seen[key] = true
	*out = append(*out, Cycle{RegionIDs: append([]int(nil), path...)})
}

func vertexSetKey(path []int) string {
	sorted := append([]int(nil), path...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	key := make([]byte, 0, len(sorted)*6)
	for _, v := range sorted {
		key = append(key, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), ',')
	}
	return string(key)
}
