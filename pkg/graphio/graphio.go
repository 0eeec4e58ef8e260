// Package graphio loads the minimal JSON graph format this module
// ingests: a flat list of tagged nodes and tagged edges, already
// extracted from whatever OSM acquisition pipeline produced them.
// Acquiring or filtering raw OSM data is out of scope (spec.md §1's
// Non-goals) — this package only turns an already-extracted graph
// into a *region.Graph. Grounded on pkg/osm/parser.go's node/way
// ingestion loop, adapted from "decode a .osm.pbf" to "decode a JSON
// node/edge list", and using goccy/go-json per the same drop-in idiom
// as pkg/segio.
package graphio

import (
	"fmt"
	"io"

	"crossroad/pkg/region"

	"github.com/goccy/go-json"
	"github.com/paulmach/osm"
)

// Node is one graph node as read from the wire format.
type Node struct {
	ID   region.NodeID     `json:"id"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
	Tags map[string]string `json:"tags"`
}

// Edge is one graph edge as read from the wire format.
type Edge struct {
	U    region.NodeID     `json:"u"`
	V    region.NodeID     `json:"v"`
	Tags map[string]string `json:"tags"`
}

// Graph is the wire format for a whole tagged graph: nodes plus the
// edges between them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Read decodes a Graph and builds the *region.Graph it describes. Edges
// referencing an unknown node id are rejected with an error naming the
// dangling endpoint, since the rest of the pipeline assumes every edge
// endpoint already has a node.
func Read(r io.Reader) (*region.Graph, error) {
	var wire Graph
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}

	g := region.NewGraph()
	for _, n := range wire.Nodes {
		g.AddNode(n.ID, n.X, n.Y, toOSMTags(n.Tags))
	}
	for _, e := range wire.Edges {
		if !g.HasNode(e.U) {
			return nil, fmt.Errorf("edge %d-%d references unknown node %d", e.U, e.V, e.U)
		}
		if !g.HasNode(e.V) {
			return nil, fmt.Errorf("edge %d-%d references unknown node %d", e.U, e.V, e.V)
		}
		g.AddEdge(e.U, e.V, toOSMTags(e.Tags))
	}
	return g, nil
}

// Write serializes a *region.Graph back into the wire format, the
// inverse of Read.
func Write(w io.Writer, g *region.Graph) error {
	wire := Graph{}
	seen := make(map[region.EdgeKey]bool)
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		wire.Nodes = append(wire.Nodes, Node{ID: id, X: n.X, Y: n.Y, Tags: fromOSMTags(n.Tags)})
		for _, ek := range g.EdgesAt(id) {
			if seen[ek] {
				continue
			}
			seen[ek] = true
			e := g.Edge(ek)
			wire.Edges = append(wire.Edges, Edge{U: ek.U, V: ek.V, Tags: fromOSMTags(e.Tags)})
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(wire)
}

func toOSMTags(m map[string]string) osm.Tags {
	if len(m) == 0 {
		return nil
	}
	tg := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tg = append(tg, osm.Tag{Key: k, Value: v})
	}
	return tg
}

func fromOSMTags(tg osm.Tags) map[string]string {
	if len(tg) == 0 {
		return nil
	}
	m := make(map[string]string, len(tg))
	for _, t := range tg {
		m[t.Key] = t.Value
	}
	return m
}
