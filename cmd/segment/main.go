// segment loads a tagged graph, runs the crossroad segmentation and
// enrichment pipeline, and emits the resulting segmentation as JSON.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crossroad/pkg/driver"
	"crossroad/pkg/graphio"
	"crossroad/pkg/region"
	"crossroad/pkg/segio"
)

func main() {
	input := flag.String("input", "", "Path to input graph JSON file")
	output := flag.String("output", "segmentation.json", "Output segmentation JSON file path")
	clusterScale := flag.Float64("cluster-scale", 3, "Radius multiplier used when merging nearby crossroads")
	boundaryScale := flag.Float64("boundary-scale", 2, "Radius multiplier used when extending a crossroad's boundary")
	maxCycleElements := flag.Int("max-cycle-elements", 10, "Maximum number of regions (crossroads and links) in one merged cycle")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: segment --input <graph.json> [--output segmentation.json]")
		os.Exit(1)
	}

	start := time.Now()

	log.Printf("Loading graph from %s...", *input)
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	g, err := graphio.Read(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes", len(g.NodeIDs()))

	cfg := driver.DefaultConfig()
	cfg.ClusterScale = *clusterScale
	cfg.BoundaryScale = *boundaryScale
	cfg.MaxCycleElements = *maxCycleElements

	log.Println("Segmenting and enriching crossroads...")
	result := driver.Run(g, cfg)
	log.Printf("Found %d crossroads, %d warnings", len(result.Crossroads), len(result.Warnings.All()))
	for _, w := range result.Warnings.All() {
		log.Printf("warning: %s", w.Error())
	}

	doc := toSegmentationDocuments(g, result)

	log.Printf("Writing segmentation to %s...", *output)
	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()
	if err := segio.Write(out, doc); err != nil {
		log.Fatalf("Failed to write segmentation: %v", err)
	}

	log.Printf("Done in %s. Output: %s", time.Since(start).Round(time.Millisecond), *output)
}

// toSegmentationDocuments converts every built crossroad into a segio
// Document: one "crossroad" entry for the crossroad region itself, plus
// one "branch" entry per branch group of lanes, in 1-based order.
func toSegmentationDocuments(g *region.Graph, result *driver.Result) []segio.Document {
	docs := make([]segio.Document, 0, len(result.Crossroads))
	for _, cr := range result.Crossroads {
		entry := regionToEntry(g, cr.Region, segio.EntryTypeCrossroad)
		doc := segio.Document{entry}
		for _, branch := range cr.Branches {
			doc = append(doc, branchToEntry(g, branch))
		}
		docs = append(docs, doc)
	}
	return docs
}

// branchToEntry converts one branch's lane group into a segio.Entry: the
// crossroad-side endpoint of each lane's edge as a border node, its
// outward neighbor as the matching inner node, per spec.md §6's branch
// entry shape.
func branchToEntry(g *region.Graph, branch []region.LaneDescription) segio.Entry {
	e := segio.Entry{
		Type:        segio.EntryTypeBranch,
		Coordinates: map[region.NodeID]segio.Coordinate{},
	}
	seen := map[region.NodeID]bool{}
	addNode := func(n region.NodeID, border bool) {
		if seen[n] {
			return
		}
		seen[n] = true
		if border {
			e.Nodes.Border = append(e.Nodes.Border, n)
		} else {
			e.Nodes.Inner = append(e.Nodes.Inner, n)
		}
		node := g.Node(n)
		e.Coordinates[n] = segio.Coordinate{X: node.X, Y: node.Y}
	}
	for _, lane := range branch {
		borderNode := lane.Edge.U
		if lane.ExternalNode == lane.Edge.U {
			borderNode = lane.Edge.V
		}
		addNode(borderNode, true)
		addNode(lane.ExternalNode, false)
		e.EdgesByNodes = append(e.EdgesByNodes, [2]region.NodeID{lane.Edge.U, lane.Edge.V})
	}
	return e
}

// regionToEntry converts a *region.Region into its segio.Entry
// representation: every node's inner/border classification, the edges
// between them, and each node's coordinate.
func regionToEntry(g *region.Graph, r *region.Region, entryType string) segio.Entry {
	e := segio.Entry{
		Type:        entryType,
		Coordinates: map[region.NodeID]segio.Coordinate{},
	}
	for _, n := range r.Nodes {
		if r.IsBoundaryNode(n) {
			e.Nodes.Border = append(e.Nodes.Border, n)
		} else {
			e.Nodes.Inner = append(e.Nodes.Inner, n)
		}
		node := g.Node(n)
		e.Coordinates[n] = segio.Coordinate{X: node.X, Y: node.Y}
	}
	for _, ek := range r.Edges {
		e.EdgesByNodes = append(e.EdgesByNodes, [2]region.NodeID{ek.U, ek.V})
	}
	return e
}
