// queryserver loads a tagged graph, runs the crossroad segmentation and
// enrichment pipeline once at startup, and serves get_crossroad queries
// over HTTP against the in-memory result.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crossroad/pkg/driver"
	"crossroad/pkg/graphio"
	"crossroad/pkg/queryapi"
)

func main() {
	graphPath := flag.String("graph", "graph.json", "Path to input graph JSON file")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading graph from %s...", *graphPath)
	f, err := os.Open(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	g, err := graphio.Read(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse graph: %v", err)
	}
	log.Printf("Loaded: %d nodes", len(g.NodeIDs()))

	log.Println("Segmenting and enriching crossroads...")
	result := driver.Run(g, driver.DefaultConfig())
	log.Printf("Found %d crossroads, %d warnings", len(result.Crossroads), len(result.Warnings.All()))

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := queryapi.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := queryapi.NewHandlers(result)
	srv := queryapi.NewServer(cfg, handlers)

	if err := queryapi.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
