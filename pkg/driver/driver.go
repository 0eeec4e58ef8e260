// Package driver orchestrates the full segmentation-and-enrichment
// pipeline of spec.md §4.11: scoring, crossroad growth, cluster merging,
// link construction, cycle/pair merging, and per-crossroad enrichment
// into the final Intersection model. Grounded on lib/crseg/crossroads.py's
// CrossroadsDetector.run driver and cmd/preprocess's staged pipeline
// structure.
package driver

import (
	"log"
	"math"
	"strconv"

	"crossroad/pkg/builder"
	"crossroad/pkg/cluster"
	"crossroad/pkg/crerr"
	"crossroad/pkg/crossing"
	"crossroad/pkg/geom"
	"crossroad/pkg/lanes"
	"crossroad/pkg/link"
	"crossroad/pkg/model"
	"crossroad/pkg/pedestrian"
	"crossroad/pkg/region"
	"crossroad/pkg/reliability"
	"crossroad/pkg/walk"

	"github.com/tidwall/rtree"
)

// Config collects every option spec.md §6 recognizes.
type Config struct {
	// Init, when false, rebuilds regions from stored labels instead of
	// scoring fresh. Driving that path requires a loader that restores
	// region labels; Run always takes the fresh-scoring path since this
	// package owns no loader (segio does).
	Init bool
	// ConnectionIntensity0 multiplies the crossroad builder's boundary
	// thresholds (passed through as builder.Config.BoundaryScale's sibling
	// knob at the C4 stage is kept separate as BoundaryScale below;
	// ConnectionIntensity0 is reserved for parity with the three-stage
	// naming of spec.md §6 and currently unused by any component — C4
	// uses BoundaryScale directly).
	ConnectionIntensity0 float64
	// ConnectionIntensity1 multiplies the C6 pair-retention threshold.
	ConnectionIntensity1 float64
	// ConnectionIntensity2 multiplies the C6 cycle-retention threshold.
	ConnectionIntensity2 float64
	MaxCycleElements     int
	ClusterScale         float64
	BoundaryScale        float64
}

// DefaultConfig returns spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		Init:                 true,
		ConnectionIntensity0: link.DefaultConnectionIntensity,
		ConnectionIntensity1: link.DefaultConnectionIntensity,
		ConnectionIntensity2: link.DefaultConnectionIntensity,
		MaxCycleElements:     link.DefaultMaxCycleElements,
		ClusterScale:         cluster.DefaultScale,
		BoundaryScale:        2,
	}
}

// Result is the outcome of one pipeline run: every final crossroad with
// its enriched Intersection model, plus any warnings recorded along the
// way.
type Result struct {
	Graph         *region.Graph
	Table         *region.Table
	Crossroads    []*region.Crossroad
	Intersections map[int]*model.Intersection
	Warnings      *crerr.Warnings

	index rtree.RTreeG[*region.Crossroad]
}

// Run executes the full pipeline of spec.md §4.11 against g and returns
// every resulting crossroad, enriched.
func Run(g *region.Graph, cfg Config) *Result {
	res := &Result{Graph: g, Table: region.NewTable(), Warnings: &crerr.Warnings{}}

	nodes, edges := reliability.ScoreGraph(g)

	bcfg := builder.DefaultConfig()
	bcfg.BoundaryScale = cfg.BoundaryScale

	seeds := builder.Seeds(g, nodes, edges)
	var crossroads []*region.Crossroad
	for _, seed := range seeds {
		if g.NodeRegion(seed) != region.UnlabeledRegion {
			continue
		}
		cr := builder.Build(g, seed, nodes, edges, bcfg, res.Table)
		if cr == nil {
			continue
		}
		if cr.IsStraightCrossing() {
			res.Table.Unregister(cr.ID)
			cr.Clear()
			continue
		}
		builder.ComputeLanes(g, cr)
		crossroads = append(crossroads, cr)
	}
	log.Printf("driver: %d crossroads seeded", len(crossroads))

	crossroads = cluster.MergeAll(g, crossroads, nodes, cfg.ClusterScale, res.Table)
	for _, cr := range crossroads {
		builder.ComputeLanes(g, cr)
	}
	log.Printf("driver: %d crossroads after clustering", len(crossroads))

	links := buildLinks(g, crossroads, res.Table)
	conns := link.Build(crossroads, links)

	pairs := link.FindPairs(g, conns, nodes, cfg.ConnectionIntensity1)
	crossroads = mergePairs(g, crossroads, pairs, res.Table)

	conns = link.Build(crossroads, buildLinks(g, crossroads, res.Table))
	crossroads = mergeCycles(g, crossroads, conns, nodes, cfg, res.Table)
	log.Printf("driver: %d crossroads after link/cycle merging", len(crossroads))

	res.Crossroads = crossroads
	res.Intersections = map[int]*model.Intersection{}
	for _, cr := range crossroads {
		builder.ComputeLanes(g, cr)
		extendBoundary(g, cr, nodes, edges, cfg.BoundaryScale)
		builder.ComputeLanes(g, cr)
		res.Intersections[cr.ID] = Assemble(g, cr, res.Warnings)
		res.index.Insert(
			[2]float64{cr.Graph.Node(cr.Center).X, cr.Graph.Node(cr.Center).Y},
			[2]float64{cr.Graph.Node(cr.Center).X, cr.Graph.Node(cr.Center).Y},
			cr,
		)
	}

	return res
}

// buildLinks grows a Link region from every boundary edge of every
// crossroad that leads into unlabeled graph, plus a single-node link for
// boundary nodes with no such edge, per spec.md §4.6.
func buildLinks(g *region.Graph, crossroads []*region.Crossroad, table *region.Table) []*region.Link {
	var out []*region.Link
	for _, cr := range crossroads {
		for _, b := range cr.BoundaryNodes() {
			for _, nb := range g.Neighbors(b) {
				if cr.HasNode(nb) || g.NodeRegion(nb) != region.UnlabeledRegion {
					continue
				}
				ek, ok := g.EdgeBetween(b, nb)
				if !ok || g.EdgeRegion(ek) != region.UnlabeledRegion {
					continue
				}
				l := region.NewLink(g, table)
				l.GrowFromEdge(b, nb)
				out = append(out, l)
			}
		}
	}
	return out
}

// mergePairs applies every retained pair (spec.md §4.6) via
// link.MergePair, folding the surviving crossroad list down as regions
// are absorbed.
func mergePairs(g *region.Graph, crossroads []*region.Crossroad, pairs []link.Pair, table *region.Table) []*region.Crossroad {
	byID := map[int]*region.Crossroad{}
	for _, cr := range crossroads {
		byID[cr.ID] = cr
	}
	for _, p := range pairs {
		a, ok1 := byID[p.A.ID]
		b, ok2 := byID[p.B.ID]
		if !ok1 || !ok2 || a == b {
			continue
		}
		survivor := link.MergePair(g, link.Pair{A: a, B: b, Via: p.Via, Path: p.Path}, table)
		delete(byID, b.ID)
		byID[survivor.ID] = survivor
	}
	out := make([]*region.Crossroad, 0, len(byID))
	for _, cr := range byID {
		out = append(out, cr)
	}
	return out
}

// mergeCycles finds and merges bounded cycles in the crossroad-link
// adjacency graph (spec.md §4.6).
func mergeCycles(g *region.Graph, crossroads []*region.Crossroad, conns *link.Connections, nodes map[region.NodeID]reliability.NodeScore, cfg Config, table *region.Table) []*region.Crossroad {
	byID := map[int]*region.Crossroad{}
	regionByID := map[int]*region.Region{}
	for _, cr := range crossroads {
		byID[cr.ID] = cr
		regionByID[cr.ID] = cr.Region
	}
	for _, l := range conns.Links {
		regionByID[l.ID] = l.Region
	}

	centerDistance := func(a, b int) float64 {
		crA, okA := byID[a]
		crB, okB := byID[b]
		if !okA || !okB {
			return 0
		}
		return g.Distance(crA.Center, crB.Center)
	}
	branchWidth := func(id int) float64 {
		cr, ok := byID[id]
		if !ok {
			return 0
		}
		return link.BranchWidth(g, cr.Lanes)
	}

	cycles := conns.FindCycles(centerDistance, branchWidth, cfg.ConnectionIntensity2, cfg.MaxCycleElements)
	for _, cyc := range cycles {
		survivor := link.MergeCycle(g, cyc, regionByID, byID, table)
		if survivor == nil {
			continue
		}
		for _, id := range cyc.RegionIDs {
			if id != survivor.ID {
				delete(byID, id)
			}
		}
		byID[survivor.ID] = survivor
	}

	out := make([]*region.Crossroad, 0, len(byID))
	for _, cr := range byID {
		out = append(out, cr)
	}
	return out
}

// extendBoundary adds boundary extensions bounded by scale × radius past
// the current boundary, per spec.md §4.11's final enrichment step. It
// re-runs a restricted walkOutward-style extension: for every boundary
// node, any unlabeled neighbor within scale*cr.Radius of the center is
// absorbed, stopping (as the builder does) at a strongly-yes boundary
// node. It adds no inner chords: an edge between two nodes already in
// the region is not added by this step.
func extendBoundary(g *region.Graph, cr *region.Crossroad, nodes map[region.NodeID]reliability.NodeScore, edges map[region.EdgeKey]reliability.EdgeScore, scale float64) {
	if scale <= 0 {
		scale = 2
	}
	limit := scale * cr.Radius
	if limit <= 0 {
		return
	}
	changed := true
	for changed {
		changed = false
		for _, b := range cr.BoundaryNodes() {
			for _, nb := range g.Neighbors(b) {
				if cr.HasNode(nb) || g.NodeRegion(nb) != region.UnlabeledRegion {
					continue
				}
				if g.Distance(cr.Center, nb) > limit {
					continue
				}
				if nodes[b].Boundary.IsStronglyYes() {
					continue
				}
				cr.AddNode(nb)
				cr.AddEdgeBetween(b, nb)
				changed = true
			}
		}
	}
}

// GetCrossroad returns the crossroad whose center is closest by
// great-circle distance to (lat, lon), per spec.md §4.11.
func (r *Result) GetCrossroad(lat, lon float64) (*region.Crossroad, bool) {
	if len(r.Crossroads) == 0 {
		return nil, false
	}
	var best *region.Crossroad
	bestDist := math.Inf(1)
	target := geom.Point{X: lon, Y: lat}
	// Expanding-box search keeps the common case O(1) against the
	// r-tree; falls back to a full scan if nothing is found within a
	// generous box (e.g. a query far outside any built intersection).
	for _, half := range []float64{0.001, 0.01, 0.1, 1, 10} {
		found := false
		r.index.Search(
			[2]float64{lon - half, lat - half},
			[2]float64{lon + half, lat + half},
			func(min, max [2]float64, cr *region.Crossroad) bool {
				found = true
				d := geom.Distance(target, cr.Graph.Node(cr.Center).Point())
				if d < bestDist {
					bestDist = d
					best = cr
				}
				return true
			},
		)
		if found {
			return best, true
		}
	}
	for _, cr := range r.Crossroads {
		d := geom.Distance(target, cr.Graph.Node(cr.Center).Point())
		if d < bestDist {
			bestDist = d
			best = cr
		}
	}
	return best, best != nil
}

// Assemble builds the final Intersection model for one enriched
// crossroad: roles/border walk/branches/sidewalks/islands/crossings/
// channels, per spec.md §3 and §§4.7-4.10.
func Assemble(g *region.Graph, cr *region.Crossroad, warnings *crerr.Warnings) *model.Intersection {
	center := g.Node(cr.Center)
	in := model.NewIntersection(center.X, center.Y)
	jt := model.NewJunctionTable()

	roles := walk.Classify(g, cr)

	borders := cr.BoundaryNodes()
	var start region.NodeID
	haveStart := false
	for _, b := range borders {
		for _, nb := range g.Neighbors(b) {
			if roles[nb] == walk.External {
				start = nb
				haveStart = true
				break
			}
		}
		if haveStart {
			break
		}
	}

	jIDs := map[region.NodeID]model.JunctionID{}
	junctionFor := func(n region.NodeID) model.JunctionID {
		if id, ok := jIDs[n]; ok {
			return id
		}
		id := jt.Next()
		jIDs[n] = id
		pt := g.Node(n).Point()
		j := model.NewJunction(id, pt.X, pt.Y)
		if g.Node(n).Tags.Find("traffic_signals") == "yes" || g.Node(n).Tags.Find("highway") == "traffic_signals" {
			j.AddRole(model.RoleTrafficLight)
		}
		if g.Node(n).Tags.Find("crossing") != "" {
			j.AddRole(model.RoleCrosswalk)
			tp := g.Node(n).Tags.Find("tactile_paving")
			switch tp {
			case "yes":
				j.TactilePaving = model.TactileYes
			case "incorrect":
				j.TactilePaving = model.TactileIncorrect
			default:
				j.TactilePaving = model.TactileNo
			}
		}
		in.AddJunction(j)
		return id
	}
	junctionFor(cr.Center)
	for _, b := range borders {
		junctionFor(b)
	}

	if !haveStart {
		return in
	}

	walkSteps := walk.BorderWalk(g, cr, roles, start)
	if walkSteps == nil {
		warnings.Add(crerr.ErrUnreachableGraphState, "crossroad", "border walk produced no steps")
		return in
	}

	branches := walk.NumberBranches(cr.Branches)
	branchOf := map[region.NodeID]int{}
	for bi, branch := range branches {
		mb := &model.Branch{
			ID:       model.BranchID(bi),
			Number:   bi + 1,
			AngleDeg: branchBearingOf(branch),
		}
		var ways []walk.Way
		for _, l := range branch {
			branchOf[l.ExternalNode] = bi
			ways = append(ways, walk.Way{Bearing: l.Bearing, Name: l.StreetName})
			wid := model.WayID(edgeWayID(l.Edge))
			wayName := l.StreetName
			if wayName == "" {
				wayName = walk.UnnamedWayPlaceholder
			}
			w := &model.Way{ID: wid, Name: wayName, Junctions: [2]model.JunctionID{junctionFor(l.Edge.U), junctionFor(l.Edge.V)}}
			w.Channels = lanes.Synthesize(g.Edge(l.Edge), borderSet(borders))
			in.AddWay(w)
			mb.Ways = append(mb.Ways, wid)
		}
		_, name := walk.WaySelection(ways)
		mb.StreetName = model.SplitStreetName(name)
		in.AddBranch(mb)
	}

	sidewalks := pedestrian.Sidewalks(walkSteps, roles, branchOf)
	islands := pedestrian.Islands(g, cr, roles)

	var crosswalks []crossing.Crosswalk
	cwID := 0
	sidewalkIDs := make([]crossing.RegionID, len(sidewalks))
	for i, sw := range sidewalks {
		sidewalkIDs[i] = crossing.RegionID(sidewalkRegionID(sw.ID))
	}
	for _, sw := range sidewalks {
		for _, isl := range islands {
			if adjacentPedestrianRegions(sw, isl) {
				crosswalks = append(crosswalks, crossing.Crosswalk{
					ID: cwID, A: crossing.RegionID(sidewalkRegionID(sw.ID)), B: crossing.RegionID(islandRegionID(isl.ID)),
					NodeA: sw.Nodes[0], NodeB: isl.Nodes[0],
				})
				cwID++
			}
		}
	}
	crosswalks = crossing.Dedup(crosswalks)
	allIDs := append([]crossing.RegionID(nil), sidewalkIDs...)
	for _, isl := range islands {
		allIDs = append(allIDs, crossing.RegionID(islandRegionID(isl.ID)))
	}
	builtCrossings := crossing.Build(crosswalks, allIDs)

	for ci, bc := range builtCrossings {
		cid := model.CrossingID(crossingRegionID(ci))
		var jrefs []model.JunctionID
		for _, cw := range bc.Crosswalks {
			jrefs = append(jrefs, junctionFor(cw.NodeA), junctionFor(cw.NodeB))
		}
		in.AddCrossing(&model.Crossing{ID: cid, Crosswalks: jrefs})
		for bi, b := range in.Branches {
			bs := map[crossing.RegionID]bool{}
			for _, sw := range sidewalks {
				if branchOf[sw.Nodes[0]] == bi || branchOf[sw.Nodes[len(sw.Nodes)-1]] == bi {
					bs[crossing.RegionID(sidewalkRegionID(sw.ID))] = true
				}
			}
			if crossing.AttachesToBranch(bc, bs) {
				c := cid
				b.Crossing = &c
			}
		}
	}

	return in
}

func branchBearingOf(branch []region.LaneDescription) float64 {
	if len(branch) == 0 {
		return 0
	}
	return branch[0].Bearing
}

func borderSet(borders []region.NodeID) map[region.NodeID]bool {
	set := map[region.NodeID]bool{}
	for _, b := range borders {
		set[b] = true
	}
	return set
}

func adjacentPedestrianRegions(sw pedestrian.Sidewalk, isl pedestrian.Island) bool {
	islandNodes := map[region.NodeID]bool{}
	for _, n := range isl.Nodes {
		islandNodes[n] = true
	}
	for _, n := range sw.Nodes {
		if islandNodes[n] {
			return true
		}
	}
	return false
}

func edgeWayID(ek region.EdgeKey) string {
	return nodePairID(ek.U, ek.V)
}

func nodePairID(u, v region.NodeID) string {
	if u <= v {
		return strconv.FormatInt(int64(u), 10) + "_" + strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatInt(int64(v), 10) + "_" + strconv.FormatInt(int64(u), 10)
}

func sidewalkRegionID(id int) string { return "s" + strconv.Itoa(id) }
func islandRegionID(id int) string   { return "i" + strconv.Itoa(id) }
func crossingRegionID(id int) string { return "c" + strconv.Itoa(id) }
