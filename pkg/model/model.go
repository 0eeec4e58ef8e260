// Package model defines the final enriched intersection model: the
// Junction/Way/Channel/Branch/Crossing/Intersection types assembled by the
// driver from a built, linked, and merged Crossroad. Grounded on
// crdesc/description.py's description-building data classes and on
// pkg/region's Table ownership pattern for id allocation.
package model

import "crossroad/pkg/lanes"

// Role is a capability a Junction carries, accumulated rather than
// exclusive: a single node can be both a TrafficLight and a Crosswalk.
type Role string

const (
	RoleCrosswalk              Role = "crosswalk"
	RolePedestrianTrafficLight Role = "pedestrian_traffic_light"
	RoleTrafficLight           Role = "traffic_light"
	RoleBikebox                Role = "bikebox"
	RoleYield                  Role = "yield"
)

// TactilePaving records a crosswalk junction's tactile paving state.
type TactilePaving string

const (
	TactileNo        TactilePaving = "no"
	TactileYes       TactilePaving = "yes"
	TactileIncorrect TactilePaving = "incorrect"
)

// PedestrianNodeKind tags which pedestrian region a PedestrianNode names.
type PedestrianNodeKind int

const (
	PedestrianSidewalk PedestrianNodeKind = iota
	PedestrianIsland
)

// PedestrianNode is a tagged reference to a sidewalk or island id, per
// spec.md §3's Sidewalk(id) | Island(id) variant.
type PedestrianNode struct {
	Kind PedestrianNodeKind
	ID   string
}

func Sidewalk(id string) PedestrianNode { return PedestrianNode{Kind: PedestrianSidewalk, ID: id} }
func Island(id string) PedestrianNode   { return PedestrianNode{Kind: PedestrianIsland, ID: id} }

// JunctionID identifies a Junction within an Intersection.
type JunctionID int

// Junction is a node of the intersection model: a crossroad border or
// center node, or a pedestrian crossing point inserted along a branch.
// Roles accumulate; a crosswalk junction additionally carries
// TactilePaving and, once fully linked, exactly two PedestrianNodes.
type Junction struct {
	ID              JunctionID
	X, Y            float64
	Roles           map[Role]bool
	TactilePaving   TactilePaving
	PedestrianNodes []PedestrianNode
}

// NewJunction creates a Junction with an empty role set.
func NewJunction(id JunctionID, x, y float64) *Junction {
	return &Junction{ID: id, X: x, Y: y, Roles: map[Role]bool{}}
}

// AddRole accumulates a role; it never replaces roles already present.
func (j *Junction) AddRole(r Role) {
	j.Roles[r] = true
}

// HasRole reports whether the junction carries the given role.
func (j *Junction) HasRole(r Role) bool {
	return j.Roles[r]
}

// AttachPedestrianNode appends a pedestrian node reference, per spec.md
// §3's invariant that a fully-linked crosswalk carries exactly two.
func (j *Junction) AttachPedestrianNode(n PedestrianNode) {
	j.PedestrianNodes = append(j.PedestrianNodes, n)
}

// FullyLinked reports whether this crosswalk junction has both of its
// pedestrian-node references attached.
func (j *Junction) FullyLinked() bool {
	return len(j.PedestrianNodes) == 2
}

// WayID identifies a Way within an Intersection.
type WayID string

// Way is one OSM way's contribution to a branch: the pair of junctions it
// spans, its synthesized channels, and the sidewalk/island slots flanking
// it on each side.
type Way struct {
	ID        WayID
	Name      string
	Junctions [2]JunctionID
	Channels  []lanes.Channel
	// Sidewalks[0] is the left-side sidewalk id, Sidewalks[1] the right
	// side; "" means unassigned. Never both slots reference the same
	// sidewalk (spec.md §8).
	Sidewalks [2]string
	Islands   [2]string
}

// SetSidewalk assigns a sidewalk id to a side, refusing to duplicate an
// id already occupying the other side.
func (w *Way) SetSidewalk(side int, id string) bool {
	other := 1 - side
	if w.Sidewalks[other] == id && id != "" {
		return false
	}
	w.Sidewalks[side] = id
	return true
}

// SetIsland assigns an island id to a side, with the same no-duplicate
// rule as SetSidewalk.
func (w *Way) SetIsland(side int, id string) bool {
	other := 1 - side
	if w.Islands[other] == id && id != "" {
		return false
	}
	w.Islands[side] = id
	return true
}

// StreetName splits a resolved name into its head word and the rest, per
// spec.md §3's Branch.street_name: (head_word, rest). An unnamed branch
// has an empty head word.
type StreetName struct {
	HeadWord string
	Rest     string
}

// SplitStreetName splits a name on its first space.
func SplitStreetName(name string) StreetName {
	if name == "" {
		return StreetName{}
	}
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			return StreetName{HeadWord: name[:i], Rest: name[i+1:]}
		}
	}
	return StreetName{HeadWord: name}
}

// BranchID identifies a Branch within an Intersection.
type BranchID int

// CrossingID identifies a Crossing within an Intersection.
type CrossingID string

// Branch is one outward arm of the intersection: its clockwise number,
// its outward angle from the center, its resolved street name, the
// ordered ways composing it, and the pedestrian crossing attached to it,
// if any.
type Branch struct {
	ID         BranchID
	Number     int // 1-based clockwise index, per spec.md §3 and §8.
	AngleDeg   float64
	StreetName StreetName
	Ways       []WayID
	Crossing   *CrossingID
}

// Crossing is a retained pedestrian crossing: an ordered, non-empty list
// of crosswalk junction references, where any two consecutive crosswalks
// share at least one pedestrian node (spec.md §8).
type Crossing struct {
	ID         CrossingID
	Crosswalks []JunctionID
}

// Intersection is the final enriched output of one crossroad, spec.md
// §3's Intersection model.
type Intersection struct {
	CenterX, CenterY float64
	Branches         []*Branch
	Junctions        map[JunctionID]*Junction
	Ways             map[WayID]*Way
	Crossings        map[CrossingID]*Crossing
}

// NewIntersection creates an empty Intersection centered at (x, y).
func NewIntersection(x, y float64) *Intersection {
	return &Intersection{
		CenterX:   x,
		CenterY:   y,
		Junctions: map[JunctionID]*Junction{},
		Ways:      map[WayID]*Way{},
		Crossings: map[CrossingID]*Crossing{},
	}
}

// AddJunction registers a junction under its id.
func (in *Intersection) AddJunction(j *Junction) {
	in.Junctions[j.ID] = j
}

// AddWay registers a way under its id.
func (in *Intersection) AddWay(w *Way) {
	in.Ways[w.ID] = w
}

// AddCrossing registers a crossing under its id. It does not attach the
// crossing to any Branch; setting Branch.Crossing is the caller's
// responsibility (spec.md attaches a crossing by reference from a
// branch).
func (in *Intersection) AddCrossing(c *Crossing) {
	in.Crossings[c.ID] = c
}

// AddBranch appends a branch to the intersection's branch list.
func (in *Intersection) AddBranch(b *Branch) {
	in.Branches = append(in.Branches, b)
}

// JunctionTable is the explicit owned registry allocating JunctionIDs,
// replacing the originating implementation's module-level counter with a
// value the caller threads explicitly, per spec.md §9's refactor
// guidance (mirrors pkg/region.Table's ownership of region ids).
type JunctionTable struct {
	next JunctionID
}

// NewJunctionTable creates a table with its counter at zero.
func NewJunctionTable() *JunctionTable {
	return &JunctionTable{}
}

// Next allocates and returns the next unused JunctionID.
func (t *JunctionTable) Next() JunctionID {
	id := t.next
	t.next++
	return id
}
