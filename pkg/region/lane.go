package region

import "crossroad/pkg/geom"

// LaneDescription summarizes one lane (or channel) crossing a crossroad
// boundary: its bearing out of the crossroad center, its width in lane
// count, and whether it carries traffic toward or away from the center.
// Grounded on lib/crseg/lane_description.py's LaneDescription class.
type LaneDescription struct {
	// Bearing is the direction, in degrees from the crossroad center, that
	// this lane points.
	Bearing float64
	// StreetName is the resolved name of the way this lane runs along, or
	// "" if unnamed (spec.md §3's LaneDescription.street_name).
	StreetName string
	// Width is the lane's width in number of OSM lanes: the way's "lanes"
	// tag when it parses as an integer, else 1.
	Width float64
	// Inbound is true when traffic on this lane flows toward the crossroad
	// center.
	Inbound bool
	// Edge identifies the stored edge this lane was derived from, so later
	// stages (branch width, way selection) can look its tags back up.
	Edge EdgeKey
	// ExternalNode is the non-region endpoint this lane's branch leaves
	// through, i.e. the first node outside the crossroad along Edge.
	ExternalNode NodeID
}

// IsSimilar reports whether two lanes name the same street and point in
// roughly the same direction — angular distance under 90°, per spec.md
// §3's LaneDescription invariant.
func (l LaneDescription) IsSimilar(other LaneDescription) bool {
	return l.StreetName == other.StreetName && geom.AngularDistance(l.Bearing, other.Bearing) < 90
}

// IsOrthogonal reports whether two lanes point in roughly perpendicular
// directions: angular distance within 45° of 90° (spec.md §3).
func (l LaneDescription) IsOrthogonal(other LaneDescription) bool {
	return geom.IsOrthogonal(l.Bearing, other.Bearing, 45)
}

// Equals reports whether two lanes describe the same physical lane: same
// edge, same direction, and similar (IsSimilar: same name, bearings under
// 90° apart).
func (l LaneDescription) Equals(other LaneDescription) bool {
	return l.Edge == other.Edge && l.Inbound == other.Inbound && l.IsSimilar(other)
}
