package region

// HighwayClass is the OSM highway tag value used to key the boundary
// distance thresholds of spec.md §4.4. Link variants ("motorway_link" etc.)
// reuse their base class's thresholds (see baseClass below).
type HighwayClass string

const (
	ClassMotorway     HighwayClass = "motorway"
	ClassTrunk        HighwayClass = "trunk"
	ClassPrimary      HighwayClass = "primary"
	ClassSecondary    HighwayClass = "secondary"
	ClassTertiary     HighwayClass = "tertiary"
	ClassUnclassified HighwayClass = "unclassified"
	ClassResidential  HighwayClass = "residential"
	ClassLivingStreet HighwayClass = "living_street"
	ClassService      HighwayClass = "service"
	ClassDefault      HighwayClass = "default"
)

// classRank orders highway classes from fastest to slowest, used to pick
// "the maximum highway class over all branches" (spec.md §4.4).
var classRank = map[HighwayClass]int{
	ClassMotorway:     0,
	ClassTrunk:        1,
	ClassPrimary:      2,
	ClassSecondary:    3,
	ClassTertiary:     4,
	ClassUnclassified: 5,
	ClassResidential:  5,
	ClassLivingStreet: 6,
	ClassService:      7,
	ClassDefault:      8,
}

type boundaryThreshold struct {
	min, max float64
}

var boundaryThresholds = map[HighwayClass]boundaryThreshold{
	ClassMotorway:     {100, 100},
	ClassTrunk:        {100, 100},
	ClassPrimary:      {50, 80},
	ClassSecondary:    {25, 80},
	ClassTertiary:     {20, 50},
	ClassUnclassified: {15, 40},
	ClassResidential:  {15, 40},
	ClassLivingStreet: {10, 30},
	ClassService:      {6, 20},
	ClassDefault:      {6, 25},
}

// BaseClass strips a "_link" suffix, since link variants of a class reuse
// the base class's thresholds.
func BaseClass(tagValue string) HighwayClass {
	const suffix = "_link"
	if len(tagValue) > len(suffix) && tagValue[len(tagValue)-len(suffix):] == suffix {
		tagValue = tagValue[:len(tagValue)-len(suffix)]
	}
	c := HighwayClass(tagValue)
	if _, ok := boundaryThresholds[c]; !ok {
		return ClassDefault
	}
	return c
}

// MinBoundaryDistance returns the minimum boundary distance threshold in
// meters for a highway class.
func MinBoundaryDistance(c HighwayClass) float64 {
	if t, ok := boundaryThresholds[c]; ok {
		return t.min
	}
	return boundaryThresholds[ClassDefault].min
}

// MaxBoundaryDistance returns the maximum boundary distance threshold in
// meters for a highway class.
func MaxBoundaryDistance(c HighwayClass) float64 {
	if t, ok := boundaryThresholds[c]; ok {
		return t.max
	}
	return boundaryThresholds[ClassDefault].max
}

// FastestClass returns whichever of a and b ranks closer to motorway (lower
// rank number), used when picking "the maximum highway class over all
// branches" (faster roads rank as the "maximum" class in spec.md's table,
// since motorway sits at the top with the widest thresholds).
func FastestClass(a, b HighwayClass) HighwayClass {
	ra, oka := classRank[a]
	rb, okb := classRank[b]
	if !oka {
		return b
	}
	if !okb {
		return a
	}
	if ra <= rb {
		return a
	}
	return b
}
