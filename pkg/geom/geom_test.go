package geom

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name             string
		a, b             Point
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name:             "Singapore CBD to Changi Airport",
			a:                Point{X: 103.8513, Y: 1.2830},
			b:                Point{X: 103.9915, Y: 1.3644},
			wantMeters:       18_023,
			tolerancePercent: 1,
		},
		{
			name:             "same point",
			a:                Point{X: 103.8198, Y: 1.3521},
			b:                Point{X: 103.8198, Y: 1.3521},
			wantMeters:       0,
			tolerancePercent: 0,
		},
		{
			name:             "short distance (~100m)",
			a:                Point{X: 103.8198, Y: 1.3521},
			b:                Point{X: 103.8198, Y: 1.3530},
			wantMeters:       100,
			tolerancePercent: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			tolerance := tt.wantMeters * tt.tolerancePercent / 100
			if tolerance == 0 {
				tolerance = 0.01
			}
			if diff := got - tt.wantMeters; diff < -tolerance || diff > tolerance {
				t.Errorf("Distance() = %v, want %v +/- %v", got, tt.wantMeters, tolerance)
			}
		})
	}
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := Point{X: 0, Y: 0}

	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"due north", Point{X: 0, Y: 1}, 0},
		{"due east", Point{X: 1, Y: 0}, 90},
		{"due south", Point{X: 0, Y: -1}, 180},
		{"due west", Point{X: -1, Y: 0}, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(origin, tt.to)
			if AngularDistance(got, tt.want) > 1 {
				t.Errorf("Bearing() = %v, want ~%v", got, tt.want)
			}
		})
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{10, 20, 10},
		{350, 10, 20},
		{0, 180, 180},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := AngularDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("AngularDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsOrthogonal(t *testing.T) {
	if !IsOrthogonal(0, 90, 45) {
		t.Error("expected 90 deg away from 0 to be orthogonal")
	}
	if !IsOrthogonal(0, 270, 45) {
		t.Error("expected 270 deg away from 0 to be orthogonal")
	}
	if IsOrthogonal(0, 10, 45) {
		t.Error("expected 10 deg away from 0 not to be orthogonal")
	}
}

func TestSignedAreaClockwiseSquare(t *testing.T) {
	// a small square traversed clockwise in (lon, lat) screen-like
	// orientation (y increases "up" but the shoelace convention used here
	// treats it the same as spec.md §4.1).
	square := []Point{
		{X: 0, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 0},
	}
	area := SignedArea(square)
	if area == 0 {
		t.Fatal("expected non-zero signed area")
	}
	reversedArea := SignedArea(Reversed(square))
	if (area >= 0) == (reversedArea >= 0) {
		t.Errorf("reversing the ring should flip orientation: %v vs %v", area, reversedArea)
	}
}

func TestCentroid(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	c := Centroid(pts)
	if c.X != 1 || c.Y != 1 {
		t.Errorf("Centroid() = %+v, want {1 1}", c)
	}
}

func TestPathLength(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}}
	if got := PathLength(pts); got != 0 {
		t.Errorf("PathLength() of coincident points = %v, want 0", got)
	}
}
