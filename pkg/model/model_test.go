package model

import "testing"

func TestJunctionRolesAccumulate(t *testing.T) {
	j := NewJunction(0, 1, 2)
	j.AddRole(RoleTrafficLight)
	j.AddRole(RoleCrosswalk)

	if !j.HasRole(RoleTrafficLight) || !j.HasRole(RoleCrosswalk) {
		t.Error("expected both roles to accumulate")
	}
	if j.HasRole(RoleYield) {
		t.Error("did not expect an unset role")
	}
}

func TestJunctionFullyLinkedAfterTwoPedestrianNodes(t *testing.T) {
	j := NewJunction(0, 0, 0)
	if j.FullyLinked() {
		t.Error("should not be fully linked with zero pedestrian nodes")
	}
	j.AttachPedestrianNode(Sidewalk("s0"))
	if j.FullyLinked() {
		t.Error("should not be fully linked with one pedestrian node")
	}
	j.AttachPedestrianNode(Island("i0"))
	if !j.FullyLinked() {
		t.Error("expected fully linked after two pedestrian nodes")
	}
}

func TestWaySidewalkSlotsRejectDuplicate(t *testing.T) {
	w := &Way{ID: "w0"}
	if !w.SetSidewalk(0, "s0") {
		t.Fatal("expected left slot assignment to succeed")
	}
	if w.SetSidewalk(1, "s0") {
		t.Error("expected right slot to reject the same sidewalk id already on the left")
	}
	if !w.SetSidewalk(1, "s1") {
		t.Error("expected right slot to accept a distinct sidewalk id")
	}
}

func TestSplitStreetName(t *testing.T) {
	cases := []struct {
		name string
		want StreetName
	}{
		{"Rue de la Paix", StreetName{HeadWord: "Rue", Rest: "de la Paix"}},
		{"Broadway", StreetName{HeadWord: "Broadway", Rest: ""}},
		{"", StreetName{}},
	}
	for _, c := range cases {
		got := SplitStreetName(c.name)
		if got != c.want {
			t.Errorf("SplitStreetName(%q) = %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestJunctionTableAllocatesSequentialIDs(t *testing.T) {
	table := NewJunctionTable()
	a := table.Next()
	b := table.Next()
	if a != 0 || b != 1 {
		t.Errorf("got ids %d, %d, want 0, 1", a, b)
	}
}

func TestIntersectionRegistersEntities(t *testing.T) {
	in := NewIntersection(10, 20)
	j := NewJunction(0, 10, 20)
	in.AddJunction(j)
	in.AddWay(&Way{ID: "w0"})
	in.AddCrossing(&Crossing{ID: "c0", Crosswalks: []JunctionID{0}})
	in.AddBranch(&Branch{ID: 0, Number: 1})

	if len(in.Junctions) != 1 || len(in.Ways) != 1 || len(in.Crossings) != 1 || len(in.Branches) != 1 {
		t.Errorf("Intersection = %+v, want one of each entity", in)
	}
}
