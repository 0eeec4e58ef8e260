package crossing

import "testing"

func TestBuildKeepsDirectCrossingOnly(t *testing.T) {
	crosswalks := []Crosswalk{
		{ID: 0, A: "s0", B: "s1", NodeA: 1, NodeB: 2},
	}
	out := Build(crosswalks, []RegionID{"s0", "s1"})
	if len(out) != 1 {
		t.Fatalf("got %d crossings, want 1", len(out))
	}
}

func TestBuildRejectsChainThroughThirdSidewalk(t *testing.T) {
	crosswalks := []Crosswalk{
		{ID: 0, A: "s0", B: "s1", NodeA: 1, NodeB: 2},
		{ID: 1, A: "s1", B: "s2", NodeA: 2, NodeB: 3},
	}
	out := Build(crosswalks, []RegionID{"s0", "s2"})
	if len(out) != 0 {
		t.Errorf("expected no crossing between s0 and s2 via s1, got %d", len(out))
	}
}

func TestDedupKeepsBorderCrosswalk(t *testing.T) {
	crosswalks := []Crosswalk{
		{ID: 0, A: "s0", B: "s1", NodeA: 1, NodeB: 2, OnBorder: false},
		{ID: 1, A: "s1", B: "s0", NodeA: 2, NodeB: 1, OnBorder: true},
	}
	out := Dedup(crosswalks)
	if len(out) != 1 {
		t.Fatalf("got %d crosswalks, want 1", len(out))
	}
	if !out[0].OnBorder {
		t.Error("expected the border crosswalk to survive dedup")
	}
}

func TestAttachesToBranch(t *testing.T) {
	c := Crossing{Crosswalks: []Crosswalk{{A: "s0", B: "s1"}}}
	match := map[RegionID]bool{"s0": true, "s1": true}
	mismatch := map[RegionID]bool{"s0": true, "s2": true}

	if !AttachesToBranch(c, match) {
		t.Error("expected matching sidewalk set to attach")
	}
	if AttachesToBranch(c, mismatch) {
		t.Error("expected mismatched sidewalk set not to attach")
	}
}
