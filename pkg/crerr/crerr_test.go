package crerr

import (
	"errors"
	"testing"
)

func TestWarningUnwrapMatchesSentinelViaErrorsIs(t *testing.T) {
	var err error = &Warning{Kind: ErrMalformedSegmentation, Entity: "doc", Detail: "bad shape"}
	if !errors.Is(err, ErrMalformedSegmentation) {
		t.Error("expected errors.Is to match the wrapped sentinel kind")
	}
	if errors.Is(err, ErrInvalidTag) {
		t.Error("expected errors.Is not to match an unrelated sentinel")
	}
}

func TestWarningsCountOf(t *testing.T) {
	var w Warnings
	w.Add(ErrInvalidTag, "edge 1", "non-numeric lanes")
	w.Addf(ErrInvalidTag, "edge 2", "non-numeric %s", "psv:lanes:forward")
	w.Add(ErrUnreachableGraphState, "node 9", "border walk did not return")

	if got := w.CountOf(ErrInvalidTag); got != 2 {
		t.Errorf("CountOf(ErrInvalidTag) = %d, want 2", got)
	}
	if got := w.CountOf(ErrAmbiguousEdgeDirection); got != 0 {
		t.Errorf("CountOf(ErrAmbiguousEdgeDirection) = %d, want 0", got)
	}
	if w.Empty() {
		t.Error("expected Empty to be false after recording warnings")
	}
	if len(w.All()) != 3 {
		t.Errorf("got %d warnings, want 3", len(w.All()))
	}
}

func TestWarningsEmpty(t *testing.T) {
	var w Warnings
	if !w.Empty() {
		t.Error("expected a fresh Warnings to be empty")
	}
}
