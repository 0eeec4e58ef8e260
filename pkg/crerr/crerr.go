// Package crerr defines the sentinel error kinds the segmentation pipeline
// recognizes and a Warnings collector for non-fatal issues recorded along
// the way. Grounded on pkg/routing's ErrPointTooFar/ErrNoRoute sentinel
// pattern and pkg/api/handlers.go's errors.Is dispatch.
package crerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", ErrX) at the point of
// detection so errors.Is still matches after context is added.
var (
	// ErrMalformedSegmentation means the input JSON shape is wrong, a
	// referenced node is absent, or no entry of type "crossroad" exists.
	// Fatal for the document being read.
	ErrMalformedSegmentation = errors.New("malformed segmentation")

	// ErrUnreachableGraphState means a border walk failed to return to its
	// start within |V| steps, or a shortest path was requested between
	// disconnected nodes. The specific feature is skipped; enrichment
	// continues.
	ErrUnreachableGraphState = errors.New("unreachable graph state")

	// ErrInvalidTag means a tag expected to be numeric (lanes,
	// psv:lanes:*) could not be parsed. The edge falls back to the
	// default lane synthesis rule.
	ErrInvalidTag = errors.New("invalid tag value")

	// ErrAmbiguousEdgeDirection means an edge in a branch was found in
	// only one orientation when both were expected. Resolved by silently
	// trying the reverse; never fatal.
	ErrAmbiguousEdgeDirection = errors.New("ambiguous edge direction")
)

// Warning is one non-fatal issue recorded during a pipeline run, tagged
// with the sentinel kind it falls under and the entity it concerns.
type Warning struct {
	Kind   error
	Entity string
	Detail string
}

func (w Warning) Error() string {
	if w.Entity == "" {
		return fmt.Sprintf("%v: %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf("%v: %s: %s", w.Kind, w.Entity, w.Detail)
}

// Unwrap exposes the sentinel kind so errors.Is(err, crerr.ErrX) matches
// a Warning returned directly as an error, e.g. from pkg/segio.Read.
func (w Warning) Unwrap() error {
	return w.Kind
}

// Warnings accumulates Warning values across a driver run. The driver
// aggregates them but always emits whatever model could be built, per
// the policy that geometry primitives never raise — they return
// sentinels and let the caller decide whether to warn.
type Warnings struct {
	items []Warning
}

// Add records a warning under the given kind.
func (w *Warnings) Add(kind error, entity, detail string) {
	w.items = append(w.items, Warning{Kind: kind, Entity: entity, Detail: detail})
}

// Addf records a warning with a formatted detail.
func (w *Warnings) Addf(kind error, entity, format string, args ...interface{}) {
	w.Add(kind, entity, fmt.Sprintf(format, args...))
}

// All returns every warning recorded so far, in recording order.
func (w *Warnings) All() []Warning {
	return w.items
}

// CountOf returns how many recorded warnings match the given sentinel
// kind via errors.Is.
func (w *Warnings) CountOf(kind error) int {
	n := 0
	for _, it := range w.items {
		if errors.Is(it.Kind, kind) {
			n++
		}
	}
	return n
}

// Empty reports whether no warnings were recorded.
func (w *Warnings) Empty() bool {
	return len(w.items) == 0
}
