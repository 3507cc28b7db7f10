package ode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// TestDistanceFixedPixelsInvertsRange covers scenario 5: a pair of
// class-3 objects 30px apart (within [0,50]) does not fire; moved to
// 80px apart (outside the range) fires once, invoking the Action twice
// (once per object in the pair).
func TestDistanceFixedPixelsInvertsRange(t *testing.T) {
	trg := NewDistance("dist", 3, 3, geometry.Any, FixedPixels, 0, 50, NewEventCounter(), nil, nil, nil)
	a := newCountingAction("a")
	trg.AddAction(a)

	// Two 10x10 boxes with a 30px gap between their nearest edges.
	near1 := geometry.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	near2 := geometry.Rect{Left: 40, Top: 0, Width: 10, Height: 10}

	f := frame(1, 1)
	trg.PreProcess(f, display.Discard)
	trg.CheckForOccurrence(f, obj(3, 1, near1))
	trg.CheckForOccurrence(f, obj(3, 2, near2))
	trg.PostProcess(f)

	assert.Zero(t, a.count(), "expected no calls at 30px separation (within range)")

	// Move them 80px apart between nearest edges.
	far1 := geometry.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	far2 := geometry.Rect{Left: 90, Top: 0, Width: 10, Height: 10}

	f2 := frame(1, 2)
	trg.PreProcess(f2, display.Discard)
	trg.CheckForOccurrence(f2, obj(3, 1, far1))
	trg.CheckForOccurrence(f2, obj(3, 2, far2))
	trg.PostProcess(f2)

	assert.Equal(t, 2, a.count(), "expected the pair to fire once, invoking the action for each object")
}
