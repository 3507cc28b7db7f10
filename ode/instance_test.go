package ode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
)

// TestInstanceFiresOnlyForStrictlyNewObjectIDs checks that a tracker
// re-reporting the same object id across frames does not refire the
// trigger, while a genuinely new, higher object id does, and that each
// fire stamps PRIMARY_METRIC with the count of new instances seen so far
// this frame.
func TestInstanceFiresOnlyForStrictlyNewObjectIDs(t *testing.T) {
	trg := NewInstance("inst", NewEventCounter(), nil, nil, nil)
	a := newCountingAction("a")
	trg.AddAction(a)

	rect := geometry.Rect{Width: 10, Height: 10}

	// Frame 1: two never-before-seen ids for the same (source, class)
	// pair both fire, stamped 1 and 2 in the order they were checked.
	f1 := frame(1, 1)
	trg.PreProcess(f1, display.Discard)

	first := obj(1, 5, rect)
	assert.True(t, trg.CheckForOccurrence(f1, first), "first sighting of id 5 should fire")
	got, ok := first.GetMisc(meta.PrimaryMetric)
	assert.True(t, ok)
	assert.Equal(t, 1.0, got)

	second := obj(1, 6, rect)
	assert.True(t, trg.CheckForOccurrence(f1, second), "first sighting of id 6 should fire")
	got, ok = second.GetMisc(meta.PrimaryMetric)
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)

	trg.PostProcess(f1)
	assert.Equal(t, 2, a.count())

	// Frame 2: the tracker re-reports id 6 (not a new max) and it must
	// not refire or get stamped.
	f2 := frame(1, 2)
	trg.PreProcess(f2, display.Discard)
	repeat := obj(1, 6, rect)
	assert.False(t, trg.CheckForOccurrence(f2, repeat), "re-reporting id 6 should not refire")
	_, ok = repeat.GetMisc(meta.PrimaryMetric)
	assert.False(t, ok, "an unfired object should not be stamped")
	trg.PostProcess(f2)
	assert.Equal(t, 2, a.count())

	// Frame 3: a strictly higher id fires again, and the per-frame
	// occurrence count restarts at 1.
	f3 := frame(1, 3)
	trg.PreProcess(f3, display.Discard)
	next := obj(1, 7, rect)
	assert.True(t, trg.CheckForOccurrence(f3, next), "a strictly higher id should fire")
	got, ok = next.GetMisc(meta.PrimaryMetric)
	assert.True(t, ok)
	assert.Equal(t, 1.0, got)
	trg.PostProcess(f3)
	assert.Equal(t, 3, a.count())
}
