package ode

import (
	"testing"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// TestAbsenceCountsRegardlessOfEnabled covers scenario 2: a disabled
// Absence trigger still tallies matches during the check phase (so a
// chained Trigger reading mid-frame state sees consistent counts), but
// PostProcess itself returns 0 while disabled.
func TestAbsenceCountsRegardlessOfEnabled(t *testing.T) {
	trg := NewAbsence("absence", NewEventCounter(), nil, nil, nil)
	trg.SetClassID(1)
	trg.SetEnabled(false)

	a := newCountingAction("a")
	trg.AddAction(a)

	f := frame(1, 1)
	trg.PreProcess(f, display.Discard)
	trg.CheckForOccurrence(f, obj(1, 1, geometry.Rect{Width: 5, Height: 5}))
	trg.CheckForOccurrence(f, obj(1, 2, geometry.Rect{Width: 5, Height: 5}))

	trg.propMu.Lock()
	matches := trg.matches
	trg.propMu.Unlock()
	if matches != 2 {
		t.Fatalf("matches tallied while disabled = %d, want 2", matches)
	}

	if got := trg.PostProcess(f); got != 0 {
		t.Fatalf("PostProcess() while disabled = %d, want 0", got)
	}
	if got := a.count(); got != 0 {
		t.Fatalf("action calls while disabled = %d, want 0", got)
	}

	f2 := frame(1, 2)
	trg.PreProcess(f2, display.Discard)
	// No class-1 objects this frame.
	if got := trg.PostProcess(f2); got != 0 {
		t.Fatalf("PostProcess() with zero matches but still disabled = %d, want 0", got)
	}
}

// TestAbsenceFiresOnZeroMatchesWhenEnabled sanity-checks the enabled path.
func TestAbsenceFiresOnZeroMatchesWhenEnabled(t *testing.T) {
	trg := NewAbsence("absence", NewEventCounter(), nil, nil, nil)
	trg.SetClassID(1)

	a := newCountingAction("a")
	trg.AddAction(a)

	f := frame(1, 1)
	trg.PreProcess(f, display.Discard)
	trg.PostProcess(f)
	if got := a.count(); got != 1 {
		t.Fatalf("action calls with zero matches, enabled = %d, want 1", got)
	}

	f2 := frame(1, 2)
	trg.PreProcess(f2, display.Discard)
	trg.CheckForOccurrence(f2, obj(1, 1, geometry.Rect{Width: 5, Height: 5}))
	trg.PostProcess(f2)
	if got := a.count(); got != 1 {
		t.Fatalf("action calls after a match, enabled = %d, want still 1", got)
	}
}
