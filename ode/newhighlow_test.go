package ode

import (
	"testing"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// TestNewHighPresetFiresOnStrictIncrease covers scenario 3: with a preset
// baseline of 5, observation counts 3,4,5,6,5,7 fire only on the frames
// producing 6 and 7 (the two that exceed the running baseline), ending
// with a baseline of 7.
func TestNewHighPresetFiresOnStrictIncrease(t *testing.T) {
	trg := NewNewHigh("high", 5, NewEventCounter(), nil, nil, nil)
	a := newCountingAction("a")
	trg.AddAction(a)

	counts := []int{3, 4, 5, 6, 5, 7}
	wantFires := []bool{false, false, false, true, false, true}

	for i, n := range counts {
		before := a.count()

		f := frame(1, uint64(i))
		trg.PreProcess(f, display.Discard)
		for j := 0; j < n; j++ {
			trg.CheckForOccurrence(f, obj(1, int64(j), geometry.Rect{Width: 1, Height: 1}))
		}
		trg.PostProcess(f)

		fired := a.count() > before
		if fired != wantFires[i] {
			t.Fatalf("frame %d (count=%d): fired=%v, want %v", i, n, fired, wantFires[i])
		}
	}

	if trg.baseline != 7 {
		t.Fatalf("final baseline = %d, want 7", trg.baseline)
	}
}

// TestNewLowPresetFiresOnStrictDecrease mirrors TestNewHighPresetFiresOnStrictIncrease for NewLow.
func TestNewLowPresetFiresOnStrictDecrease(t *testing.T) {
	trg := NewNewLow("low", 5, NewEventCounter(), nil, nil, nil)
	a := newCountingAction("a")
	trg.AddAction(a)

	counts := []int{6, 5, 4, 3, 4, 2}
	wantFires := []bool{false, false, true, true, false, true}

	for i, n := range counts {
		before := a.count()

		f := frame(1, uint64(i))
		trg.PreProcess(f, display.Discard)
		for j := 0; j < n; j++ {
			trg.CheckForOccurrence(f, obj(1, int64(j), geometry.Rect{Width: 1, Height: 1}))
		}
		trg.PostProcess(f)

		fired := a.count() > before
		if fired != wantFires[i] {
			t.Fatalf("frame %d (count=%d): fired=%v, want %v", i, n, fired, wantFires[i])
		}
	}

	if trg.baseline != 2 {
		t.Fatalf("final baseline = %d, want 2", trg.baseline)
	}
}
