package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// newExtreme is the shared implementation behind NewHigh and NewLow: both
// count matches and fire once per frame when the count crosses a
// baseline seeded by a caller-supplied preset, in opposite directions.
type newExtreme struct {
	baseTrigger
	preset   uint
	baseline uint
	count    uint
	greater  bool // true for NewHigh, false for NewLow
}

func newNewExtreme(name string, greater bool, preset uint, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) newExtreme {
	return newExtreme{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		greater:     greater,
		preset:      preset,
		baseline:    preset,
	}
}

// SetPreset resets the current baseline to n, as if the Trigger were
// freshly constructed with that preset.
func (t *newExtreme) SetPreset(n uint) {
	t.propMu.Lock()
	defer t.propMu.Unlock()
	t.preset = n
	t.baseline = n
}

func (t *newExtreme) preProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.count = 0
	t.propMu.Unlock()
}

func (t *newExtreme) checkForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}
	if !t.checkForWithin(obj.Rect) {
		return false
	}

	t.propMu.Lock()
	t.count++
	t.propMu.Unlock()
	return true
}

func (t *newExtreme) postProcess(frame *meta.Frame) uint {
	t.propMu.Lock()
	count, baseline := t.count, t.baseline
	t.propMu.Unlock()

	var isNew bool
	if t.greater {
		isNew = count > baseline
	} else {
		isNew = count < baseline
	}

	if isNew {
		t.propMu.Lock()
		t.baseline = count
		t.propMu.Unlock()
	}

	if !isNew || !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	t.fireActions(frame, nil)
	return count
}

// Reset restores the baseline to the originally configured preset, in
// addition to the shared triggered-count reset.
func (t *newExtreme) reset() {
	t.propMu.Lock()
	t.baseline = t.preset
	t.propMu.Unlock()
	t.baseTrigger.Reset()
}

// NewHigh fires once per frame when the matched count strictly exceeds
// the highest count seen so far (seeded by preset).
type NewHigh struct{ newExtreme }

// NewNewHigh constructs a NewHigh trigger with the given starting
// baseline.
func NewNewHigh(name string, preset uint, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *NewHigh {
	return &NewHigh{newExtreme: newNewExtreme(name, true, preset, counter, resolver, sched, log)}
}

func (t *NewHigh) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *NewHigh) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *NewHigh) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
func (t *NewHigh) Reset()                                                     { t.reset() }

// NewLow fires once per frame when the matched count strictly falls
// below the lowest count seen so far (seeded by preset).
type NewLow struct{ newExtreme }

// NewNewLow constructs a NewLow trigger with the given starting baseline.
func NewNewLow(name string, preset uint, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *NewLow {
	return &NewLow{newExtreme: newNewExtreme(name, false, preset, counter, resolver, sched, log)}
}

func (t *NewLow) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *NewLow) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *NewLow) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
func (t *NewLow) Reset()                                                     { t.reset() }
