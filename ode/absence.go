package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Absence fires once per frame when no object matched the filter gate.
// Its per-object match count is tallied independently of the enabled
// flag, so a downstream Trigger chained off it sees consistent counts
// even while this one is administratively disabled.
type Absence struct {
	baseTrigger
	matches uint
}

// NewAbsence constructs an Absence trigger.
func NewAbsence(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Absence {
	return &Absence{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log)}
}

// PreProcess resets the per-frame match tally in addition to the shared
// bookkeeping.
func (a *Absence) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	a.baseTrigger.PreProcess(frame, sink)

	a.propMu.Lock()
	a.matches = 0
	a.propMu.Unlock()
}

// CheckForOccurrence counts a matching object toward this frame's tally,
// regardless of the enabled flag.
func (a *Absence) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !a.checkForMinCriteria(frame, obj) {
		return false
	}
	if !a.checkForWithin(obj.Rect) {
		return false
	}

	a.propMu.Lock()
	a.matches++
	a.propMu.Unlock()
	return false
}

// PostProcess fires the Trigger's Actions once if enabled, within its
// rate limit, and no object matched this frame.
func (a *Absence) PostProcess(frame *meta.Frame) uint {
	a.propMu.Lock()
	matches := a.matches
	a.propMu.Unlock()

	if matches > 0 {
		return 0
	}
	if !a.IsEnabled() || !a.checkFrameGate() {
		return 0
	}

	a.fireActions(frame, nil)
	return 1
}
