package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Summation counts matching objects and fires once per frame, stamping
// the count into the frame's OCCURRENCES misc info.
type Summation struct {
	baseTrigger
	count uint
}

// NewSummation constructs a Summation trigger.
func NewSummation(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Summation {
	return &Summation{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log)}
}

func (t *Summation) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.count = 0
	t.propMu.Unlock()
}

func (t *Summation) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
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

// PostProcess fires the Trigger's Actions once, stamping the frame's
// OCCURRENCES misc info with the matched count, if enabled and within
// the rate limit.
func (t *Summation) PostProcess(frame *meta.Frame) uint {
	t.propMu.Lock()
	count := t.count
	t.propMu.Unlock()

	if !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	if frame != nil {
		frame.SetMisc(meta.Occurrences, float64(count))
	}
	t.fireActions(frame, nil)
	return count
}
