package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Count fires once per frame iff the number of matching objects falls
// within a configured [min,max] range.
type Count struct {
	baseTrigger
	min, max uint
	count    uint
}

// NewCount constructs a Count trigger with the given inclusive range.
func NewCount(name string, min, max uint, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Count {
	return &Count{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log), min: min, max: max}
}

// SetRange updates the inclusive match-count range.
func (t *Count) SetRange(min, max uint) {
	t.propMu.Lock()
	defer t.propMu.Unlock()
	t.min = min
	t.max = max
}

func (t *Count) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.count = 0
	t.propMu.Unlock()
}

func (t *Count) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
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

// PostProcess fires the Trigger's Actions once iff the matched count
// falls within [min,max], and the Trigger is enabled and within its
// rate limit.
func (t *Count) PostProcess(frame *meta.Frame) uint {
	t.propMu.Lock()
	count, min, max := t.count, t.min, t.max
	t.propMu.Unlock()

	if !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}
	if count < min || count > max {
		return 0
	}

	t.fireActions(frame, nil)
	return count
}
