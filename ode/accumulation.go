package ode

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Accumulation shares Instance's monotonic-id gate, but instead of firing
// per new instance it maintains a running total across the process
// lifetime and fires once per frame with that total.
type Accumulation struct {
	baseTrigger

	seenMu  sync.Mutex
	lastIDs map[instanceKey]int64
	total   uint64
	newThisFrame uint64
}

// NewAccumulation constructs an Accumulation trigger.
func NewAccumulation(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Accumulation {
	return &Accumulation{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		lastIDs:     make(map[instanceKey]int64),
	}
}

// PreProcess seeds this frame's new-instance tally in addition to the
// shared bookkeeping.
func (t *Accumulation) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.seenMu.Lock()
	t.newThisFrame = 0
	t.seenMu.Unlock()
}

// CheckForOccurrence applies the same per-source/class monotonic id gate
// as Instance, accumulating the running total rather than firing per
// object.
func (t *Accumulation) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}
	if !t.checkForWithin(obj.Rect) {
		return false
	}

	key := instanceKey{sourceID: frame.SourceID, classID: obj.ClassID}

	t.seenMu.Lock()
	last, ok := t.lastIDs[key]
	isNew := !ok || obj.ObjectID > last
	if isNew {
		t.lastIDs[key] = obj.ObjectID
		t.total++
		t.newThisFrame++
	}
	t.seenMu.Unlock()

	return isNew
}

// PostProcess fires the Trigger's Actions once with the running
// accumulative total, if enabled and within the rate limit, returning
// that total.
func (t *Accumulation) PostProcess(frame *meta.Frame) uint {
	if !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	t.seenMu.Lock()
	total := t.total
	t.seenMu.Unlock()

	t.fireActions(frame, nil)
	return uint(total)
}
