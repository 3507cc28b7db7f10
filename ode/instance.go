package ode

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

type instanceKey struct {
	sourceID int
	classID  int
}

// Instance fires only when a strictly new object instance (by monotonic
// object id) appears for a given (sourceId, classId) pair, so a tracker
// re-reporting the same object across frames does not refire it.
type Instance struct {
	baseTrigger

	seenMu  sync.Mutex
	lastIDs map[instanceKey]int64
}

// NewInstance constructs an Instance trigger.
func NewInstance(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Instance {
	return &Instance{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		lastIDs:     make(map[instanceKey]int64),
	}
}

// CheckForOccurrence fires Actions for obj only if its object id is
// strictly greater than the last one seen for this (source, class) pair.
func (t *Instance) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.IsEnabled() {
		return false
	}
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
	}
	t.seenMu.Unlock()

	if !isNew {
		return false
	}

	t.propMu.Lock()
	t.occurrences++
	count := t.occurrences
	t.propMu.Unlock()

	obj.SetMisc(meta.PrimaryMetric, float64(count))
	t.fireActions(frame, obj)
	return true
}

// PostProcess does no additional work; Instance fires per-object.
func (t *Instance) PostProcess(*meta.Frame) uint { return 0 }
