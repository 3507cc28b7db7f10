package ode

import (
	"time"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
	"github.com/nimbusvid/odecore/track"
)

// Cross requires at least one Area and fires once, latching, when a
// tracked object's trace crosses that Area's line/boundary.
type Cross struct {
	baseTrigger
	store          *track.Store
	minTracePoints int
	testPoint      geometry.TestPoint
	traceMethod    track.TraceMethod
	clock          func() time.Time
}

// NewCross constructs a Cross trigger requiring at least minTracePoints
// trace samples before it evaluates the crossing test, sampled at
// testPoint using traceMethod.
func NewCross(name string, minTracePoints int, testPoint geometry.TestPoint, traceMethod track.TraceMethod, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Cross {
	return &Cross{
		baseTrigger:    newBaseTrigger(name, counter, resolver, sched, log),
		store:          track.NewStore(minTracePoints, testPoint),
		minTracePoints: minTracePoints,
		testPoint:      testPoint,
		traceMethod:    traceMethod,
		clock:          time.Now,
	}
}

// CheckForOccurrence updates obj's trace and, once it has at least
// minTracePoints samples and has not already triggered, tests it against
// every configured Area's line-cross geometry, firing and latching on
// the first cross.
func (t *Cross) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.IsEnabled() {
		return false
	}
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}

	key := track.Key{SourceID: frame.SourceID, ObjectID: obj.ObjectID}
	tracked := t.store.Update(key, frame.FrameNum, obj.Rect, t.clock())

	if tracked.Triggered {
		return false
	}

	trace := tracked.Trace(t.testPoint, t.traceMethod)
	if len(trace) < t.minTracePoints {
		return false
	}

	t.propMu.Lock()
	areas := t.areas.Values()
	t.propMu.Unlock()

	crossed := false
	for _, a := range areas {
		if a.CheckForCross(trace) {
			crossed = true
			break
		}
	}
	if !crossed {
		return false
	}

	tracked.Triggered = true
	t.fireActions(frame, obj)
	return true
}

// PostProcess purges tracks whose objects were not seen this frame.
func (t *Cross) PostProcess(frame *meta.Frame) uint {
	if frame != nil {
		t.store.Purge(frame.FrameNum)
	}
	return 0
}

// Reset clears every tracked object, including its Triggered latch, in
// addition to the shared triggered-count reset.
func (t *Cross) Reset() {
	t.store.Clear()
	t.baseTrigger.Reset()
}
