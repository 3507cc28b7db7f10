package ode

import (
	"time"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
	"github.com/nimbusvid/odecore/track"
)

// durationExtreme is the shared implementation behind Earliest and
// Latest: both maintain a TrackedObjectsStore and, each frame, select the
// matching object with the longest or shortest duration observed so far.
type durationExtreme struct {
	baseTrigger
	store    *track.Store
	longest  bool // true selects the longest-lived object (Earliest), false the shortest (Latest)
	selected *meta.Object
	selDurMs int64
	clock    func() time.Time
}

func newDurationExtreme(name string, longest bool, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) durationExtreme {
	return durationExtreme{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		store:       track.NewStore(0),
		longest:     longest,
		clock:       time.Now,
	}
}

func (t *durationExtreme) preProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.selected = nil
	t.selDurMs = 0
	t.propMu.Unlock()
}

func (t *durationExtreme) checkForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}
	if !t.checkForWithin(obj.Rect) {
		return false
	}

	key := track.Key{SourceID: frame.SourceID, ObjectID: obj.ObjectID}
	tracked := t.store.Update(key, frame.FrameNum, obj.Rect, t.clock())
	durMs := tracked.DurationMs()

	t.propMu.Lock()
	if t.selected == nil || (t.longest && durMs > t.selDurMs) || (!t.longest && durMs < t.selDurMs) {
		t.selected = obj
		t.selDurMs = durMs
	}
	t.propMu.Unlock()
	return true
}

func (t *durationExtreme) postProcess(frame *meta.Frame) uint {
	if frame != nil {
		t.store.Purge(frame.FrameNum)
	}

	t.propMu.Lock()
	selected, durMs := t.selected, t.selDurMs
	t.propMu.Unlock()

	if selected == nil || !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	seconds := float64(durMs / 1000)
	selected.SetMisc(meta.Persistence, seconds)
	selected.SetMisc(meta.PrimaryMetric, seconds)
	t.fireActions(frame, selected)
	return 1
}

// Earliest selects, among matching objects, the one that has persisted
// longest and fires once with it, stamped with its persistence in
// seconds.
type Earliest struct{ durationExtreme }

// NewEarliest constructs an Earliest trigger.
func NewEarliest(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Earliest {
	return &Earliest{durationExtreme: newDurationExtreme(name, true, counter, resolver, sched, log)}
}

func (t *Earliest) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Earliest) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Earliest) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }

// Latest selects, among matching objects, the most recently appeared one
// (shortest observed duration) and fires once with it.
type Latest struct{ durationExtreme }

// NewLatest constructs a Latest trigger.
func NewLatest(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Latest {
	return &Latest{durationExtreme: newDurationExtreme(name, false, counter, resolver, sched, log)}
}

func (t *Latest) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Latest) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Latest) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
