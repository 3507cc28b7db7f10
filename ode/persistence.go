package ode

import (
	"time"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
	"github.com/nimbusvid/odecore/track"
)

// Persistence tracks each matching object's age and fires Actions for it
// while that age falls within a configured [min,max] seconds window.
type Persistence struct {
	baseTrigger
	store    *track.Store
	minMs    int64
	maxMs    int64
	clock    func() time.Time
}

// NewPersistence constructs a Persistence trigger with the given
// inclusive age window in seconds.
func NewPersistence(name string, minSeconds, maxSeconds float64, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Persistence {
	return &Persistence{
		baseTrigger: newBaseTrigger(name, counter, resolver, sched, log),
		store:       track.NewStore(0),
		minMs:       int64(minSeconds * 1000),
		maxMs:       int64(maxSeconds * 1000),
		clock:       time.Now,
	}
}

// SetRange updates the inclusive age window, in seconds.
func (t *Persistence) SetRange(minSeconds, maxSeconds float64) {
	t.propMu.Lock()
	defer t.propMu.Unlock()
	t.minMs = int64(minSeconds * 1000)
	t.maxMs = int64(maxSeconds * 1000)
}

// CheckForOccurrence updates obj's track and fires Actions for it when
// its age in milliseconds falls within [min*1000, max*1000].
func (t *Persistence) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.IsEnabled() {
		return false
	}
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
	minMs, maxMs := t.minMs, t.maxMs
	t.propMu.Unlock()

	if durMs < minMs || durMs > maxMs {
		return false
	}

	seconds := float64(durMs / 1000)
	obj.SetMisc(meta.Persistence, seconds)
	obj.SetMisc(meta.PrimaryMetric, seconds)
	t.fireActions(frame, obj)
	return true
}

// PostProcess purges tracks whose objects were not seen this frame.
func (t *Persistence) PostProcess(frame *meta.Frame) uint {
	if frame != nil {
		t.store.Purge(frame.FrameNum)
	}
	return 0
}
