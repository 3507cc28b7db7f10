package ode

import (
	"sync"
	"time"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/schedule"
)

// fakeScheduler lets tests fire a Trigger's reset-timer callback on
// demand instead of racing a real timer.
type fakeScheduler struct {
	mu      sync.Mutex
	pending func()
}

func (s *fakeScheduler) ScheduleOnce(d time.Duration, fn func()) schedule.Handle {
	s.mu.Lock()
	s.pending = fn
	s.mu.Unlock()
	return fn
}

func (s *fakeScheduler) Cancel(h schedule.Handle) {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *fakeScheduler) fire() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// countingAction records every invocation it receives, for assertions
// about call count and order.
type countingAction struct {
	name string

	mu    sync.Mutex
	calls int
	last  *meta.Object
}

func newCountingAction(name string) *countingAction {
	return &countingAction{name: name}
}

func (a *countingAction) Name() string { return a.name }

func (a *countingAction) HandleOccurrence(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object) {
	a.mu.Lock()
	a.calls++
	a.last = obj
	a.mu.Unlock()
}

func (a *countingAction) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func obj(classID int, id int64, rect geometry.Rect) *meta.Object {
	return &meta.Object{ClassID: classID, ObjectID: id, Rect: rect}
}

func frame(sourceID int, num uint64) *meta.Frame {
	return &meta.Frame{SourceID: sourceID, FrameNum: num}
}
