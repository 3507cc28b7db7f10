package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// extent is the shared implementation behind Smallest and Largest: both
// queue every matching object during the per-object pass and, at
// post-process, pick the extremum by bounding-box area under a strict
// inequality — the first object reaching the extreme wins ties.
type extent struct {
	baseTrigger
	queue   []*meta.Object
	largest bool
}

func newExtent(name string, largest bool, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) extent {
	return extent{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log), largest: largest}
}

func (t *extent) preProcess(frame *meta.Frame, sink display.MetaSink) {
	t.baseTrigger.PreProcess(frame, sink)

	t.propMu.Lock()
	t.queue = t.queue[:0]
	t.propMu.Unlock()
}

func (t *extent) checkForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !t.checkForMinCriteria(frame, obj) {
		return false
	}
	if !t.checkForWithin(obj.Rect) {
		return false
	}

	t.propMu.Lock()
	t.queue = append(t.queue, obj)
	t.propMu.Unlock()
	return true
}

func (t *extent) postProcess(frame *meta.Frame) uint {
	t.propMu.Lock()
	queue := make([]*meta.Object, len(t.queue))
	copy(queue, t.queue)
	t.propMu.Unlock()

	if len(queue) == 0 || !t.IsEnabled() || !t.checkFrameGate() {
		return 0
	}

	selected := queue[0]
	selectedArea := selected.Rect.Width * selected.Rect.Height
	for _, obj := range queue[1:] {
		a := obj.Rect.Width * obj.Rect.Height
		if (t.largest && a > selectedArea) || (!t.largest && a < selectedArea) {
			selected = obj
			selectedArea = a
		}
	}

	selected.SetMisc(meta.PrimaryMetric, selectedArea)
	t.fireActions(frame, selected)
	return 1
}

// Smallest selects the matching object with the smallest bounding-box
// area and fires once with it.
type Smallest struct{ extent }

// NewSmallest constructs a Smallest trigger.
func NewSmallest(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Smallest {
	return &Smallest{extent: newExtent(name, false, counter, resolver, sched, log)}
}

func (t *Smallest) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Smallest) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Smallest) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }

// Largest selects the matching object with the largest bounding-box area
// and fires once with it.
type Largest struct{ extent }

// NewLargest constructs a Largest trigger.
func NewLargest(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Largest {
	return &Largest{extent: newExtent(name, true, counter, resolver, sched, log)}
}

func (t *Largest) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Largest) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Largest) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
