package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// intersectionPair implements pairTest for the Intersection trigger.
type intersectionPair struct{}

func (intersectionPair) test(a, b *meta.Object) (bool, float64) {
	if geometry.RectangleOverlaps(a.Rect, b.Rect) {
		return true, geometry.RectangleDistance(a.Rect, b.Rect)
	}
	return false, 0
}

// Intersection fires for every eligible object pair whose bounding boxes
// overlap.
type Intersection struct {
	abTrigger
}

// NewIntersection constructs an Intersection trigger comparing objects of
// classA against classB (or within classA when classA==classB).
func NewIntersection(name string, classA, classB int, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Intersection {
	return &Intersection{abTrigger: newABTrigger(name, classA, classB, intersectionPair{}, counter, resolver, sched, log)}
}

func (t *Intersection) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Intersection) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Intersection) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
