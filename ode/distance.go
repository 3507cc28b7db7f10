package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// DistanceMethod selects how a Distance trigger's [min,max] range is
// interpreted.
type DistanceMethod int

const (
	// FixedPixels interprets min/max as absolute pixel distances.
	FixedPixels DistanceMethod = iota
	// PercentWidthA interprets min/max as a percentage of object A's
	// bounding-box width.
	PercentWidthA
	// PercentHeightA interprets min/max as a percentage of object A's
	// bounding-box height.
	PercentHeightA
	// PercentWidthB interprets min/max as a percentage of object B's
	// bounding-box width.
	PercentWidthB
	// PercentHeightB interprets min/max as a percentage of object B's
	// bounding-box height.
	PercentHeightB
)

// distancePair implements pairTest for the Distance trigger.
type distancePair struct {
	testPoint geometry.TestPoint
	method    DistanceMethod
	min, max  float64
}

func (d distancePair) test(a, b *meta.Object) (bool, float64) {
	var dist float64
	if d.testPoint == geometry.Any {
		dist = geometry.RectangleDistance(a.Rect, b.Rect)
	} else {
		dist = geometry.PointDistance(d.testPoint.Locate(a.Rect), d.testPoint.Locate(b.Rect))
	}

	min, max := d.min, d.max
	switch d.method {
	case PercentWidthA:
		min, max = d.min/100*a.Rect.Width, d.max/100*a.Rect.Width
	case PercentHeightA:
		min, max = d.min/100*a.Rect.Height, d.max/100*a.Rect.Height
	case PercentWidthB:
		min, max = d.min/100*b.Rect.Width, d.max/100*b.Rect.Width
	case PercentHeightB:
		min, max = d.min/100*b.Rect.Height, d.max/100*b.Rect.Height
	}

	// Distance matches iff it falls outside the configured range.
	return dist < min || dist > max, dist
}

// Distance fires for every eligible object pair whose separation falls
// outside a configured [min,max] range.
type Distance struct {
	abTrigger
}

// NewDistance constructs a Distance trigger comparing objects of classA
// against classB (or within classA when classA==classB), using testPoint
// (or geometry.Any for rectangle-to-rectangle distance) and method to
// interpret the [min,max] range.
func NewDistance(name string, classA, classB int, testPoint geometry.TestPoint, method DistanceMethod, min, max float64, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Distance {
	pt := distancePair{testPoint: testPoint, method: method, min: min, max: max}
	return &Distance{abTrigger: newABTrigger(name, classA, classB, pt, counter, resolver, sched, log)}
}

func (t *Distance) PreProcess(frame *meta.Frame, sink display.MetaSink)         { t.preProcess(frame, sink) }
func (t *Distance) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool { return t.checkForOccurrence(frame, obj) }
func (t *Distance) PostProcess(frame *meta.Frame) uint                         { return t.postProcess(frame) }
