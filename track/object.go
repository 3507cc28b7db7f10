// Package track implements the per-(source,object) trajectory history
// several Trigger variants share: bounded trace points, frame-based
// purge, and time-based persistence measurement, using a bounded,
// mutex-guarded point history keyed by an integer id plus small frame
// bookkeeping (frameID, startFrameID, an activation latch).
package track

import (
	"time"

	"github.com/nimbusvid/odecore/geometry"
)

// Key identifies a tracked object by the source stream it came from and
// its object id within that stream.
type Key struct {
	SourceID int
	ObjectID int64
}

// TracePoint is one observed sample of a tracked object's position.
type TracePoint struct {
	Frame uint64
	Rect  geometry.Rect
	Point geometry.Point
	At    time.Time
}

// TraceMethod selects which slice of a stored trace GetTrace returns.
type TraceMethod int

const (
	// FullTrace returns every stored point in insertion order.
	FullTrace TraceMethod = iota
	// Endpoints returns only the first and last stored point, the
	// minimum needed by a Cross trigger's line-segment test.
	Endpoints
)

// Object is a single tracked object's history: one or more per-test-point
// traces, bounded by the owning Store's maxHistory, plus the bookkeeping
// Persistence/Earliest/Latest/Cross triggers need.
type Object struct {
	Key       Key
	CreatedAt time.Time

	lastSeenFrame uint64
	lastSeenAt    time.Time

	// Triggered latches true the first time a Cross trigger fires for
	// this object, so it does not re-fire on subsequent crossings.
	Triggered bool

	maxTracePoints int
	traces         map[geometry.TestPoint][]TracePoint
}

func newObject(key Key, maxTracePoints int) *Object {
	return &Object{
		Key:            key,
		maxTracePoints: maxTracePoints,
		traces:         make(map[geometry.TestPoint][]TracePoint),
	}
}

// LastSeenFrame returns the frame number this object was last observed on.
func (o *Object) LastSeenFrame() uint64 {
	return o.lastSeenFrame
}

// DurationMs returns the wall-clock delta between the first and most
// recent observation of this object, in milliseconds.
func (o *Object) DurationMs() int64 {
	return o.lastSeenAt.Sub(o.CreatedAt).Milliseconds()
}

// Trace returns the stored coordinate sequence for the given test point,
// per method's convention.
func (o *Object) Trace(tp geometry.TestPoint, method TraceMethod) []geometry.Point {
	points := o.traces[tp]
	if len(points) == 0 {
		return nil
	}

	switch method {
	case Endpoints:
		if len(points) == 1 {
			return []geometry.Point{points[0].Point}
		}
		return []geometry.Point{points[0].Point, points[len(points)-1].Point}
	case FullTrace:
		fallthrough
	default:
		out := make([]geometry.Point, len(points))
		for i, p := range points {
			out[i] = p.Point
		}
		return out
	}
}

// append records a new sample for the given test point, evicting the
// oldest sample if maxTracePoints would otherwise be exceeded. A
// maxTracePoints of 0 means unbounded history.
func (o *Object) append(tp geometry.TestPoint, tpPoint TracePoint) {
	trace := append(o.traces[tp], tpPoint)

	if o.maxTracePoints > 0 && len(trace) > o.maxTracePoints {
		trace = trace[len(trace)-o.maxTracePoints:]
	}

	o.traces[tp] = trace
}
