package area

import (
	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// Line is a polyline Area used exclusively for Cross triggers: it never
// accepts/rejects on containment, only on whether a tracked object's
// trace crosses one of its segments.
type Line struct {
	base
	points []geometry.Point
}

// NewLine creates a Line Area from an ordered list of vertices describing
// a polyline of one or more segments.
func NewLine(name string, points []geometry.Point, opts ...Option) *Line {
	return &Line{
		base:   newBase(name, opts),
		points: points,
	}
}

// Inclusion is meaningless for a Line area; it never participates in the
// within-area accept/reject gate, only in cross tests.
func (l *Line) Inclusion() bool { return false }

// CheckForWithin always returns false; Line areas only support crossing.
func (l *Line) CheckForWithin(geometry.Rect) bool { return false }

// CheckForCross reports whether any consecutive pair of points in trace
// crosses any segment of the line.
func (l *Line) CheckForCross(trace []geometry.Point) bool {
	if len(trace) < 2 || len(l.points) < 2 {
		return false
	}

	for i := 0; i+1 < len(trace); i++ {
		for j := 0; j+1 < len(l.points); j++ {
			if segmentsIntersect(trace[i], trace[i+1], l.points[j], l.points[j+1]) {
				return true
			}
		}
	}

	return false
}

func (l *Line) AddDisplayMeta(sink display.MetaSink) {
	for i := 0; i+1 < len(l.points); i++ {
		sink.AddLine(display.Line{
			X1: int(l.points[i].X), Y1: int(l.points[i].Y),
			X2: int(l.points[i+1].X), Y2: int(l.points[i+1].Y),
			Color: l.borderColor,
			Width: l.borderWidth,
		})
	}
}

// segmentsIntersect reports whether segment p1p2 crosses segment p3p4,
// using the standard orientation-based test.
func segmentsIntersect(p1, p2, p3, p4 geometry.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// orientation returns the signed area of the triangle (a,b,c); its sign
// gives the turn direction from ab to ac.
func orientation(a, b, c geometry.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether point c, known to be collinear with a-b, lies
// within the a-b segment's bounding box.
func onSegment(a, b, c geometry.Point) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}
