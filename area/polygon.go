package area

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// Polygon is an arbitrarily-shaped Inclusion or Exclusion Area. Point-in-
// polygon containment is delegated to gocv.PointPolygonTest — reaching
// for a hand-rolled ray-cast here would duplicate a predicate the OpenCV
// binding already provides.
type Polygon struct {
	base
	inclusion bool
	points    []image.Point
}

// NewPolygon creates a polygonal Area from an ordered list of vertices.
func NewPolygon(name string, points []geometry.Point, inclusion bool, opts ...Option) *Polygon {
	pts := make([]image.Point, len(points))
	for i, p := range points {
		pts[i] = image.Pt(int(p.X), int(p.Y))
	}

	return &Polygon{
		base:      newBase(name, opts),
		inclusion: inclusion,
		points:    pts,
	}
}

func (p *Polygon) Inclusion() bool { return p.inclusion }

// CheckForWithin tests the Area's configured test point of obj against
// the polygon boundary.
func (p *Polygon) CheckForWithin(obj geometry.Rect) bool {
	if len(p.points) < 3 {
		return false
	}

	pt := p.testPoint.Locate(obj)

	pv := gocv.NewPointVectorFromPoints(p.points)
	defer pv.Close()

	result := gocv.PointPolygonTest(pv, image.Pt(int(pt.X), int(pt.Y)), false)
	return result >= 0
}

// CheckForCross always returns false; only Line areas support cross tests.
func (p *Polygon) CheckForCross([]geometry.Point) bool { return false }

func (p *Polygon) AddDisplayMeta(sink display.MetaSink) {
	if len(p.points) < 2 {
		return
	}

	for i := 0; i < len(p.points); i++ {
		next := (i + 1) % len(p.points)
		sink.AddLine(display.Line{
			X1: p.points[i].X, Y1: p.points[i].Y,
			X2: p.points[next].X, Y2: p.points[next].Y,
			Color: p.borderColor,
			Width: p.borderWidth,
		})
	}
}
