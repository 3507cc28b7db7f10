package area

import (
	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// Rectangle is an axis-aligned Inclusion or Exclusion Area. Containment
// is plain point-in-rect arithmetic — simple enough that no geometry
// library adds value over the direct comparison.
type Rectangle struct {
	base
	inclusion bool
	rect      geometry.Rect
}

// NewRectangle creates a rectangular Area. inclusion controls whether a
// positive containment test accepts (Inclusion Area) or rejects
// (Exclusion Area) the object under test.
func NewRectangle(name string, rect geometry.Rect, inclusion bool, opts ...Option) *Rectangle {
	return &Rectangle{
		base:      newBase(name, opts),
		inclusion: inclusion,
		rect:      rect,
	}
}

func (r *Rectangle) Inclusion() bool { return r.inclusion }

// CheckForWithin tests the Area's configured test point of obj against
// the rectangle's bounds.
func (r *Rectangle) CheckForWithin(obj geometry.Rect) bool {
	p := r.testPoint.Locate(obj)
	return p.X >= r.rect.Left && p.X <= r.rect.Right() &&
		p.Y >= r.rect.Top && p.Y <= r.rect.Bottom()
}

// CheckForCross always returns false; only Line areas support cross tests.
func (r *Rectangle) CheckForCross([]geometry.Point) bool { return false }

func (r *Rectangle) AddDisplayMeta(sink display.MetaSink) {
	rect := display.Rectangle{
		Left:        int(r.rect.Left),
		Top:         int(r.rect.Top),
		Width:       int(r.rect.Width),
		Height:      int(r.rect.Height),
		BorderColor: r.borderColor,
		BorderWidth: r.borderWidth,
		HasBgColor:  r.hasBgColor,
		BgColor:     r.bgColor,
	}
	sink.AddRectangle(rect)
}
