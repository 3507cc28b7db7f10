// Package area implements named spatial regions Triggers test object
// bounding boxes and traces against.
package area

import (
	"image/color"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
)

// Area is a named spatial region. Triggers hold an ordered collection of
// Areas and scan them in insertion order (see ode.baseTrigger.checkForWithin).
type Area interface {
	// Name uniquely identifies the Area within its owning Trigger.
	Name() string
	// Inclusion reports whether a positive CheckForWithin result should
	// accept (true) or reject (false) the object under test.
	Inclusion() bool
	// CheckForWithin reports whether r lies within the Area's geometry.
	CheckForWithin(r geometry.Rect) bool
	// CheckForCross reports whether the ordered trace crosses the Area's
	// boundary. Only Line areas implement this meaningfully; Inclusion/
	// Exclusion areas always return false.
	CheckForCross(trace []geometry.Point) bool
	// TestPoint reports which bbox test point this Area locates on an
	// object's rect in CheckForWithin.
	TestPoint() geometry.TestPoint
	// AddDisplayMeta appends this Area's outline to the sink. A Trigger
	// that is disabled or filtered out by source does not call it for
	// that frame.
	AddDisplayMeta(sink display.MetaSink)
}

// base holds the fields shared by every Area variant.
type base struct {
	name        string
	testPoint   geometry.TestPoint
	borderColor color.RGBA
	borderWidth int
	hasBgColor  bool
	bgColor     color.RGBA
}

func (b base) Name() string                  { return b.name }
func (b base) TestPoint() geometry.TestPoint { return b.testPoint }

// Option configures display attributes shared by every Area variant.
type Option func(*base)

// WithTestPoint overrides the default Center test point.
func WithTestPoint(tp geometry.TestPoint) Option {
	return func(b *base) { b.testPoint = tp }
}

// WithBorder sets the outline color/width used when rendering the Area.
func WithBorder(c color.RGBA, width int) Option {
	return func(b *base) {
		b.borderColor = c
		b.borderWidth = width
	}
}

// WithBackground sets a fill color used when rendering the Area.
func WithBackground(c color.RGBA) Option {
	return func(b *base) {
		b.hasBgColor = true
		b.bgColor = c
	}
}

func newBase(name string, opts []Option) base {
	b := base{name: name, testPoint: geometry.Center, borderWidth: 1}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
