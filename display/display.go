// Package display declares the abstract "append a rectangle / multi-line
// to a display-meta container" contract. Areas and the HeatMapper call
// into a MetaSink during PreProcess/addDisplayMeta; the actual rasterizer
// (bounding-box rendering primitives) is an out-of-scope external
// collaborator per the engine's design — only this interface lives in the
// core. The demo `render` package supplies a gocv-backed implementation.
package display

import "image/color"

// Rectangle describes one filled or outlined rectangle to add to a
// display-meta container.
type Rectangle struct {
	Left, Top, Width, Height int
	BorderColor              color.RGBA
	// BorderWidth of 0 with HasBgColor true means a solid filled rect.
	BorderWidth int
	HasBgColor  bool
	BgColor     color.RGBA
}

// Line describes one line segment (used for cross-test line Areas and
// polygon Area edges) to add to a display-meta container.
type Line struct {
	X1, Y1, X2, Y2 int
	Color          color.RGBA
	Width          int
}

// Text describes one text label to add to a display-meta container.
type Text struct {
	X, Y  int
	Value string
	Color color.RGBA
}

// MetaSink receives display primitives emitted during PreProcess/
// addDisplayMeta calls. Implementations must not block or panic —
// callers treat it as a fire-and-forget append.
type MetaSink interface {
	AddRectangle(r Rectangle)
	AddLine(l Line)
	AddText(t Text)
}

// Discard is a MetaSink that drops everything, useful for tests and for
// Triggers/Areas run with no rendering configured.
var Discard MetaSink = discard{}

type discard struct{}

func (discard) AddRectangle(Rectangle) {}
func (discard) AddLine(Line)           {}
func (discard) AddText(Text)           {}
