// Package render is a demo-only gocv display.MetaSink implementation:
// it rasterizes the display primitives Areas, the HeatMapper, and the
// demo's own per-object box/trail drawing emit onto a gocv.Mat frame,
// using the engine's generic display.Rectangle/Line/Text primitives
// plus meta.Object rather than any fixed detection-result shape.
package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Alignment controls where a text label sits relative to its anchor box.
type Alignment int

const (
	Left Alignment = iota + 1
	Center
	Right
)

// Font defines the parameters used to render text labels with GoCV.
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType

	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int

	Alignment Alignment
}

// DefaultFont returns the font settings used unless a caller overrides them.
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}
