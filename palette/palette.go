// Package palette provides the indexable, cyclic color table consumed by
// the heat map and by rendering code.
package palette

import "image/color"

// Palette is an indexable, cyclic set of display colors.
type Palette struct {
	colors []color.RGBA
}

// Default is the standard 20-color distinct palette used unless a caller
// supplies its own.
var Default = New(defaultColors)

// New builds a Palette from an explicit color list. Panics if colors is
// empty, since an empty cyclic index has no sensible meaning.
func New(colors []color.RGBA) Palette {
	if len(colors) == 0 {
		panic("palette: New requires at least one color")
	}

	cp := make([]color.RGBA, len(colors))
	copy(cp, colors)
	return Palette{colors: cp}
}

// At returns the color at index i, wrapping cyclically for any i (positive
// or negative).
func (p Palette) At(i int) color.RGBA {
	n := len(p.colors)
	idx := i % n
	if idx < 0 {
		idx += n
	}
	return p.colors[idx]
}

// Len returns the number of distinct colors in the palette.
func (p Palette) Len() int {
	return len(p.colors)
}

var defaultColors = []color.RGBA{
	{R: 255, G: 56, B: 56, A: 255},   // #FF3838
	{R: 255, G: 112, B: 31, A: 255},  // #FF701F
	{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
	{R: 207, G: 210, B: 49, A: 255},  // #CFD231
	{R: 72, G: 249, B: 10, A: 255},   // #48F90A
	{R: 26, G: 147, B: 52, A: 255},   // #1A9334
	{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
	{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
	{R: 52, G: 69, B: 147, A: 255},   // #344593
	{R: 100, G: 115, B: 255, A: 255}, // #6473FF
	{R: 0, G: 24, B: 236, A: 255},    // #0018EC
	{R: 132, G: 56, B: 255, A: 255},  // #8438FF
	{R: 82, G: 0, B: 133, A: 255},    // #520085
	{R: 255, G: 149, B: 200, A: 255}, // #FF95C8
	{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
	{R: 255, G: 157, B: 151, A: 255}, // #FF9D97
	{R: 44, G: 153, B: 168, A: 255},  // #2C99A8
	{R: 61, G: 219, B: 134, A: 255},  // #3DDB86
	{R: 203, G: 56, B: 255, A: 255},  // #CB38FF
	{R: 146, G: 204, B: 23, A: 255},  // #92CC17
}
