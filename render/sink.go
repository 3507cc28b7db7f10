package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/nimbusvid/odecore/display"
)

// Sink is a display.MetaSink that draws every primitive it receives
// straight onto a gocv.Mat frame, using the engine's abstract
// display.Rectangle/Line/Text primitives instead of a fixed detection
// result shape.
type Sink struct {
	img  *gocv.Mat
	font Font
}

// NewSink builds a Sink that draws onto img using font for any AddText
// calls that don't specify their own color (display.Text always carries
// its own color, but the label padding/face/scale come from font).
func NewSink(img *gocv.Mat, font Font) *Sink {
	return &Sink{img: img, font: font}
}

// AddRectangle draws a filled or outlined rectangle, per r.HasBgColor.
func (s *Sink) AddRectangle(r display.Rectangle) {
	rect := image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)

	if r.HasBgColor {
		gocv.Rectangle(s.img, rect, r.BgColor, -1)
		return
	}

	thickness := r.BorderWidth
	if thickness <= 0 {
		thickness = 1
	}
	gocv.Rectangle(s.img, rect, r.BorderColor, thickness)
}

// AddLine draws one line segment.
func (s *Sink) AddLine(l display.Line) {
	width := l.Width
	if width <= 0 {
		width = 1
	}
	gocv.Line(s.img, image.Pt(l.X1, l.Y1), image.Pt(l.X2, l.Y2), l.Color, width)
}

// AddText draws one text label at (t.X, t.Y), using the Sink's font face,
// scale, and thickness but t's own color.
func (s *Sink) AddText(t display.Text) {
	gocv.PutTextWithParams(s.img, t.Value, image.Pt(t.X, t.Y),
		s.font.Face, s.font.Scale, t.Color, s.font.Thickness, s.font.LineType, false)
}

// boxLabel is a pre-measured text label queued to draw after every
// bounding box, so labels always sit on top of every box's outline.
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

func (s *Sink) drawLabels(labels []boxLabel) {
	for _, l := range labels {
		gocv.Rectangle(s.img, l.rect, l.clr, -1)
		gocv.PutTextWithParams(s.img, l.text, l.textPos,
			s.font.Face, s.font.Scale, s.font.Color, s.font.Thickness, s.font.LineType, false)
	}
}

func (s *Sink) labelAnchor(left, right, top int, text string) (image.Point, image.Rectangle) {
	textSize := gocv.GetTextSize(text, s.font.Face, s.font.Scale, s.font.Thickness)

	var centerX int
	switch s.font.Alignment {
	case Center:
		centerX = (left + right) / 2
	case Right:
		centerX = right - textSize.X/2 - s.font.RightPad
	case Left:
		fallthrough
	default:
		centerX = left + textSize.X/2 + s.font.LeftPad
	}

	labelPos := image.Pt(centerX-textSize.X/2, top-s.font.BottomPad)
	bRect := image.Rect(
		centerX-textSize.X/2-s.font.LeftPad,
		top-textSize.Y-s.font.TopPad-s.font.BottomPad,
		centerX+textSize.X/2+s.font.RightPad, top,
	)
	return labelPos, bRect
}
