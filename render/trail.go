package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/palette"
	"github.com/nimbusvid/odecore/track"
)

// TrailStyle controls how a tracked object's recent path is drawn.
type TrailStyle struct {
	// LineSame draws the trail line in the object's own box color rather
	// than LineColor.
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int

	// CircleSame draws the current-position marker in the object's own
	// box color rather than CircleColor.
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns the trail style used unless a caller overrides it.
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trail draws each object's recent center-point trace, read out of
// store, as a connected line ending in a marker circle at the object's
// current position.
func Trail(s *Sink, sourceID int, objects []*meta.Object, store *track.Store, pal palette.Palette, style TrailStyle) {
	for _, obj := range objects {
		objClr := pal.At(int(obj.ObjectID))

		lineClr := objClr
		if !style.LineSame {
			lineClr = style.LineColor
		}
		circleClr := objClr
		if !style.CircleSame {
			circleClr = style.CircleColor
		}

		trObj, ok := store.Get(track.Key{SourceID: sourceID, ObjectID: obj.ObjectID})
		if !ok {
			continue
		}

		points := trObj.Trace(geometry.Center, track.FullTrace)
		if len(points) <= 2 {
			continue
		}

		for i := 1; i < len(points); i++ {
			gocv.Line(s.img,
				pointToPt(points[i-1]), pointToPt(points[i]),
				lineClr, style.LineThickness,
			)

			if i == len(points)-1 {
				gocv.Circle(s.img, pointToPt(points[i]), style.CircleRadius, circleClr, -1)
			}
		}
	}
}

func pointToPt(p geometry.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
