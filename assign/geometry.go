package assign

import (
	"math"

	"github.com/nimbusvid/odecore/geometry"
)

// iouOf computes Intersection over Union between two rectangles. The +1
// padding on every edge follows the pixel-grid convention where a box
// spanning [left,right] covers right-left+1 pixels.
func iouOf(a, b geometry.Rect) float32 {
	boxArea := float32((b.Width + 1) * (b.Height + 1))

	iw := float32(math.Min(a.Right(), b.Right()) - math.Max(a.Left, b.Left) + 1)
	var result float32

	if iw > 0 {
		ih := float32(math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top, b.Top) + 1)

		if ih > 0 {
			ua := float32((a.Width+1)*(a.Height+1)) + boxArea - iw*ih
			result = iw * ih / ua
		}
	}

	return result
}
