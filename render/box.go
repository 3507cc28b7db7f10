package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/palette"
)

// Boxes draws one bounding box and id/class label per tracked object,
// sourcing per-object color from a palette.Palette keyed by ObjectID.
func Boxes(s *Sink, objects []*meta.Object, classNames []string, pal palette.Palette, lineThickness int) {
	labels := make([]boxLabel, 0, len(objects))

	for _, obj := range objects {
		left := int(obj.Rect.Left)
		top := int(obj.Rect.Top)
		right := int(obj.Rect.Right())
		bottom := int(obj.Rect.Bottom())

		clr := pal.At(int(obj.ObjectID))

		gocv.Rectangle(s.img, image.Rect(left, top, right, bottom), clr, lineThickness)

		className := "?"
		if obj.ClassID >= 0 && obj.ClassID < len(classNames) {
			className = classNames[obj.ClassID]
		}
		text := fmt.Sprintf("%s %d", className, obj.ObjectID)

		labelPos, bRect := s.labelAnchor(left, right, top, text)
		labels = append(labels, boxLabel{rect: bRect, clr: clr, text: text, textPos: labelPos})
	}

	s.drawLabels(labels)
}
