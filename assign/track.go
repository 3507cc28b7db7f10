package assign

import (
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
)

// velocitySmoothing weights how much a single frame's position delta
// updates a track's running velocity estimate versus its prior value.
const velocitySmoothing = 0.5

// track is one tracker-assigned identity: its last known box, an
// exponentially-smoothed velocity estimate used to extrapolate through
// a missed frame, and the bookkeeping needed to expire it once it goes
// too long without a match.
type track struct {
	id            int64
	rect          geometry.Rect
	vx, vy        float64
	classID       int
	score         float64
	lastSeenFrame int
}

func newTrack(id int64, det Detection) *track {
	return &track{id: id, rect: det.Rect, classID: det.ClassID, score: det.Confidence}
}

// predict extrapolates the track's box forward by its current velocity
// estimate, so a plausible box is available to match against even on a
// frame where this track goes unobserved.
func (tr *track) predict() {
	tr.rect.Left += tr.vx
	tr.rect.Top += tr.vy
}

// observe folds a matched detection into the track, refreshing its
// velocity estimate from the position delta since the predicted box.
func (tr *track) observe(det Detection) {
	dx := det.Rect.Left - tr.rect.Left
	dy := det.Rect.Top - tr.rect.Top
	tr.vx = velocitySmoothing*dx + (1-velocitySmoothing)*tr.vx
	tr.vy = velocitySmoothing*dy + (1-velocitySmoothing)*tr.vy
	tr.rect = det.Rect
	tr.classID = det.ClassID
	tr.score = det.Confidence
}

func (tr *track) toObject(sourceID int) *meta.Object {
	return &meta.Object{
		ClassID:           tr.classID,
		ObjectID:          tr.id,
		UniqueComponentID: sourceID,
		Confidence:        tr.score,
		Rect:              tr.rect,
	}
}
