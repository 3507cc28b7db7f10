package assign

import "github.com/nimbusvid/odecore/geometry"

// Detection is one raw, unmatched detection for a single frame — the
// input Tracker.Update consumes. There is no feature-embedding field:
// nothing downstream needs cross-camera re-identification, only a
// stable id within one stream.
type Detection struct {
	Rect       geometry.Rect
	ClassID    int
	Confidence float64

	// DetectionID lets a caller correlate a returned meta.Object back to
	// the Detection it matched, e.g. for logging.
	DetectionID int64
}

// NewDetection builds a Detection.
func NewDetection(rect geometry.Rect, classID int, confidence float64, detectionID int64) Detection {
	return Detection{
		Rect:        rect,
		ClassID:     classID,
		Confidence:  confidence,
		DetectionID: detectionID,
	}
}
