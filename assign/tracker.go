// Package assign implements a lightweight IoU-based multi-object
// tracker, turning a raw per-frame detection list into meta.Objects
// carrying stable ObjectIDs. It stands in for the upstream tracking
// stage a real deployment would get from its capture pipeline; the ode,
// area, track, and heatmap packages never import it, they only ever
// consume the meta.Objects it produces.
//
// Matching is a single greedy pass over IoU-ranked (track, detection)
// candidates rather than a global Hungarian/Jonker-Volgenant assignment,
// and each track's next position is extrapolated from a plain
// exponentially-smoothed velocity rather than a Kalman filter's motion
// model. odedemo only needs stable ids for a handful of well-separated
// synthetic actors in a single stream, so there is no lost-track
// re-identification pass and no per-track covariance to maintain.
package assign

import (
	"sort"

	"github.com/nimbusvid/odecore/meta"
)

// Tracker assigns stable ids to a stream of per-frame detections using
// greedy IoU matching.
type Tracker struct {
	trackThresh float32
	matchThresh float32
	maxTimeLost int

	frameID      int
	trackIDCount int64
	tracks       []*track
}

// New builds a Tracker. trackThresh is the minimum detection confidence
// that may start a new track; matchThresh is the minimum IoU for a
// detection to count as a match for an existing track; maxTimeLost is
// how many consecutive unmatched frames a track survives before being
// dropped.
func New(trackThresh, matchThresh float32, maxTimeLost int) *Tracker {
	return &Tracker{
		trackThresh: trackThresh,
		matchThresh: matchThresh,
		maxTimeLost: maxTimeLost,
	}
}

// Reset drops all track history, starting id assignment over from zero.
func (t *Tracker) Reset() {
	t.frameID = 0
	t.trackIDCount = 0
	t.tracks = nil
}

// iouCandidate is one (track, detection) pair whose IoU cleared
// matchThresh, ranked for greedy assignment.
type iouCandidate struct {
	trackIdx, detIdx int
	iou              float32
}

// Update matches dets against the tracker's live tracks and returns one
// meta.Object per track matched or newly created this frame. Tracks
// that go unmatched for more than maxTimeLost consecutive frames are
// dropped and no longer reported.
func (t *Tracker) Update(dets []Detection, sourceID int) ([]*meta.Object, error) {
	t.frameID++

	existing := t.tracks
	for _, tr := range existing {
		tr.predict()
	}

	var candidates []iouCandidate
	for ti, tr := range existing {
		for di, det := range dets {
			if tr.classID != det.ClassID {
				continue
			}
			if iou := iouOf(tr.rect, det.Rect); iou >= t.matchThresh {
				candidates = append(candidates, iouCandidate{ti, di, iou})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].iou > candidates[j].iou })

	matchedDetForTrack := make([]int, len(existing))
	for i := range matchedDetForTrack {
		matchedDetForTrack[i] = -1
	}
	matchedTrackForDet := make([]int, len(dets))
	for i := range matchedTrackForDet {
		matchedTrackForDet[i] = -1
	}

	for _, c := range candidates {
		if matchedDetForTrack[c.trackIdx] != -1 || matchedTrackForDet[c.detIdx] != -1 {
			continue
		}
		matchedDetForTrack[c.trackIdx] = c.detIdx
		matchedTrackForDet[c.detIdx] = c.trackIdx
	}

	var out []*meta.Object
	var kept []*track

	for ti, tr := range existing {
		if di := matchedDetForTrack[ti]; di >= 0 {
			tr.observe(dets[di])
			tr.lastSeenFrame = t.frameID
			kept = append(kept, tr)
			out = append(out, tr.toObject(sourceID))
			continue
		}
		if t.frameID-tr.lastSeenFrame <= t.maxTimeLost {
			kept = append(kept, tr)
		}
	}

	for di, det := range dets {
		if matchedTrackForDet[di] >= 0 {
			continue
		}
		if det.Confidence < float64(t.trackThresh) {
			continue
		}
		t.trackIDCount++
		tr := newTrack(t.trackIDCount, det)
		tr.lastSeenFrame = t.frameID
		kept = append(kept, tr)
		out = append(out, tr.toObject(sourceID))
	}

	t.tracks = kept

	return out, nil
}
