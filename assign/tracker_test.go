package assign

import (
	"testing"

	"github.com/nimbusvid/odecore/geometry"
)

func rect(left, top, size float64) geometry.Rect {
	return geometry.Rect{Left: left, Top: top, Width: size, Height: size}
}

// TestTrackerAssignsStableIDsAcrossFrames checks that two well-separated
// actors keep the same ObjectID as they drift slightly frame to frame,
// and that each returned box exactly matches the latest detection.
func TestTrackerAssignsStableIDsAcrossFrames(t *testing.T) {
	trk := New(0.5, 0.3, 2)

	frame1 := []Detection{
		NewDetection(rect(0, 0, 10), 0, 0.9, 1),
		NewDetection(rect(100, 100, 10), 0, 0.9, 2),
	}

	out, err := trk.Update(frame1, 1)
	if err != nil {
		t.Fatalf("frame1 Update: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("frame1: got %d objects, want 2", len(out))
	}

	idA, idB := out[0].ObjectID, out[1].ObjectID
	if idA == idB {
		t.Fatalf("frame1: expected distinct ids, got %d and %d", idA, idB)
	}

	frame2 := []Detection{
		NewDetection(rect(2, 1, 10), 0, 0.9, 3),
		NewDetection(rect(103, 102, 10), 0, 0.9, 4),
	}

	out, err = trk.Update(frame2, 1)
	if err != nil {
		t.Fatalf("frame2 Update: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("frame2: got %d objects, want 2", len(out))
	}

	gotIDs := map[int64]geometry.Rect{out[0].ObjectID: out[0].Rect, out[1].ObjectID: out[1].Rect}

	wantA, ok := gotIDs[idA]
	if !ok {
		t.Fatalf("frame2: track %d dropped its id", idA)
	}
	if wantA != rect(2, 1, 10) {
		t.Errorf("frame2: track %d rect = %+v, want %+v", idA, wantA, rect(2, 1, 10))
	}

	wantB, ok := gotIDs[idB]
	if !ok {
		t.Fatalf("frame2: track %d dropped its id", idB)
	}
	if wantB != rect(103, 102, 10) {
		t.Errorf("frame2: track %d rect = %+v, want %+v", idB, wantB, rect(103, 102, 10))
	}
}

// TestLowConfidenceDetectionDoesNotStartTrack checks that a detection
// below trackThresh is dropped rather than seeding a new track.
func TestLowConfidenceDetectionDoesNotStartTrack(t *testing.T) {
	trk := New(0.5, 0.3, 2)

	out, err := trk.Update([]Detection{NewDetection(rect(0, 0, 10), 0, 0.2, 1)}, 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d objects from a below-threshold detection, want 0", len(out))
	}
}

// TestUnmatchedTrackExpiresAfterMaxTimeLost checks that a track missing
// for more than maxTimeLost consecutive frames is dropped, and that a
// detection reappearing at the same place afterward gets a fresh id
// rather than resuming the old one.
func TestUnmatchedTrackExpiresAfterMaxTimeLost(t *testing.T) {
	trk := New(0.5, 0.3, 2)

	det := func(box geometry.Rect, detID int64) []Detection {
		return []Detection{NewDetection(box, 0, 0.9, detID)}
	}

	out, err := trk.Update(det(rect(100, 100, 10), 1), 1)
	if err != nil {
		t.Fatalf("frame1: %v", err)
	}
	originalID := out[0].ObjectID

	// Frames 2-4 carry no detections for this box; it should survive
	// frames 2 and 3 (lost count within maxTimeLost) but be gone by 4.
	for f := 2; f <= 4; f++ {
		out, err = trk.Update(nil, 1)
		if err != nil {
			t.Fatalf("frame%d: %v", f, err)
		}
		if len(out) != 0 {
			t.Fatalf("frame%d: got %d objects with no detections, want 0", f, len(out))
		}
	}

	out, err = trk.Update(det(rect(100, 100, 10), 2), 1)
	if err != nil {
		t.Fatalf("frame5: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("frame5: got %d objects, want 1", len(out))
	}
	if out[0].ObjectID == originalID {
		t.Fatalf("frame5: expected a fresh id after expiry, got the original id %d back", originalID)
	}
}

func TestResetClearsTrackHistory(t *testing.T) {
	trk := New(0.5, 0.3, 2)

	if _, err := trk.Update([]Detection{NewDetection(rect(0, 0, 10), 0, 0.9, 1)}, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}

	trk.Reset()

	if trk.frameID != 0 || trk.trackIDCount != 0 {
		t.Fatalf("Reset left frameID=%d trackIDCount=%d, want 0,0", trk.frameID, trk.trackIDCount)
	}
	if len(trk.tracks) != 0 {
		t.Fatal("Reset left non-empty track list")
	}
}
