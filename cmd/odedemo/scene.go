package main

import (
	"math"
	"math/rand"

	"github.com/nimbusvid/odecore/assign"
	"github.com/nimbusvid/odecore/geometry"
)

// actor is one synthetic moving object the scene generator drives across
// the frame, standing in for a real detector's per-frame output.
type actor struct {
	classID      int
	radius       float64
	angularSpeed float64
	phase        float64
	boxW, boxH   float64
	baseConf     float64
}

// scene generates a deterministic-per-run sequence of synthetic
// detections — an in-memory stand-in for a live capture and detection
// pipeline, since the engine itself has no model or camera dependency.
type scene struct {
	width, height int
	cx, cy        float64
	actors        []actor
	rng           *rand.Rand
}

func newScene(width, height, numActors int, seed int64) *scene {
	rng := rand.New(rand.NewSource(seed))

	s := &scene{
		width:  width,
		height: height,
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
		rng:    rng,
	}

	classes := []int{0, 0, 1, 2}
	for i := 0; i < numActors; i++ {
		s.actors = append(s.actors, actor{
			classID:      classes[i%len(classes)],
			radius:       float64(30+i*20) + rng.Float64()*20,
			angularSpeed: 0.03 + rng.Float64()*0.05,
			phase:        rng.Float64() * 2 * math.Pi,
			boxW:         20 + rng.Float64()*20,
			boxH:         20 + rng.Float64()*20,
			baseConf:     0.55 + rng.Float64()*0.4,
		})
	}
	return s
}

// detectionsAt returns the raw detection list for frameNum, each actor
// tracing a circular path of its own radius/speed/phase around the
// scene's center, with a little confidence jitter.
func (s *scene) detectionsAt(frameNum uint64) []assign.Detection {
	dets := make([]assign.Detection, 0, len(s.actors))

	for i, a := range s.actors {
		theta := a.phase + a.angularSpeed*float64(frameNum)
		cx := s.cx + a.radius*math.Cos(theta)
		cy := s.cy + a.radius*math.Sin(theta)*0.6 // flatten into an ellipse

		conf := a.baseConf + (s.rng.Float64()-0.5)*0.05
		if conf > 0.99 {
			conf = 0.99
		}

		rect := geometry.NewRect(cx-a.boxW/2, cy-a.boxH/2, a.boxW, a.boxH)
		dets = append(dets, assign.NewDetection(rect, a.classID, conf, int64(i)+1))
	}

	return dets
}
