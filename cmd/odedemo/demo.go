package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/nimbusvid/odecore/action"
	"github.com/nimbusvid/odecore/area"
	"github.com/nimbusvid/odecore/assign"
	"github.com/nimbusvid/odecore/dispatch"
	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/heatmap"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/ode"
	"github.com/nimbusvid/odecore/palette"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/render"
	"github.com/nimbusvid/odecore/schedule"
	"github.com/nimbusvid/odecore/track"
)

// runConfig holds the demo's command-line-derived settings.
type runConfig struct {
	width, height int
	numActors     int
	frames        int
	seed          int64
	outVideo      string
	sourceName    string
	classNames    []string
}

// demo wires a synthetic detection stream through a Tracker and a
// dispatch.Orchestrator configured with a representative handful of
// Trigger variants, optionally rendering the annotated result to a
// video file.
type demo struct {
	cfg runConfig
	log *zap.Logger

	scene    *scene
	tracker  *assign.Tracker
	orch     *dispatch.Orchestrator
	resolver *registry.DefaultResolver
	sched    *schedule.DefaultScheduler
	heat     *heatmap.HeatMap
	trails   *track.Store

	sourceID int
}

func newDemo(cfg runConfig, log *zap.Logger) *demo {
	if log == nil {
		log = zap.NewNop()
	}

	runID := uuid.New().String()
	log = log.With(zap.String("runID", runID))

	d := &demo{
		cfg:      cfg,
		log:      log,
		scene:    newScene(cfg.width, cfg.height, cfg.numActors, cfg.seed),
		tracker:  assign.New(0.5, 0.3, 10),
		resolver: registry.NewDefaultResolver(log),
		sched:    schedule.NewDefaultScheduler(log),
		heat:     heatmap.New(8, 8, geometry.Center, palette.Default),
		trails:   track.NewStore(30, geometry.Center),
		sourceID: 1,
	}

	d.resolver.RegisterSource(cfg.sourceName, d.sourceID)
	d.orch = dispatch.New(log)
	d.buildTriggers()

	return d
}

// buildTriggers registers a representative handful of Trigger variants
// against the orchestrator: an Occurrence with a rate limit, a Cross
// against a line drawn through the middle of the frame, and a Count
// bounding how many actors may be on screen at once.
func (d *demo) buildTriggers() {
	counter := ode.NewEventCounter()

	logFire := func(kind string) func(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object) {
		return func(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object) {
			if obj != nil {
				d.log.Info("trigger fired", zap.String("kind", kind), zap.String("trigger", triggerName),
					zap.Uint64("frame", frame.FrameNum), zap.Int64("objectID", obj.ObjectID))
			} else {
				d.log.Info("trigger fired", zap.String("kind", kind), zap.String("trigger", triggerName),
					zap.Uint64("frame", frame.FrameNum))
			}
		}
	}

	occ := ode.NewOccurrence("occurrence-limit", counter, d.resolver, d.sched, d.log)
	occ.SetSource(d.cfg.sourceName)
	occ.SetLimit(20)
	occ.AddAction(action.NewFunc("log", logFire("occurrence")))
	d.orch.AddTrigger(occ)

	gate := area.NewLine("center-gate",
		[]geometry.Point{{X: 0, Y: float64(d.cfg.height) / 2}, {X: float64(d.cfg.width), Y: float64(d.cfg.height) / 2}},
		area.WithBorder(render.Yellow, 1),
	)

	cross := ode.NewCross("gate-cross", 3, geometry.Center, track.FullTrace, counter, d.resolver, d.sched, d.log)
	cross.SetSource(d.cfg.sourceName)
	cross.AddArea(gate)
	cross.AddAction(action.NewFunc("log", logFire("cross")))
	d.orch.AddTrigger(cross)

	count := ode.NewCount("actor-count", 1, uint(d.cfg.numActors), counter, d.resolver, d.sched, d.log)
	count.SetSource(d.cfg.sourceName)
	count.AddAction(action.NewFunc("log", logFire("count")))
	d.orch.AddTrigger(count)
}

// runFrame advances the scene one frame: generates raw detections,
// assigns stable ids via the tracker, runs the dispatch pipeline, and
// (if img is non-nil) renders the annotated frame into img.
func (d *demo) runFrame(frameNum uint64, img *gocv.Mat) ([]*meta.Object, error) {
	dets := d.scene.detectionsAt(frameNum)

	objects, err := d.tracker.Update(dets, d.sourceID)
	if err != nil {
		return nil, fmt.Errorf("tracker update: %w", err)
	}

	frame := &meta.Frame{
		SourceID:     d.sourceID,
		FrameNum:     frameNum,
		SourceWidth:  d.cfg.width,
		SourceHeight: d.cfg.height,
		InferDone:    true,
	}

	var sink display.MetaSink = display.Discard
	var rs *render.Sink
	if img != nil {
		rs = render.NewSink(img, render.DefaultFont())
		sink = rs
	}

	d.orch.RunFrame(frame, objects, sink)

	for _, obj := range objects {
		d.heat.HandleOccurrence(frame, obj)
		d.trails.Update(track.Key{SourceID: d.sourceID, ObjectID: obj.ObjectID}, frameNum, obj.Rect, time.Now())
	}
	d.trails.Purge(frameNum)

	if rs != nil {
		d.heat.AddDisplayMeta(rs)
		render.Trail(rs, d.sourceID, objects, d.trails, palette.Default, render.DefaultTrailStyle())
		render.Boxes(rs, objects, d.cfg.classNames, palette.Default, 2)
		drawFrameLabel(img, frameNum, len(objects))
	}

	return objects, nil
}

func drawFrameLabel(img *gocv.Mat, frameNum uint64, objCount int) {
	text := fmt.Sprintf("frame %d  objects %d", frameNum, objCount)
	gocv.PutTextWithParams(img, text, image.Pt(4, 16),
		gocv.FontHersheySimplex, 0.5, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1, gocv.LineAA, false)
}
