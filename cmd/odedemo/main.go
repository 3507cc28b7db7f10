// Command odedemo drives the tracking and event-dispatch engine end to
// end without a real detector or camera: it generates a synthetic
// sequence of frames with moving bounding boxes, assigns them stable
// ids through assign.Tracker, and runs the result through a
// dispatch.Orchestrator configured with a handful of Trigger variants,
// optionally writing the annotated frames out as a video.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := runConfig{
		width:      640,
		height:     480,
		numActors:  4,
		frames:     150,
		seed:       1,
		sourceName: "demo-cam",
		classNames: []string{"person", "vehicle", "bicycle"},
	}

	cmd := &cobra.Command{
		Use:   "odedemo",
		Short: "Run a synthetic scene through the tracking and event-dispatch engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.width, "width", cfg.width, "synthetic frame width")
	flags.IntVar(&cfg.height, "height", cfg.height, "synthetic frame height")
	flags.IntVar(&cfg.numActors, "actors", cfg.numActors, "number of synthetic moving objects")
	flags.IntVar(&cfg.frames, "frames", cfg.frames, "number of frames to generate")
	flags.Int64Var(&cfg.seed, "seed", cfg.seed, "random seed for scene generation")
	flags.StringVar(&cfg.outVideo, "out", cfg.outVideo, "optional path to write an annotated MJPEG video to")
	flags.StringVar(&cfg.sourceName, "source", cfg.sourceName, "logical source name registered with the resolver")

	return cmd
}

func run(cfg runConfig) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	d := newDemo(cfg, log)

	var writer *gocv.VideoWriter
	var frame gocv.Mat
	if cfg.outVideo != "" {
		frame = gocv.NewMatWithSize(cfg.height, cfg.width, gocv.MatTypeCV8UC3)
		defer frame.Close()

		writer, err = gocv.VideoWriterFile(cfg.outVideo, "MJPG", 25, cfg.width, cfg.height, true)
		if err != nil {
			return fmt.Errorf("open video writer: %w", err)
		}
		defer writer.Close()
	}

	for i := uint64(0); i < uint64(cfg.frames); i++ {
		var img *gocv.Mat
		if writer != nil {
			frame.SetTo(gocv.NewScalar(20, 20, 20, 0))
			img = &frame
		}

		objects, err := d.runFrame(i, img)
		if err != nil {
			return fmt.Errorf("run frame %d: %w", i, err)
		}
		log.Debug("frame processed", zap.Uint64("frame", i), zap.Int("objects", len(objects)))

		if writer != nil {
			if err := writer.Write(frame); err != nil {
				return fmt.Errorf("write frame %d: %w", i, err)
			}
		}
	}

	log.Info("demo complete",
		zap.Int("frames", cfg.frames),
		zap.Uint64("heatmapOccurrences", d.heat.TotalOccurrences()),
	)

	return nil
}
