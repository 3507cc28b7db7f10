package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// When selects whether an Always trigger fires its Actions before or
// after the per-object pass.
type When int

const (
	// Pre fires during PreProcess, before any object is checked.
	Pre When = iota
	// Post fires during PostProcess, after every object has been checked.
	Post
)

// Always fires its Actions once per frame regardless of object content,
// subject only to the frame-scoped portion of the filter gate.
type Always struct {
	baseTrigger
	when When
}

// NewAlways constructs an Always trigger that fires at the given point in
// the per-frame pipeline.
func NewAlways(name string, when When, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Always {
	return &Always{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log), when: when}
}

// PreProcess runs the shared per-frame bookkeeping, then fires the
// Trigger's Actions immediately when When==Pre.
func (a *Always) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	a.baseTrigger.PreProcess(frame, sink)

	if !a.IsEnabled() || a.when != Pre {
		return
	}
	if !a.checkFrameGate() {
		return
	}
	a.fireActions(frame, nil)
}

// CheckForOccurrence never inspects individual objects; Always fires only
// at the frame boundary.
func (a *Always) CheckForOccurrence(*meta.Frame, *meta.Object) bool { return false }

// PostProcess fires the Trigger's Actions when When==Post.
func (a *Always) PostProcess(frame *meta.Frame) uint {
	if !a.IsEnabled() || a.when != Post {
		return 0
	}
	if !a.checkFrameGate() {
		return 0
	}
	a.fireActions(frame, nil)
	return 1
}
