package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// CheckOccurrenceFunc is a client callback invoked per matching object,
// returning true to fire the Trigger's Actions for it.
type CheckOccurrenceFunc func(frame *meta.Frame, obj *meta.Object, clientData any) bool

// CheckPostProcessFunc is a client callback invoked once per frame after
// the per-object pass, returning true to fire the Trigger's Actions.
type CheckPostProcessFunc func(frame *meta.Frame, clientData any) bool

// Custom delegates its fire decision to client-supplied callbacks. Both
// callbacks are invoked through the shared listener panic-recovery path
// so a misbehaving client cannot bring down the engine.
type Custom struct {
	baseTrigger
	checkOccurrence CheckOccurrenceFunc
	checkPost       CheckPostProcessFunc
	clientData      any
}

// NewCustom constructs a Custom trigger. Either callback may be nil, in
// which case that phase never fires.
func NewCustom(name string, checkOccurrence CheckOccurrenceFunc, checkPost CheckPostProcessFunc, clientData any, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Custom {
	return &Custom{
		baseTrigger:     newBaseTrigger(name, counter, resolver, sched, log),
		checkOccurrence: checkOccurrence,
		checkPost:       checkPost,
		clientData:      clientData,
	}
}

// CheckForOccurrence applies the shared filter gate, then delegates to
// the client's per-object callback, firing Actions when it returns true.
func (c *Custom) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !c.IsEnabled() || c.checkOccurrence == nil {
		return false
	}
	if !c.checkForMinCriteria(frame, obj) {
		return false
	}
	if !c.checkForWithin(obj.Rect) {
		return false
	}

	fired := false
	c.safeCall(func() {
		if c.checkOccurrence(frame, obj, c.clientData) {
			fired = true
		}
	})
	if !fired {
		return false
	}

	c.fireActions(frame, obj)
	return true
}

// PostProcess delegates to the client's post-process callback, firing
// Actions once when it returns true.
func (c *Custom) PostProcess(frame *meta.Frame) uint {
	if !c.IsEnabled() || c.checkPost == nil || !c.checkFrameGate() {
		return 0
	}

	fired := false
	c.safeCall(func() {
		if c.checkPost(frame, c.clientData) {
			fired = true
		}
	})
	if !fired {
		return 0
	}

	c.fireActions(frame, nil)
	return 1
}
