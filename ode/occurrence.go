package ode

import (
	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Occurrence fires its Actions for every matching object, subject to the
// shared filter gate and within-area test. It keeps no additional state
// beyond baseTrigger.
type Occurrence struct {
	baseTrigger
}

// NewOccurrence constructs an Occurrence trigger.
func NewOccurrence(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) *Occurrence {
	return &Occurrence{baseTrigger: newBaseTrigger(name, counter, resolver, sched, log)}
}

// CheckForOccurrence fires the Trigger's Actions immediately for obj if
// it passes the shared filter gate and within-area test.
func (o *Occurrence) CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool {
	if !o.IsEnabled() {
		return false
	}
	if !o.checkForMinCriteria(frame, obj) {
		return false
	}
	if !o.checkForWithin(obj.Rect) {
		return false
	}

	o.propMu.Lock()
	o.occurrences++
	count := o.occurrences
	o.propMu.Unlock()

	obj.SetMisc(meta.PrimaryMetric, float64(count))
	o.fireActions(frame, obj)
	return true
}

// PostProcess does no additional work for Occurrence; all firing happens
// during the per-object check.
func (o *Occurrence) PostProcess(*meta.Frame) uint { return 0 }
