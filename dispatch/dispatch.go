// Package dispatch drives the per-frame pipeline: PreProcess on every
// registered Trigger, then CheckForOccurrence per object per Trigger,
// then PostProcess on every Trigger — a strict ordering guarantee kept
// in one small coordinating type.
package dispatch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/ode"
)

// Orchestrator holds an ordered set of Triggers and runs them through the
// shared per-frame pipeline against one source's frames.
type Orchestrator struct {
	mu       sync.Mutex
	triggers []ode.Trigger
	log      *zap.Logger
}

// New builds an empty Orchestrator. A nil logger falls back to zap.NewNop.
func New(log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{log: log}
}

// AddTrigger registers t, to run after every previously registered
// Trigger.
func (o *Orchestrator) AddTrigger(t ode.Trigger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.triggers = append(o.triggers, t)
}

// RemoveTrigger unregisters the Trigger with the given name, if present.
func (o *Orchestrator) RemoveTrigger(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, t := range o.triggers {
		if t.Name() == name {
			o.triggers = append(o.triggers[:i], o.triggers[i+1:]...)
			return true
		}
	}
	return false
}

// Triggers returns a snapshot of the currently registered Triggers, in
// registration order.
func (o *Orchestrator) Triggers() []ode.Trigger {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]ode.Trigger, len(o.triggers))
	copy(out, o.triggers)
	return out
}

// RunFrame drives frame and objects through every registered Trigger:
// PreProcess on all Triggers, then CheckForOccurrence for every object
// against every Trigger, then PostProcess on all Triggers — each phase
// running Triggers in registration order.
func (o *Orchestrator) RunFrame(frame *meta.Frame, objects []*meta.Object, sink display.MetaSink) {
	if sink == nil {
		sink = display.Discard
	}

	triggers := o.Triggers()

	for _, t := range triggers {
		t.PreProcess(frame, sink)
	}

	for _, obj := range objects {
		for _, t := range triggers {
			t.CheckForOccurrence(frame, obj)
		}
	}

	for _, t := range triggers {
		fired := t.PostProcess(frame)
		if fired > 0 {
			o.log.Debug("dispatch: trigger fired",
				zap.String("trigger", t.Name()), zap.Uint("count", fired))
		}
	}
}
