// Package action declares the dispatch contract Triggers call into when
// they fire. Concrete Action effects (drawing overlays, sending webhooks,
// writing to a database) are the host's responsibility — an external
// collaborator per the engine's scope — this package defines only the
// shape of the call and a name/index bookkeeping base every concrete
// Action embeds.
package action

import (
	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/meta"
)

// Action is a user-supplied effect a Trigger invokes when it fires.
// HandleOccurrence must not panic — the engine recovers at the call
// boundary and logs, but a well-behaved Action handles its own errors.
// obj is nil for frame-level fires (Always, Summation) that are not tied
// to a single object.
type Action interface {
	// Name uniquely identifies the Action within its owning Trigger.
	Name() string
	HandleOccurrence(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object)
}

// Base provides the Name bookkeeping every concrete Action embeds.
type Base struct {
	name string
}

// NewBase constructs a Base with the given name.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the Action's unique name.
func (b Base) Name() string {
	return b.name
}

// Func adapts a plain function into an Action, useful for tests and for
// small inline effects that don't warrant a dedicated type.
type Func struct {
	Base
	Fn func(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object)
}

// NewFunc builds a Func Action.
func NewFunc(name string, fn func(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object)) *Func {
	return &Func{Base: NewBase(name), Fn: fn}
}

func (f *Func) HandleOccurrence(triggerName string, sink display.MetaSink, frame *meta.Frame, obj *meta.Object) {
	f.Fn(triggerName, sink, frame, obj)
}
