package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/ode"
)

// phaseRecorder is a minimal ode.Trigger that logs which phase it was
// invoked in, to assert cross-Trigger and cross-phase ordering.
type phaseRecorder struct {
	name string
	log  *[]string
}

func (r *phaseRecorder) Name() string { return r.name }
func (r *phaseRecorder) PreProcess(*meta.Frame, display.MetaSink) {
	*r.log = append(*r.log, r.name+":pre")
}
func (r *phaseRecorder) CheckForOccurrence(*meta.Frame, *meta.Object) bool {
	*r.log = append(*r.log, r.name+":check")
	return false
}
func (r *phaseRecorder) PostProcess(*meta.Frame) uint {
	*r.log = append(*r.log, r.name+":post")
	return 0
}
func (r *phaseRecorder) Reset() {}

func TestRunFrameOrdersPhasesAcrossTriggers(t *testing.T) {
	var log []string
	a := &phaseRecorder{name: "a", log: &log}
	b := &phaseRecorder{name: "b", log: &log}

	o := New(nil)
	o.AddTrigger(a)
	o.AddTrigger(b)

	f := &meta.Frame{SourceID: 1, FrameNum: 1}
	objs := []*meta.Object{{ClassID: 1, ObjectID: 1}}

	o.RunFrame(f, objs, display.Discard)

	want := []string{"a:pre", "b:pre", "a:check", "b:check", "a:post", "b:post"}
	assert.Equal(t, want, log)
}

func TestRunFrameChecksEveryObjectAgainstEveryTrigger(t *testing.T) {
	var log []string
	a := &phaseRecorder{name: "a", log: &log}

	o := New(nil)
	o.AddTrigger(a)

	f := &meta.Frame{SourceID: 1, FrameNum: 1}
	objs := []*meta.Object{
		{ClassID: 1, ObjectID: 1, Rect: geometry.Rect{Width: 1, Height: 1}},
		{ClassID: 1, ObjectID: 2, Rect: geometry.Rect{Width: 1, Height: 1}},
	}

	o.RunFrame(f, objs, display.Discard)

	checks := 0
	for _, e := range log {
		if e == "a:check" {
			checks++
		}
	}
	assert.Equal(t, len(objs), checks, "check invocations")
}

func TestRemoveTrigger(t *testing.T) {
	o := New(nil)
	trg := ode.NewOccurrence("occ", ode.NewEventCounter(), nil, nil, nil)
	o.AddTrigger(trg)

	assert.True(t, o.RemoveTrigger("occ"))
	assert.Empty(t, o.Triggers())
	assert.False(t, o.RemoveTrigger("missing"))
}
