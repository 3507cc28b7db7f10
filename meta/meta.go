// Package meta defines the per-frame object metadata the ODE core consumes.
// It plays the role of the surrounding video pipeline's inference output —
// an external collaborator per the engine's scope — shaped after a single
// model's decode output but generalized into a model-agnostic view.
package meta

import "github.com/nimbusvid/odecore/geometry"

// MiscObjKey names a derived metric the engine stamps onto an Object for
// downstream Actions to read.
type MiscObjKey int

const (
	// PrimaryMetric holds a Trigger's primary derived value for the
	// object it fired on: an AB-style Trigger's measured distance, an
	// Occurrence/Instance's per-frame occurrence count, a Smallest/
	// Largest's bounding-box area, or an Earliest/Latest/Persistence's
	// duration in whole seconds (mirrored from Persistence).
	PrimaryMetric MiscObjKey = iota
	// Persistence holds a tracked object's observed duration in whole
	// seconds, stamped by Earliest/Latest/Persistence triggers.
	Persistence
)

// MiscFrameKey names a derived metric the engine stamps onto a Frame.
type MiscFrameKey int

const (
	// Occurrences holds the count of matches a Summation trigger found
	// this frame.
	Occurrences MiscFrameKey = iota
)

// AnyClass is the sentinel class id meaning "match any class".
const AnyClass = -1

// Object is a single object detection result for one frame.
type Object struct {
	ClassID           int
	ObjectID          int64
	UniqueComponentID int
	Confidence        float64
	Rect              geometry.Rect

	// MiscInfo is the writable side-table the engine stamps derived
	// metrics onto for downstream Actions to read.
	MiscInfo map[MiscObjKey]float64
}

// SetMisc stamps a derived metric onto the object, initializing the
// side-table lazily.
func (o *Object) SetMisc(key MiscObjKey, value float64) {
	if o.MiscInfo == nil {
		o.MiscInfo = make(map[MiscObjKey]float64)
	}
	o.MiscInfo[key] = value
}

// GetMisc reads a previously stamped derived metric.
func (o *Object) GetMisc(key MiscObjKey) (float64, bool) {
	v, ok := o.MiscInfo[key]
	return v, ok
}

// Frame is the per-frame metadata surrounding a batch of Objects.
type Frame struct {
	SourceID     int
	FrameNum     uint64
	SourceWidth  int
	SourceHeight int
	InferDone    bool

	// MiscInfo is the writable side-table the engine stamps derived
	// frame-level metrics onto (e.g. Summation's occurrence count).
	MiscInfo map[MiscFrameKey]float64
}

// SetMisc stamps a derived metric onto the frame, initializing the
// side-table lazily.
func (f *Frame) SetMisc(key MiscFrameKey, value float64) {
	if f.MiscInfo == nil {
		f.MiscInfo = make(map[MiscFrameKey]float64)
	}
	f.MiscInfo[key] = value
}

// GetMisc reads a previously stamped derived metric.
func (f *Frame) GetMisc(key MiscFrameKey) (float64, bool) {
	v, ok := f.MiscInfo[key]
	return v, ok
}
