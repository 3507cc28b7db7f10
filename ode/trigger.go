package ode

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/nimbusvid/odecore/action"
	"github.com/nimbusvid/odecore/area"
	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/internal/omap"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/registry"
	"github.com/nimbusvid/odecore/schedule"
)

// Event is a limit-event delivered to registered listeners.
type Event int

const (
	// LimitReached fires the frame a Trigger's triggered count first
	// reaches its configured limit.
	LimitReached Event = iota
	// CountReset fires whenever Reset() runs, including via the
	// reset-timer.
	CountReset
	// LimitChanged fires whenever SetLimit changes the configured limit.
	LimitChanged
)

// String returns the canonical event name, mainly for logging.
func (e Event) String() string {
	switch e {
	case LimitReached:
		return "LIMIT_REACHED"
	case CountReset:
		return "COUNT_RESET"
	case LimitChanged:
		return "LIMIT_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// ListenerFunc is invoked synchronously when a Trigger's limit-event
// fires. Implementations must not panic — the engine recovers and logs.
type ListenerFunc func(triggerName string, event Event, clientData any)

// Trigger is the shared per-frame contract every concrete predicate
// variant implements.
type Trigger interface {
	Name() string
	PreProcess(frame *meta.Frame, sink display.MetaSink)
	CheckForOccurrence(frame *meta.Frame, obj *meta.Object) bool
	PostProcess(frame *meta.Frame) uint
	Reset()
}

// listenerEntry pairs a registered callback with its opaque client data.
type listenerEntry struct {
	fn         ListenerFunc
	clientData any
}

// baseTrigger implements the filter pipeline, rate-limit/reset-timer, and
// listener fan-out shared by every concrete Trigger variant. Concrete
// variants embed baseTrigger and implement their own
// CheckForOccurrence/PostProcess/Reset, calling back into baseTrigger's
// unexported gate helpers — composition in place of a class hierarchy.
type baseTrigger struct {
	Base

	propMu  sync.Mutex
	timerMu sync.Mutex

	log      *zap.Logger
	resolver registry.Resolver
	sched    schedule.Scheduler
	counter  *EventCounter

	sourceName       string
	sourceID         int
	sourceIDResolved bool

	inferName       string
	inferID         int
	inferIDResolved bool

	classID       int
	minConfidence float64
	minWidth      float64
	minHeight     float64
	maxWidth      float64
	maxHeight     float64
	inferredOnly  bool

	minFrameCountN uint
	minFrameCountD uint
	frameHistory   []bool

	limit         uint
	triggered     uint
	resetTimeout  float64
	resetHandle   schedule.Handle
	resetTimerSet bool

	interval        uint
	intervalCounter uint
	skipFrame       bool

	occurrences uint
	currentSink display.MetaSink

	actions   *omap.Map[action.Action]
	areas     *omap.Map[area.Area]
	listeners *omap.Map[*listenerEntry]
	nextToken int
}

// newBaseTrigger constructs a baseTrigger with sane per-spec defaults:
// enabled, class filter set to AnyClass, unlimited rate.
func newBaseTrigger(name string, counter *EventCounter, resolver registry.Resolver, sched schedule.Scheduler, log *zap.Logger) baseTrigger {
	if log == nil {
		log = zap.NewNop()
	}
	return baseTrigger{
		Base:      NewBase(name),
		log:       log,
		resolver:  resolver,
		sched:     sched,
		counter:   counter,
		classID:   meta.AnyClass,
		actions:   omap.New[action.Action](),
		areas:     omap.New[area.Area](),
		listeners: omap.New[*listenerEntry](),
	}
}

// --- enable / identity -----------------------------------------------

func (b *baseTrigger) SetEnabled(enabled bool) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.enabled = enabled
}

func (b *baseTrigger) IsEnabled() bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.enabled
}

// --- filter mutators ---------------------------------------------------

func (b *baseTrigger) SetSource(name string) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	if name != b.sourceName {
		b.sourceName = name
		b.sourceIDResolved = false
	}
}

func (b *baseTrigger) SetInferComponent(name string) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	if name != b.inferName {
		b.inferName = name
		b.inferIDResolved = false
	}
}

func (b *baseTrigger) SetClassID(id int) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.classID = id
}

func (b *baseTrigger) SetMinConfidence(c float64) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.minConfidence = c
}

func (b *baseTrigger) SetDimensionLimits(minWidth, minHeight, maxWidth, maxHeight float64) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.minWidth = minWidth
	b.minHeight = minHeight
	b.maxWidth = maxWidth
	b.maxHeight = maxHeight
}

func (b *baseTrigger) SetInferredOnly(only bool) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.inferredOnly = only
}

// SetMinFrameCount configures the "at least n of the last d gate samples
// must have passed" requirement. Every checkForMinCriteria call (one per
// object checked) records one sample; samples are not aggregated per
// frame. d==0 disables the requirement.
func (b *baseTrigger) SetMinFrameCount(n, d uint) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.minFrameCountN = n
	b.minFrameCountD = d
	b.frameHistory = nil
}

// SetInterval configures the skip-frame modulus: a positive interval
// causes the Trigger to run on every interval'th frame only.
func (b *baseTrigger) SetInterval(interval uint) {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.interval = interval
	b.intervalCounter = 0
}

// --- rate limit ---------------------------------------------------------

func (b *baseTrigger) SetLimit(limit uint) {
	b.propMu.Lock()
	b.limit = limit
	b.propMu.Unlock()

	b.notifyListeners(LimitChanged)
}

func (b *baseTrigger) Limit() uint {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.limit
}

func (b *baseTrigger) Triggered() uint {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.triggered
}

// SetResetTimeout is idempotent: zero cancels any live timer; non-zero
// while a timer is live restarts it; non-zero with no timer live but the
// limit already reached starts one.
func (b *baseTrigger) SetResetTimeout(seconds float64) {
	b.propMu.Lock()
	limitReached := b.limit > 0 && b.triggered >= b.limit
	b.resetTimeout = seconds
	b.propMu.Unlock()

	b.timerMu.Lock()
	defer b.timerMu.Unlock()

	if seconds <= 0 {
		b.cancelTimerLocked()
		return
	}

	if b.resetTimerSet {
		b.cancelTimerLocked()
		b.startTimerLocked(seconds)
		return
	}

	if limitReached {
		b.startTimerLocked(seconds)
	}
}

// startTimerLocked assumes timerMu is held.
func (b *baseTrigger) startTimerLocked(seconds float64) {
	if b.sched == nil {
		return
	}
	d := durationFromSeconds(seconds)
	b.resetHandle = b.sched.ScheduleOnce(d, func() {
		b.timerMu.Lock()
		b.resetTimerSet = false
		b.resetHandle = nil
		b.timerMu.Unlock()

		b.Reset()
	})
	b.resetTimerSet = true
}

// cancelTimerLocked assumes timerMu is held.
func (b *baseTrigger) cancelTimerLocked() {
	if b.resetTimerSet && b.sched != nil {
		b.sched.Cancel(b.resetHandle)
	}
	b.resetTimerSet = false
	b.resetHandle = nil
}

// incrementAndCheckTriggerCount increments triggered and, if the limit is
// newly reached, notifies listeners and starts the reset timer.
func (b *baseTrigger) incrementAndCheckTriggerCount() {
	b.propMu.Lock()
	b.triggered++
	reached := b.limit > 0 && b.triggered == b.limit
	timeout := b.resetTimeout
	b.propMu.Unlock()

	if b.counter != nil {
		b.counter.Next()
	}

	if reached {
		b.notifyListeners(LimitReached)

		if timeout > 0 {
			b.timerMu.Lock()
			if !b.resetTimerSet {
				b.startTimerLocked(timeout)
			}
			b.timerMu.Unlock()
		}
	}
}

// --- listeners -----------------------------------------------------------

// AddListener registers fn, returning an opaque token used to remove it
// later. Token uniqueness stands in for the source's callback-pointer
// identity, since Go function values are not comparable.
func (b *baseTrigger) AddListener(fn ListenerFunc, clientData any) int {
	b.propMu.Lock()
	defer b.propMu.Unlock()

	b.nextToken++
	token := b.nextToken
	b.listeners.Add(tokenKey(token), &listenerEntry{fn: fn, clientData: clientData})
	return token
}

// RemoveListener unregisters a listener previously added with AddListener.
func (b *baseTrigger) RemoveListener(token int) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.listeners.Remove(tokenKey(token))
}

func (b *baseTrigger) notifyListeners(event Event) {
	b.propMu.Lock()
	entries := b.listeners.Values()
	name := b.name
	b.propMu.Unlock()

	for _, entry := range entries {
		b.safeCall(func() { entry.fn(name, event, entry.clientData) })
	}
}

// safeCall recovers any panic escaping a client callback and logs it,
// so a faulty Action, listener or Custom callback cannot take down the
// frame loop.
func (b *baseTrigger) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("ode: recovered panic from client callback",
				zap.String("trigger", b.name), zap.Any("panic", r))
		}
	}()
	fn()
}

// --- children: actions/areas ---------------------------------------------

func (b *baseTrigger) AddAction(a action.Action) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()

	if !b.actions.Add(a.Name(), a) {
		b.log.Warn("ode: duplicate action name", zap.String("trigger", b.name), zap.String("action", a.Name()))
		return false
	}
	return true
}

func (b *baseTrigger) RemoveAction(name string) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.actions.Remove(name)
}

func (b *baseTrigger) ClearActions() {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.actions.Clear()
}

func (b *baseTrigger) AddArea(a area.Area) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()

	if !b.areas.Add(a.Name(), a) {
		b.log.Warn("ode: duplicate area name", zap.String("trigger", b.name), zap.String("area", a.Name()))
		return false
	}
	return true
}

func (b *baseTrigger) RemoveArea(name string) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	return b.areas.Remove(name)
}

func (b *baseTrigger) ClearAreas() {
	b.propMu.Lock()
	defer b.propMu.Unlock()
	b.areas.Clear()
}

// fireActions invokes every registered Action in insertion order with obj
// (nil for frame-level fires), incrementing the rate limit counter once
// per call. It uses the display-meta sink captured during this frame's
// PreProcess call, since Action dispatch and PreProcess's display-meta
// emission share the same per-frame container.
func (b *baseTrigger) fireActions(frame *meta.Frame, obj *meta.Object) {
	b.propMu.Lock()
	actions := b.actions.Values()
	name := b.name
	sink := b.currentSink
	b.propMu.Unlock()

	if sink == nil {
		sink = display.Discard
	}

	for _, a := range actions {
		act := a
		b.safeCall(func() { act.HandleOccurrence(name, sink, frame, obj) })
	}

	b.incrementAndCheckTriggerCount()
}

// --- shared per-frame pipeline --------------------------------------------

// PreProcess resets the per-frame occurrence count, emits Area display
// meta unless disabled or source-filtered out, and advances the
// skip-frame interval counter.
func (b *baseTrigger) PreProcess(frame *meta.Frame, sink display.MetaSink) {
	if sink == nil {
		sink = display.Discard
	}

	b.propMu.Lock()
	b.occurrences = 0
	b.currentSink = sink

	if !b.enabled || !b.matchesSourceLocked(frame) {
		b.propMu.Unlock()
		return
	}

	areas := b.areas.Values()
	interval := b.interval
	b.intervalCounter++
	counter := b.intervalCounter
	b.propMu.Unlock()

	for _, a := range areas {
		a.AddDisplayMeta(sink)
	}

	skip := false
	if interval > 0 {
		skip = counter%interval != 0
	}

	b.propMu.Lock()
	b.skipFrame = skip
	b.propMu.Unlock()
}

// matchesSourceLocked reports whether frame's source matches this
// Trigger's configured source filter (or whether no filter is set).
// Callers must hold propMu.
func (b *baseTrigger) matchesSourceLocked(frame *meta.Frame) bool {
	if b.sourceName == "" {
		return true
	}
	if !b.sourceIDResolved {
		if id, ok := b.resolveSource(); ok {
			b.sourceID = id
			b.sourceIDResolved = true
		} else {
			return false
		}
	}
	return frame.SourceID == b.sourceID
}

func (b *baseTrigger) resolveSource() (int, bool) {
	if b.resolver == nil {
		return 0, false
	}
	return b.resolver.SourceIDGet(b.sourceName)
}

func (b *baseTrigger) resolveInfer() (int, bool) {
	if b.resolver == nil {
		return 0, false
	}
	return b.resolver.InferIDGet(b.inferName)
}

// checkForMinCriteria applies the shared filter gate in strict order,
// short-circuiting on the first failure.
func (b *baseTrigger) checkForMinCriteria(frame *meta.Frame, obj *meta.Object) bool {
	b.propMu.Lock()
	defer b.propMu.Unlock()

	pass := b.checkForMinCriteriaLocked(frame, obj)
	b.recordFrameHistoryLocked(pass)
	return pass && b.checkMinFrameCountLocked()
}

func (b *baseTrigger) checkForMinCriteriaLocked(frame *meta.Frame, obj *meta.Object) bool {
	if b.skipFrame {
		return false
	}

	if b.limit > 0 && b.triggered >= b.limit {
		return false
	}

	if b.sourceName != "" {
		if !b.sourceIDResolved {
			id, ok := b.resolveSource()
			if !ok {
				return false
			}
			b.sourceID = id
			b.sourceIDResolved = true
		}
		if frame.SourceID != b.sourceID {
			return false
		}
	}

	if b.inferName != "" {
		if !b.inferIDResolved {
			id, ok := b.resolveInfer()
			if !ok {
				return false
			}
			b.inferID = id
			b.inferIDResolved = true
		}
		if obj.UniqueComponentID != b.inferID {
			return false
		}
	}

	if b.classID != meta.AnyClass && obj.ClassID != b.classID {
		return false
	}

	if obj.Confidence > 0 && obj.Confidence < b.minConfidence {
		return false
	}

	if b.minWidth > 0 && obj.Rect.Width < b.minWidth {
		return false
	}
	if b.minHeight > 0 && obj.Rect.Height < b.minHeight {
		return false
	}
	if b.maxWidth > 0 && obj.Rect.Width > b.maxWidth {
		return false
	}
	if b.maxHeight > 0 && obj.Rect.Height > b.maxHeight {
		return false
	}

	if b.inferredOnly && !frame.InferDone {
		return false
	}

	return true
}

// recordFrameHistoryLocked appends pass into the bounded minFrameCount
// history ring, evicting the oldest sample beyond minFrameCountD.
// Callers must hold propMu.
func (b *baseTrigger) recordFrameHistoryLocked(pass bool) {
	if b.minFrameCountD == 0 {
		return
	}

	b.frameHistory = append(b.frameHistory, pass)
	if uint(len(b.frameHistory)) > b.minFrameCountD {
		b.frameHistory = b.frameHistory[uint(len(b.frameHistory))-b.minFrameCountD:]
	}
}

// checkMinFrameCountLocked reports whether the minFrameCount N/D
// requirement is satisfied, or true if unconfigured. Callers must hold
// propMu.
func (b *baseTrigger) checkMinFrameCountLocked() bool {
	if b.minFrameCountD == 0 {
		return true
	}

	count := uint(0)
	for _, ok := range b.frameHistory {
		if ok {
			count++
		}
	}
	return count >= b.minFrameCountN
}

// checkForWithin applies the within-area gate: with no Areas attached,
// accept; otherwise the first matching Area (in insertion order) decides
// accept/reject by its Inclusion() flag, and no match rejects.
func (b *baseTrigger) checkForWithin(r geometry.Rect) bool {
	b.propMu.Lock()
	areas := b.areas.Values()
	b.propMu.Unlock()

	if len(areas) == 0 {
		return true
	}

	for _, a := range areas {
		if a.CheckForWithin(r) {
			return a.Inclusion()
		}
	}

	return false
}

// Reset zeroes the triggered count and notifies listeners with
// CountReset. Concrete variants with additional state define their own
// Reset that clears that state and then calls this method.
func (b *baseTrigger) Reset() {
	b.propMu.Lock()
	b.triggered = 0
	b.propMu.Unlock()

	b.notifyListeners(CountReset)
}

func tokenKey(token int) string {
	return "listener#" + strconv.Itoa(token)
}
