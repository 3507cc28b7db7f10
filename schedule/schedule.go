// Package schedule abstracts the host's single-shot timer facility behind
// a trait, per the design note that the reset-timer should be the only
// asynchrony in the engine. DefaultScheduler wraps time.AfterFunc; a host
// embedding this engine into a larger event loop can supply its own.
package schedule

import (
	"time"

	"go.uber.org/zap"
)

// Handle identifies a scheduled callback so it can later be canceled.
type Handle interface{}

// Scheduler schedules and cancels single-shot callbacks.
type Scheduler interface {
	ScheduleOnce(d time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// DefaultScheduler implements Scheduler on top of time.AfterFunc.
type DefaultScheduler struct {
	log *zap.Logger
}

// NewDefaultScheduler builds a DefaultScheduler. A nil logger falls back
// to zap.NewNop, since a scheduler with nothing to report is a common,
// valid configuration (e.g. in tests).
func NewDefaultScheduler(log *zap.Logger) *DefaultScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DefaultScheduler{log: log}
}

// ScheduleOnce schedules fn to run once after d elapses.
func (s *DefaultScheduler) ScheduleOnce(d time.Duration, fn func()) Handle {
	if d <= 0 {
		s.log.Warn("schedule: non-positive duration, running immediately", zap.Duration("duration", d))
		fn()
		return nil
	}
	return time.AfterFunc(d, fn)
}

// Cancel stops a previously scheduled callback. A nil or already-fired
// handle is a no-op.
func (s *DefaultScheduler) Cancel(h Handle) {
	timer, ok := h.(*time.Timer)
	if !ok || timer == nil {
		return
	}
	timer.Stop()
}
