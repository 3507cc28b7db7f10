// Package ode implements the Object Detection Event core: the Trigger
// family, its shared filter/rate-limit/listener pipeline, and 18
// concrete predicate variants. The shared struct/mutator surface favors
// small, single-purpose, mutex-guarded types over one large controller.
package ode

import "sync/atomic"

// Base holds the identity fields every Trigger shares: name, enable
// flag, and the parent-assigned index used to order children.
type Base struct {
	name    string
	enabled bool
	index   int
}

// NewBase constructs a Base, enabled by default.
func NewBase(name string) Base {
	return Base{name: name, enabled: true}
}

// Name returns the Trigger's unique name.
func (b *Base) Name() string { return b.name }

// SetIndex records the parent-assigned, monotonic child index.
func (b *Base) SetIndex(i int) { b.index = i }

// Index returns the parent-assigned child index.
func (b *Base) Index() int { return b.index }

// EventCounter is the process-wide, monotonic event count shared across
// every Trigger, passed in at construction rather than hidden behind a
// package-level global.
type EventCounter struct {
	n atomic.Uint64
}

// NewEventCounter returns a fresh, zeroed EventCounter.
func NewEventCounter() *EventCounter {
	return &EventCounter{}
}

// Next atomically increments and returns the new event count.
func (c *EventCounter) Next() uint64 {
	return c.n.Add(1)
}

// Value returns the current event count without incrementing it.
func (c *EventCounter) Value() uint64 {
	return c.n.Load()
}
