package service

import (
	"sync"

	"github.com/halcyon-emu/timesrv"
	"github.com/halcyon-emu/timesrv/clock"
)

// ContextWriter gates and fans out clock context changes.
type ContextWriter interface {
	// UpdateContext applies a context change, publishing and signaling
	// waiters only when the context actually changed.
	UpdateContext(ctx clock.SystemContext) error

	// AddOperationEvent registers a kernel event to signal on changes.
	AddOperationEvent(ev timesrv.Event)
}

// updateCallback is the shared gate embedded by every writer: it
// deduplicates redundant updates and signals registered guest events.
// The mutex guards both the stored context and the event list; it is
// never held across a shared-memory write.
type updateCallback struct {
	mu     sync.Mutex
	events []timesrv.Event
	ctx    *clock.SystemContext // nil until the first update
}

// AddOperationEvent registers ev for signaling on context changes.
func (c *updateCallback) AddOperationEvent(ev timesrv.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

// updateBaseContext stores newCtx and reports whether it differed from the
// previous one. Guest waiters must not be woken for no-op updates, so
// callers short-circuit on false.
func (c *updateCallback) updateBaseContext(newCtx clock.SystemContext) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx != nil && *c.ctx == newCtx {
		return false
	}
	c.ctx = &newCtx
	return true
}

// signalOperationEvent wakes every registered event. The lock covers only
// the iteration, not the shared-memory write that precedes it.
func (c *updateCallback) signalOperationEvent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range c.events {
		ev.Signal()
	}
}
