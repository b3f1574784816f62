package kernel

import (
	"context"
	"sync"

	"github.com/halcyon-emu/timesrv"
)

// KEvent is a notifiable waitable object. Signal wakes every current
// waiter and leaves the event signaled until cleared, matching
// manual-reset kernel event semantics.
type KEvent struct {
	mu       sync.Mutex
	signaled bool
	waiters  []chan struct{}
}

var _ timesrv.Event = (*KEvent)(nil)

// NewEvent returns an unsignaled event.
func NewEvent() *KEvent {
	return &KEvent{}
}

// Signal marks the event signaled and wakes every waiter.
func (e *KEvent) Signal() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.signaled = true
	for _, w := range e.waiters {
		close(w)
	}
	e.waiters = nil
}

// Clear resets the event to unsignaled. Waiters already woken stay woken.
func (e *KEvent) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.signaled = false
}

// Signaled reports whether the event is currently signaled.
func (e *KEvent) Signaled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signaled
}

// Block waits until the event is signaled or ctx is done.
func (e *KEvent) Block(ctx context.Context) error {
	e.mu.Lock()
	if e.signaled {
		e.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	e.waiters = append(e.waiters, w)
	e.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
