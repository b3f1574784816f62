package shmem

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/halcyon-emu/timesrv"
	"github.com/halcyon-emu/timesrv/clock"
)

// Region is the emulator-side handle to the guest time region. It holds a
// non-owning view of the kernel shared memory mapping for the process
// lifetime; there is one writer per entry and any number of concurrent
// lock-free readers.
type Region struct {
	mem    timesrv.SharedMemory
	layout *sharedLayout
}

// New overlays the time region onto mem, which must be exactly RegionSize
// bytes and 8-byte aligned.
func New(mem timesrv.SharedMemory) (*Region, error) {
	b := mem.Bytes()
	if len(b) != RegionSize {
		return nil, fmt.Errorf("shmem: mapping is %d bytes, want %d", len(b), RegionSize)
	}
	if uintptr(unsafe.Pointer(&b[0]))%8 != 0 {
		return nil, fmt.Errorf("shmem: mapping base %p is not 8-byte aligned", &b[0])
	}

	return &Region{
		mem:    mem,
		layout: (*sharedLayout)(unsafe.Pointer(&b[0])),
	}, nil
}

// Memory returns the kernel shared memory object backing the region.
func (r *Region) Memory() timesrv.SharedMemory {
	return r.mem
}

// UpdateLocalContext publishes ctx into the local clock entry.
func (r *Region) UpdateLocalContext(ctx clock.SystemContext) {
	publishContext(&r.layout.local, ctx)
}

// UpdateNetworkContext publishes ctx into the network clock entry.
func (r *Region) UpdateNetworkContext(ctx clock.SystemContext) {
	publishContext(&r.layout.network, ctx)
}

// SetAutomaticCorrection publishes the automatic-correction flag. The core
// never writes this entry on its own; the surrounding correction policy
// drives it.
func (r *Region) SetAutomaticCorrection(enabled bool) {
	e := &r.layout.correction
	next := e.updateCount.Load() + 1
	var v uint32
	if enabled {
		v = 1
	}
	e.enabled.Store(v)
	e.updateCount.Store(next)
}

// LocalContext returns a consistent snapshot of the local entry and the
// update count it was read at.
func (r *Region) LocalContext() (clock.SystemContext, uint32) {
	return readContext(&r.layout.local)
}

// NetworkContext returns a consistent snapshot of the network entry and
// the update count it was read at.
func (r *Region) NetworkContext() (clock.SystemContext, uint32) {
	return readContext(&r.layout.network)
}

// AutomaticCorrection returns the published correction flag and its update
// count.
func (r *Region) AutomaticCorrection() (bool, uint32) {
	e := &r.layout.correction
	for {
		count := e.updateCount.Load()
		enabled := e.enabled.Load()&0xFF != 0
		if e.updateCount.Load() == count {
			return enabled, count
		}
	}
}

// publishContext writes ctx into the slot selected by the incremented
// counter, then release-publishes the counter. The counter store orders
// after the slot words, so a reader that observes the new count observes
// the fully written slot it selects.
func publishContext(e *contextEntry, ctx clock.SystemContext) {
	next := e.updateCount.Load() + 1
	storeContext(&e.context[next&1], ctx)
	e.updateCount.Store(next)
}

// readContext snapshots the counter, copies the selected slot and retries
// if a writer raced past the snapshot.
func readContext(e *contextEntry) (clock.SystemContext, uint32) {
	for {
		count := e.updateCount.Load()
		ctx := loadContext(&e.context[count&1])
		if e.updateCount.Load() == count {
			return ctx, count
		}
	}
}

func storeContext(slot *[contextWords]atomic.Uint64, ctx clock.SystemContext) {
	words := (*[contextWords]uint64)(unsafe.Pointer(&ctx))
	for i := range slot {
		slot[i].Store(words[i])
	}
}

func loadContext(slot *[contextWords]atomic.Uint64) clock.SystemContext {
	var words [contextWords]uint64
	for i := range words {
		words[i] = slot[i].Load()
	}
	return *(*clock.SystemContext)(unsafe.Pointer(&words))
}
