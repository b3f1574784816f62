package shmem

import (
	"sync/atomic"
	"unsafe"

	"github.com/halcyon-emu/timesrv/clock"
)

// Guest ABI constants. The offsets are fixed by guest binaries and must
// never move.
const (
	LocalEntryOffset      = 0x38
	NetworkEntryOffset    = 0x80
	CorrectionEntryOffset = 0xC8
	RegionSize            = 0x1000
)

// contextWords is a 32-byte clock context expressed as 8-byte words.
const contextWords = 4

// contextEntry is one double-buffered clock context: the counter's parity
// selects the live slot, so the writer never touches the slot a reader of
// the current count is looking at.
type contextEntry struct {
	updateCount atomic.Uint32
	_           uint32
	context     [2][contextWords]atomic.Uint64
}

// correctionEntry publishes the automatic-correction flag through the same
// two-field counter pattern. The guest reads only the low byte of enabled;
// the remaining bytes are padding.
type correctionEntry struct {
	updateCount atomic.Uint32
	enabled     atomic.Uint32
}

// sharedLayout is the full guest-facing region, overlaid onto the kernel
// shared memory mapping.
type sharedLayout struct {
	_          [LocalEntryOffset]byte
	local      contextEntry
	network    contextEntry
	correction correctionEntry
	_          [RegionSize - CorrectionEntryOffset - 8]byte
}

// Compile-time guest ABI assertions: a non-zero index here means a field,
// size or padding change leaked into guest-visible memory.
var (
	_ = [1]struct{}{}[unsafe.Offsetof(sharedLayout{}.local)-LocalEntryOffset]
	_ = [1]struct{}{}[unsafe.Offsetof(sharedLayout{}.network)-NetworkEntryOffset]
	_ = [1]struct{}{}[unsafe.Offsetof(sharedLayout{}.correction)-CorrectionEntryOffset]
	_ = [1]struct{}{}[unsafe.Sizeof(sharedLayout{})-RegionSize]
	_ = [1]struct{}{}[unsafe.Sizeof(contextEntry{})-0x48]
	_ = [1]struct{}{}[unsafe.Offsetof(contextEntry{}.context)-0x8]
	_ = [1]struct{}{}[unsafe.Sizeof(clock.SystemContext{})-8*contextWords]
)
