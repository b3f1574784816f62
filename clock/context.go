package clock

import (
	"unsafe"

	"github.com/halcyon-emu/timesrv/identifier"
)

// SteadyTimePoint is a steady-clock reading in seconds, tagged with the
// identifier of the source that produced it. Readings only compare equal
// when both the seconds and the source match.
//
// The in-memory layout is part of the guest ABI: 8 bytes of seconds
// followed by the 16 identifier bytes, 24 bytes total.
type SteadyTimePoint struct {
	TimePoint int64 // seconds
	SourceID  identifier.Identifier
}

// SystemContext anchors a wall clock to a steady clock: wall-clock seconds
// equal the steady reading at SteadyTimePoint plus Offset. A context is
// only meaningful against steady readings that share its source identifier.
//
// Layout is part of the guest ABI: the 24-byte time point followed by the
// 8-byte offset, 32 bytes total.
type SystemContext struct {
	SteadyTimePoint SteadyTimePoint
	Offset          uint64
}

// Guest ABI sizes. A mismatch here means a field or padding change leaked
// into guest-visible memory.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(SteadyTimePoint{})-24]
	_ = [1]struct{}{}[unsafe.Sizeof(SystemContext{})-32]
	_ = [1]struct{}{}[unsafe.Offsetof(SystemContext{}.Offset)-24]
)
