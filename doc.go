// Package timesrv implements the time-keeping subsystem of a console-style
// guest OS emulator: the hierarchy of monotonic ("steady") and wall-clock
// ("system") clock sources, and the shared-memory region through which the
// emulated kernel publishes current time to guest processes without locks.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	timesrv/          Root package with kernel collaborator interfaces
//	├── result/       Service result codes (success, Unimplemented)
//	├── identifier/   128-bit random clock source identifiers
//	├── clock/        Steady and system clock cores and their value types
//	├── shmem/        Guest-facing shared time region (seqlock publication)
//	├── kernel/       In-process kernel event and shared memory objects
//	├── service/      Context update writers and the TimeService root
//	└── cmd/timewatch Live viewer for the shared time region
//
// # Clock Composition
//
// A system clock pairs a steady-clock anchor with an offset:
//
//	wall-clock seconds = steady reading at anchor + offset
//
// which lets wall-clock time be recomputed cheaply from any later steady
// reading without re-synchronizing. The user-facing clock composes the
// local and network clocks, preferring network-corrected time when
// automatic correction is enabled.
//
// # Guest ABI
//
// The shared time region is a fixed 4096-byte layout the guest reads
// directly. Each clock context entry is double-buffered and published with
// a seqlock protocol: a reader that observes an update count is guaranteed
// to observe the fully written slot that count selects, never a torn one.
// Field offsets are part of the guest ABI and statically asserted; any
// change to them is a breaking change.
//
// # Thread Safety
//
// Clock cores guard their internal caches with mutexes. The shared region
// write path is lock-free by design: guest code polls time extremely
// frequently and must never block on the emulator's internal state.
package timesrv
