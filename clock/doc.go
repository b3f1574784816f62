// Package clock implements the steady and system clock cores of the guest
// time service.
//
// # Steady Clocks
//
// A steady clock is a monotonic time source, not tied to wall-clock date.
// Two variants exist:
//
//	StandardSteady - host-derived, monotonicity-enforced, offset-adjustable
//	TickSteady     - simple elapsed-ticks source, no cache or offsets
//
// Every steady clock tags its readings with its own 128-bit identifier so
// readings from different sources never compare equal by accident.
//
// # System Clocks
//
// A system clock is a wall-clock abstraction built from a steady-clock
// anchor plus an offset, captured in a SystemContext. The Local, Network
// and EphemeralNetwork variants are passive context holders; the User
// variant composes the local and network clocks, preferring
// network-corrected time when automatic correction is enabled.
//
// Shared default behavior is expressed as free functions over the clock
// interfaces (CurrentTimePoint, IsSetup) rather than inheritance; each
// variant holds exactly the state it needs.
package clock
