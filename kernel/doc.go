// Package kernel provides in-process implementations of the emulated
// kernel objects the time service depends on: a notifiable waitable event
// and a mappable shared memory region.
//
// These stand in for the real kernel primitives at their interface
// boundary. The time core only signals events and writes through the
// mapping; guest-side registration, waiting and mapping management happen
// elsewhere in the emulator.
package kernel
