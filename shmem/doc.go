// Package shmem implements the guest-facing shared time region: a fixed
// 4096-byte block through which the emulated kernel publishes clock
// contexts for lock-free guest consumption.
//
// # Layout
//
// The byte layout is guest ABI and must match exactly:
//
//	0x00  reserved header
//	0x38  local clock context entry
//	0x80  network clock context entry
//	0xC8  automatic-correction entry
//
// Each context entry is {updateCount u32, pad u32, context[2]} with two
// 32-byte context slots; the correction entry is {updateCount u32,
// enabled u8}. Offsets and sizes are enforced with compile-time
// assertions; changing any of them breaks guest binaries.
//
// # Publication Protocol
//
// Writers follow a seqlock discipline: increment a local copy of the
// counter, write the slot selected by the new count's parity, then
// release-publish the counter. A reader that observes a counter value is
// therefore guaranteed to observe the fully written slot that value
// selects. Readers reread the counter after the slot copy and retry if a
// writer raced past them. There is exactly one writer per entry; readers
// never block.
//
// Slot words are copied through 64-bit atomics, which on little-endian
// hosts (the only ones the emulated console ABI supports) leaves the
// guest-visible byte image identical to a plain copy.
package shmem
