// Package service wires the time service together: the context update
// writers that gate changes into the shared time region, and the
// TimeService composition root that owns every clock core.
//
// # Update Flow
//
// External context updates flow one way:
//
//	update → writer dedup → shared region entry → operation event signal
//
// A writer compares each update against the last one it stored and does
// nothing for no-op updates, so guest event waiters are never woken
// redundantly. The local and network writers publish into the shared
// region before signaling; the ephemeral writer signals only, since its
// clock has no guest-visible shared-memory presence.
//
// # Construction Order
//
// TimeService builds its members in strict dependency order: steady clocks
// first, then the system clocks referencing them, then the shared region,
// then the writers referencing the region. System clocks only ever
// reference steady clocks, never the reverse, so no ownership cycle
// exists.
package service
