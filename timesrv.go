package timesrv

// Event represents a notifiable kernel object that guest threads can wait
// on. The time core only ever signals events; registration and waiting from
// the guest side happen elsewhere.
type Event interface {
	// Signal wakes every waiter currently blocked on the event and leaves
	// the event in the signaled state until cleared.
	Signal()
}

// SharedMemory represents a kernel memory region mapped into both the
// emulator and the guest. The mapping's lifetime is managed by the
// implementing kernel object.
type SharedMemory interface {
	// Bytes returns the backing store of the mapping. The returned slice
	// aliases guest-visible memory; writes through it are observed by the
	// guest without further copies.
	Bytes() []byte

	// Size returns the size of the mapping in bytes.
	Size() int
}
