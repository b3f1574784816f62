package kernel

import (
	"unsafe"

	"github.com/halcyon-emu/timesrv"
)

// KSharedMemory is a kernel memory region shared between emulator and
// guest. The backing store is zero-filled and 8-byte aligned so structured
// overlays with atomic fields are valid on it.
type KSharedMemory struct {
	b []byte
}

var _ timesrv.SharedMemory = (*KSharedMemory)(nil)

// NewSharedMemory allocates a mapping of size bytes. size must be
// positive; it is rounded up internally to whole 8-byte words but the
// reported size is exact.
func NewSharedMemory(size int) *KSharedMemory {
	if size <= 0 {
		panic("kernel: shared memory size must be positive")
	}
	words := make([]uint64, (size+7)/8)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	return &KSharedMemory{b: b}
}

// Bytes returns the mapping's backing store.
func (m *KSharedMemory) Bytes() []byte {
	return m.b
}

// Size returns the mapping size in bytes.
func (m *KSharedMemory) Size() int {
	return len(m.b)
}
