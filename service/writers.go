package service

import (
	"go.uber.org/zap"

	"github.com/halcyon-emu/timesrv/clock"
	"github.com/halcyon-emu/timesrv/shmem"
)

// LocalWriter publishes local clock context changes into the shared time
// region and signals guest waiters.
type LocalWriter struct {
	updateCallback
	region *shmem.Region
}

var _ ContextWriter = (*LocalWriter)(nil)

// NewLocalWriter returns a writer over the region's local entry.
func NewLocalWriter(region *shmem.Region) *LocalWriter {
	return &LocalWriter{region: region}
}

// UpdateContext publishes newCtx to the local entry. No-op updates neither
// touch the region nor wake waiters.
func (w *LocalWriter) UpdateContext(newCtx clock.SystemContext) error {
	if !w.updateBaseContext(newCtx) {
		return nil
	}

	w.region.UpdateLocalContext(newCtx)
	w.signalOperationEvent()
	Logger().Debug("local clock context published",
		zap.Int64("steady_seconds", newCtx.SteadyTimePoint.TimePoint),
		zap.Uint64("offset", newCtx.Offset))
	return nil
}

// NetworkWriter publishes network clock context changes into the shared
// time region and signals guest waiters.
type NetworkWriter struct {
	updateCallback
	region *shmem.Region
}

var _ ContextWriter = (*NetworkWriter)(nil)

// NewNetworkWriter returns a writer over the region's network entry.
func NewNetworkWriter(region *shmem.Region) *NetworkWriter {
	return &NetworkWriter{region: region}
}

// UpdateContext publishes newCtx to the network entry. No-op updates
// neither touch the region nor wake waiters.
func (w *NetworkWriter) UpdateContext(newCtx clock.SystemContext) error {
	if !w.updateBaseContext(newCtx) {
		return nil
	}

	w.region.UpdateNetworkContext(newCtx)
	w.signalOperationEvent()
	Logger().Debug("network clock context published",
		zap.Int64("steady_seconds", newCtx.SteadyTimePoint.TimePoint),
		zap.Uint64("offset", newCtx.Offset))
	return nil
}

// EphemeralWriter signals waiters on context changes but never touches the
// shared region: its clock has no guest-visible shared-memory presence.
type EphemeralWriter struct {
	updateCallback
}

var _ ContextWriter = (*EphemeralWriter)(nil)

// NewEphemeralWriter returns a writer with no shared-memory backing.
func NewEphemeralWriter() *EphemeralWriter {
	return &EphemeralWriter{}
}

// UpdateContext records newCtx and wakes waiters when it changed.
func (w *EphemeralWriter) UpdateContext(newCtx clock.SystemContext) error {
	if !w.updateBaseContext(newCtx) {
		return nil
	}

	w.signalOperationEvent()
	return nil
}
