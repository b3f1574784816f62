package shmem

import (
	"sync"
	"testing"

	"github.com/halcyon-emu/timesrv/clock"
	"github.com/halcyon-emu/timesrv/identifier"
	"github.com/halcyon-emu/timesrv/kernel"
)

func newTestRegion(t *testing.T) *Region {
	t.Helper()
	r, err := New(kernel.NewSharedMemory(RegionSize))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func ctxAt(id identifier.Identifier, secs int64, offset uint64) clock.SystemContext {
	return clock.SystemContext{
		SteadyTimePoint: clock.SteadyTimePoint{TimePoint: secs, SourceID: id},
		Offset:          offset,
	}
}

func TestNewRejectsWrongSize(t *testing.T) {
	if _, err := New(kernel.NewSharedMemory(RegionSize / 2)); err == nil {
		t.Error("expected error for undersized mapping")
	}
	if _, err := New(kernel.NewSharedMemory(RegionSize * 2)); err == nil {
		t.Error("expected error for oversized mapping")
	}
}

func TestContextRoundTrip(t *testing.T) {
	r := newTestRegion(t)
	id := identifier.Generate()

	want := ctxAt(id, 100, 5)
	r.UpdateLocalContext(want)

	got, count := r.LocalContext()
	if count != 1 {
		t.Errorf("update count = %d, want 1", count)
	}
	if got != want {
		t.Errorf("LocalContext = %+v, want %+v", got, want)
	}
}

func TestUpdateCountAdvancesByOne(t *testing.T) {
	r := newTestRegion(t)
	id := identifier.Generate()

	for i := int64(1); i <= 5; i++ {
		r.UpdateNetworkContext(ctxAt(id, i, uint64(i)))
		got, count := r.NetworkContext()
		if count != uint32(i) {
			t.Fatalf("after update %d: count = %d, want %d", i, count, i)
		}
		if got.SteadyTimePoint.TimePoint != i {
			t.Fatalf("after update %d: read back seconds %d", i, got.SteadyTimePoint.TimePoint)
		}
	}
}

func TestEntriesAreIndependent(t *testing.T) {
	r := newTestRegion(t)
	id := identifier.Generate()

	localCtx := ctxAt(id, 10, 1)
	networkCtx := ctxAt(id, 20, 2)
	r.UpdateLocalContext(localCtx)
	r.UpdateNetworkContext(networkCtx)
	r.UpdateNetworkContext(networkCtx)

	if got, count := r.LocalContext(); got != localCtx || count != 1 {
		t.Errorf("LocalContext = %+v count %d, want %+v count 1", got, count, localCtx)
	}
	if got, count := r.NetworkContext(); got != networkCtx || count != 2 {
		t.Errorf("NetworkContext = %+v count %d, want %+v count 2", got, count, networkCtx)
	}
}

func TestAutomaticCorrectionRoundTrip(t *testing.T) {
	r := newTestRegion(t)

	if enabled, count := r.AutomaticCorrection(); enabled || count != 0 {
		t.Errorf("fresh region correction = %v count %d, want false count 0", enabled, count)
	}

	r.SetAutomaticCorrection(true)
	if enabled, count := r.AutomaticCorrection(); !enabled || count != 1 {
		t.Errorf("correction = %v count %d, want true count 1", enabled, count)
	}
}

// TestConcurrentReadersNeverSeeTornContext races one writer per entry
// against many readers. Every written context satisfies
// offset == seconds, so any torn read surfaces as a mismatched pair.
func TestConcurrentReadersNeverSeeTornContext(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test")
	}

	r := newTestRegion(t)
	id := identifier.Generate()

	const updates = 100_000
	const readers = 4

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				ctx, _ := r.LocalContext()
				if ctx.Offset != uint64(ctx.SteadyTimePoint.TimePoint) {
					t.Errorf("torn read: seconds %d, offset %d",
						ctx.SteadyTimePoint.TimePoint, ctx.Offset)
					return
				}
				if ctx.Offset != 0 && ctx.SteadyTimePoint.SourceID != id {
					t.Error("torn read: wrong source identifier")
					return
				}
			}
		}()
	}

	for i := int64(1); i <= updates; i++ {
		r.UpdateLocalContext(ctxAt(id, i, uint64(i)))
	}
	close(done)
	wg.Wait()

	got, count := r.LocalContext()
	if count != updates {
		t.Errorf("final count = %d, want %d", count, updates)
	}
	if got.SteadyTimePoint.TimePoint != updates {
		t.Errorf("final seconds = %d, want %d", got.SteadyTimePoint.TimePoint, updates)
	}
}
