package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/halcyon-emu/timesrv/identifier"
	"github.com/halcyon-emu/timesrv/result"
)

// SteadyClock is the capability set shared by monotonic time sources.
type SteadyClock interface {
	// TimePoint returns the source's current reading tagged with its
	// identifier, or Unimplemented for sources without one.
	TimePoint() (SteadyTimePoint, error)

	// RawTimePoint returns the current reading with no test or internal
	// offset applied. Every concrete source must supply one.
	RawTimePoint() Duration

	TestOffset() Duration
	SetTestOffset(Duration)
	InternalOffset() Duration
	SetInternalOffset(Duration)

	// RtcValue returns the backing real-time clock value for sources that
	// emulate one, Unimplemented otherwise.
	RtcValue() (Duration, error)

	// SetupResult reports whether the source finished setting up.
	SetupResult() error
}

// CurrentTimePoint returns c's reading adjusted by its test and internal
// offsets. This is the externally visible reading; RawTimePoint is never
// offset-adjusted. The offsets exist so calibration and testing can shift
// apparent time without mutating the underlying source.
func CurrentTimePoint(c SteadyClock) (SteadyTimePoint, error) {
	tp, err := c.TimePoint()
	if err != nil {
		return SteadyTimePoint{}, err
	}
	tp.TimePoint += c.TestOffset().Add(c.InternalOffset()).Seconds()
	return tp, nil
}

// rawTimePoint derives a raw reading from a source's time point. A steady
// clock that cannot produce a raw reading when asked is misconfigured;
// that is a programming error, not a recoverable condition.
func rawTimePoint(c SteadyClock) Duration {
	tp, err := c.TimePoint()
	if err != nil {
		panic(fmt.Sprintf("clock: steady source has no raw reading: %v", err))
	}
	return FromSeconds(tp.TimePoint)
}

// SteadyBase supplies the default steady-clock behavior: zero offsets,
// no RTC, successful setup, and a TimePoint that fails with Unimplemented
// until a concrete source overrides it. Embed it in variants that only
// need to supply readings.
type SteadyBase struct {
	rtcResetDetected bool
	initialized      bool
}

// TimePoint fails with Unimplemented; concrete sources override it.
func (b *SteadyBase) TimePoint() (SteadyTimePoint, error) {
	return SteadyTimePoint{}, result.Unimplemented
}

func (b *SteadyBase) TestOffset() Duration { return 0 }

func (b *SteadyBase) SetTestOffset(Duration) {}

func (b *SteadyBase) InternalOffset() Duration { return 0 }

func (b *SteadyBase) SetInternalOffset(Duration) {}

// RtcValue fails with Unimplemented; there is no backing RTC emulation.
func (b *SteadyBase) RtcValue() (Duration, error) {
	return 0, result.Unimplemented
}

func (b *SteadyBase) SetupResult() error { return nil }

// MarkInitialized records that the surrounding service finished setting up
// this source.
func (b *SteadyBase) MarkInitialized() { b.initialized = true }

func (b *SteadyBase) IsInitialized() bool { return b.initialized }

// MarkRtcReset records that the backing RTC lost its state.
func (b *SteadyBase) MarkRtcReset() { b.rtcResetDetected = true }

func (b *SteadyBase) RtcResetDetected() bool { return b.rtcResetDetected }

var (
	_ SteadyClock = (*StandardSteady)(nil)
	_ SteadyClock = (*TickSteady)(nil)
)

// StandardSteady is the host-derived steady clock. Raw readings are the
// host monotonic clock plus a fixed RTC offset, filtered through a
// high-water cache so the sequence of raw readings never decreases even if
// the host source is adjusted backward.
type StandardSteady struct {
	SteadyBase

	mu             sync.Mutex // guards cached, rtcOffset
	cached         Duration
	rtcOffset      Duration
	testOffset     Duration
	internalOffset Duration

	id      identifier.Identifier
	hostNow func() Duration
}

// NewStandardSteady returns a standard steady clock with a fresh source
// identifier, reading elapsed time from the host monotonic clock.
func NewStandardSteady() *StandardSteady {
	start := time.Now()
	return &StandardSteady{
		id: identifier.Generate(),
		hostNow: func() Duration {
			return FromNanoseconds(time.Since(start).Nanoseconds())
		},
	}
}

// ID returns the clock's source identifier.
func (c *StandardSteady) ID() identifier.Identifier { return c.id }

// TimePoint returns the monotonicity-enforced raw seconds tagged with this
// source's identifier.
func (c *StandardSteady) TimePoint() (SteadyTimePoint, error) {
	return SteadyTimePoint{
		TimePoint: c.RawTimePoint().Seconds(),
		SourceID:  c.id,
	}, nil
}

// RawTimePoint reads the host monotonic clock, applies the RTC offset and
// returns the high-water mark of all readings so far.
func (c *StandardSteady) RawTimePoint() Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tp := c.hostNow().Add(c.rtcOffset); tp > c.cached {
		c.cached = tp
	}
	return c.cached
}

func (c *StandardSteady) TestOffset() Duration { return c.testOffset }

func (c *StandardSteady) SetTestOffset(offset Duration) { c.testOffset = offset }

func (c *StandardSteady) InternalOffset() Duration { return c.internalOffset }

func (c *StandardSteady) SetInternalOffset(offset Duration) { c.internalOffset = offset }

// RtcOffset returns the fixed offset added to every host reading.
func (c *StandardSteady) RtcOffset() Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rtcOffset
}

// SetRtcOffset rebases raw readings onto the emulated RTC epoch. The
// surrounding service sets this once during setup.
func (c *StandardSteady) SetRtcOffset(offset Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rtcOffset = offset
}

// TickSteady is a cheap, non-persistent steady source: host monotonic time
// with no cache and no offsets, for clocks with no calibration requirement.
type TickSteady struct {
	SteadyBase

	id    identifier.Identifier
	start time.Time
}

// NewTickSteady returns a tick-based steady clock with a fresh source
// identifier.
func NewTickSteady() *TickSteady {
	return &TickSteady{
		id:    identifier.Generate(),
		start: time.Now(),
	}
}

// ID returns the clock's source identifier.
func (c *TickSteady) ID() identifier.Identifier { return c.id }

// TimePoint returns host monotonic elapsed seconds tagged with this
// source's identifier.
func (c *TickSteady) TimePoint() (SteadyTimePoint, error) {
	elapsed := FromNanoseconds(time.Since(c.start).Nanoseconds())
	return SteadyTimePoint{
		TimePoint: elapsed.Seconds(),
		SourceID:  c.id,
	}, nil
}

// RawTimePoint derives the raw reading from TimePoint.
func (c *TickSteady) RawTimePoint() Duration {
	return rawTimePoint(c)
}
