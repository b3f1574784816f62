package clock

import (
	"errors"
	"strings"
	"testing"

	"github.com/halcyon-emu/timesrv/identifier"
	"github.com/halcyon-emu/timesrv/result"
)

// scriptedSteady returns a standard steady clock whose host readings are
// served from the given sequence, then repeat the last value.
func scriptedSteady(readings ...Duration) *StandardSteady {
	i := 0
	return &StandardSteady{
		id: identifier.Generate(),
		hostNow: func() Duration {
			r := readings[i]
			if i < len(readings)-1 {
				i++
			}
			return r
		},
	}
}

func TestStandardSteadyRawNeverDecreases(t *testing.T) {
	c := scriptedSteady(
		FromSeconds(100),
		FromSeconds(150),
		FromSeconds(90), // host clock adjusted backward
		FromSeconds(120),
		FromSeconds(151),
	)

	prev := Duration(-1 << 62)
	for i := 0; i < 5; i++ {
		got := c.RawTimePoint()
		if got < prev {
			t.Fatalf("reading %d decreased: %d < %d", i, got, prev)
		}
		prev = got
	}
	if prev != FromSeconds(151) {
		t.Errorf("final reading = %d, want %d", prev, FromSeconds(151))
	}
}

func TestStandardSteadyRawHoldsHighWater(t *testing.T) {
	c := scriptedSteady(FromSeconds(150), FromSeconds(90))

	if got := c.RawTimePoint(); got != FromSeconds(150) {
		t.Fatalf("first reading = %d, want %d", got, FromSeconds(150))
	}
	// Host moved backward; the cached high-water mark must win.
	if got := c.RawTimePoint(); got != FromSeconds(150) {
		t.Errorf("reading after host regression = %d, want %d", got, FromSeconds(150))
	}
}

func TestStandardSteadyRtcOffset(t *testing.T) {
	c := scriptedSteady(FromSeconds(10), FromSeconds(10))
	c.SetRtcOffset(FromSeconds(1_000_000))

	tp, err := c.TimePoint()
	if err != nil {
		t.Fatalf("TimePoint failed: %v", err)
	}
	if tp.TimePoint != 1_000_010 {
		t.Errorf("seconds = %d, want 1000010", tp.TimePoint)
	}
	if tp.SourceID != c.ID() {
		t.Error("time point not tagged with the clock's identifier")
	}
}

func TestCurrentTimePointAppliesOffsets(t *testing.T) {
	tests := []struct {
		name     string
		test     Duration
		internal Duration
		want     int64 // seconds added to the raw reading
	}{
		{"both zero", 0, 0, 0},
		{"test only", FromSeconds(30), 0, 30},
		{"internal only", 0, FromSeconds(12), 12},
		{"both", FromSeconds(30), FromSeconds(12), 42},
		{"negative", FromSeconds(-100), FromSeconds(40), -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scriptedSteady(FromSeconds(500), FromSeconds(500), FromSeconds(500))
			c.SetTestOffset(tt.test)
			c.SetInternalOffset(tt.internal)

			base, err := c.TimePoint()
			if err != nil {
				t.Fatalf("TimePoint failed: %v", err)
			}
			adjusted, err := CurrentTimePoint(c)
			if err != nil {
				t.Fatalf("CurrentTimePoint failed: %v", err)
			}

			if got := adjusted.TimePoint - base.TimePoint; got != tt.want {
				t.Errorf("adjustment = %d seconds, want %d", got, tt.want)
			}
			if adjusted.SourceID != base.SourceID {
				t.Error("offset adjustment must not change the source identifier")
			}
		})
	}
}

func TestRawTimePointNeverOffsetAdjusted(t *testing.T) {
	c := scriptedSteady(FromSeconds(500), FromSeconds(500))
	c.SetTestOffset(FromSeconds(1000))
	c.SetInternalOffset(FromSeconds(2000))

	if got := c.RawTimePoint(); got != FromSeconds(500) {
		t.Errorf("RawTimePoint = %d, want %d (offsets must not apply)", got, FromSeconds(500))
	}
}

func TestTickSteadyTimePoint(t *testing.T) {
	c := NewTickSteady()

	tp, err := c.TimePoint()
	if err != nil {
		t.Fatalf("TimePoint failed: %v", err)
	}
	if !tp.SourceID.Valid() {
		t.Error("tick steady clock must tag readings with a valid identifier")
	}
	if tp.SourceID != c.ID() {
		t.Error("reading tagged with a foreign identifier")
	}
	if tp.TimePoint < 0 || tp.TimePoint > 1 {
		t.Errorf("elapsed seconds = %d, want ~0 right after construction", tp.TimePoint)
	}
}

func TestSteadyClockIdentifiersDistinct(t *testing.T) {
	std := NewStandardSteady()
	tick := NewTickSteady()

	if std.ID() == tick.ID() {
		t.Error("distinct sources must have distinct identifiers")
	}
}

func TestSteadyBaseDefaults(t *testing.T) {
	var b SteadyBase

	if _, err := b.TimePoint(); !errors.Is(err, result.Unimplemented) {
		t.Errorf("base TimePoint error = %v, want Unimplemented", err)
	}
	if _, err := b.RtcValue(); !errors.Is(err, result.Unimplemented) {
		t.Errorf("base RtcValue error = %v, want Unimplemented", err)
	}
	if err := b.SetupResult(); err != nil {
		t.Errorf("base SetupResult = %v, want nil", err)
	}
	if b.TestOffset() != 0 || b.InternalOffset() != 0 {
		t.Error("base offsets must default to zero")
	}
	if b.IsInitialized() {
		t.Error("base must start uninitialized")
	}
	b.MarkInitialized()
	if !b.IsInitialized() {
		t.Error("MarkInitialized did not stick")
	}
}

// bareSteady has no reading of its own, so deriving a raw reading from it
// is an invariant violation.
type bareSteady struct {
	SteadyBase
}

func (c *bareSteady) RawTimePoint() Duration {
	return rawTimePoint(c)
}

func TestRawTimePointPanicsWithoutReading(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for a source without a raw reading")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "no raw reading") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()

	c := &bareSteady{}
	c.RawTimePoint()
}
