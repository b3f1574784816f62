package clock

// SystemClock is the capability set shared by wall-clock abstractions.
type SystemClock interface {
	// Steady returns the steady source this clock is anchored to.
	Steady() SteadyClock

	// Context returns the clock's current anchor-plus-offset context.
	Context() (SystemContext, error)

	// SetContext overwrites the stored context.
	SetContext(SystemContext) error
}

// IsSetup reports whether c is considered configured: its context must be
// readable and its steady source's current reading must carry a valid
// identifier. A clock over a source with no real identity is never set up,
// even after SetContext.
func IsSetup(c SystemClock) bool {
	if _, err := c.Context(); err != nil {
		return false
	}
	tp, err := CurrentTimePoint(c.Steady())
	return err == nil && tp.SourceID.Valid()
}

// systemCore is the passive context holder embedded by the system clock
// variants. Most variants are exactly this plus a constructor.
type systemCore struct {
	steady SteadyClock
	ctx    SystemContext
}

func (c *systemCore) Steady() SteadyClock { return c.steady }

func (c *systemCore) Context() (SystemContext, error) { return c.ctx, nil }

func (c *systemCore) SetContext(ctx SystemContext) error {
	c.ctx = ctx
	return nil
}

var (
	_ SystemClock = (*LocalSystem)(nil)
	_ SystemClock = (*NetworkSystem)(nil)
	_ SystemClock = (*EphemeralNetworkSystem)(nil)
	_ SystemClock = (*UserSystem)(nil)
)

// LocalSystem is the console-local wall clock, anchored to the standard
// steady clock.
type LocalSystem struct {
	systemCore
}

// NewLocalSystem returns a local system clock over steady.
func NewLocalSystem(steady SteadyClock) *LocalSystem {
	return &LocalSystem{systemCore{steady: steady}}
}

// NetworkSystem is the network-synchronized wall clock, anchored to the
// standard steady clock. The sufficient-accuracy window bounds how stale a
// network context may be before the surrounding correction policy stops
// treating it as authoritative.
type NetworkSystem struct {
	systemCore

	sufficientAccuracy Duration
}

// NewNetworkSystem returns a network system clock over steady with the
// default ten-day sufficient-accuracy window.
func NewNetworkSystem(steady SteadyClock) *NetworkSystem {
	return &NetworkSystem{
		systemCore:         systemCore{steady: steady},
		sufficientAccuracy: FromDays(10),
	}
}

// SufficientAccuracy returns the current staleness window.
func (c *NetworkSystem) SufficientAccuracy() Duration {
	return c.sufficientAccuracy
}

// SetSufficientAccuracy adjusts the staleness window.
func (c *NetworkSystem) SetSufficientAccuracy(d Duration) {
	c.sufficientAccuracy = d
}

// EphemeralNetworkSystem is an in-process alternate network time base with
// no guest-visible shared-memory presence. It is bound to the tick-based
// steady clock so ephemeral network time never aliases local or network
// time.
type EphemeralNetworkSystem struct {
	systemCore
}

// NewEphemeralNetworkSystem returns an ephemeral network clock over steady.
func NewEphemeralNetworkSystem(steady SteadyClock) *EphemeralNetworkSystem {
	return &EphemeralNetworkSystem{systemCore{steady: steady}}
}
