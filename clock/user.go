package clock

import (
	"github.com/halcyon-emu/timesrv"
	"github.com/halcyon-emu/timesrv/result"
)

// UserSystem is the user-facing wall clock. It owns no context of its own:
// reads compose the local and network clocks, preferring network-corrected
// time when automatic correction is enabled and the network clock is set
// up.
type UserSystem struct {
	systemCore

	local   *LocalSystem
	network *NetworkSystem

	automaticCorrection bool
	correctionUpdated   SteadyTimePoint
	correctionEvent     timesrv.Event
}

// NewUserSystem returns a user clock composing local and network, anchored
// to the same standard steady clock. correctionEvent is signaled whenever
// the automatic-correction policy flips; it may be nil.
func NewUserSystem(steady *StandardSteady, local *LocalSystem, network *NetworkSystem, correctionEvent timesrv.Event) *UserSystem {
	return &UserSystem{
		systemCore:      systemCore{steady: steady},
		local:           local,
		network:         network,
		correctionEvent: correctionEvent,
	}
}

// Context returns the user-visible clock context. With automatic
// correction enabled and a set-up network clock, the network context is
// first applied to the local clock; a failed fetch or apply propagates
// rather than silently falling back, since it indicates a deeper
// inconsistency. In every other case this is the local clock's context.
func (c *UserSystem) Context() (SystemContext, error) {
	if c.automaticCorrection && IsSetup(c.network) {
		ctx, err := c.network.Context()
		if err != nil {
			return SystemContext{}, err
		}
		if err := c.local.SetContext(ctx); err != nil {
			return SystemContext{}, err
		}
	}

	return c.local.Context()
}

// SetContext always fails with Unimplemented: the user-visible context is
// never mutated directly, only through the underlying local and network
// clocks.
func (c *UserSystem) SetContext(SystemContext) error {
	return result.Unimplemented
}

// AutomaticCorrectionEnabled reports the current correction policy.
func (c *UserSystem) AutomaticCorrectionEnabled() bool {
	return c.automaticCorrection
}

// SetAutomaticCorrectionEnabled flips the correction policy, records the
// steady time of the change and wakes waiters on the correction event.
func (c *UserSystem) SetAutomaticCorrectionEnabled(enabled bool) error {
	tp, err := CurrentTimePoint(c.steady)
	if err != nil {
		return err
	}

	c.automaticCorrection = enabled
	c.correctionUpdated = tp
	if c.correctionEvent != nil {
		c.correctionEvent.Signal()
	}
	return nil
}

// CorrectionUpdatedTime returns the steady time point at which the
// correction policy last changed.
func (c *UserSystem) CorrectionUpdatedTime() SteadyTimePoint {
	return c.correctionUpdated
}
