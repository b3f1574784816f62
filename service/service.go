package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/halcyon-emu/timesrv/clock"
	"github.com/halcyon-emu/timesrv/kernel"
	"github.com/halcyon-emu/timesrv/shmem"
)

// TimeService owns one instance of every clock core, the shared time
// region and the context writers, and wires their cross-references. It
// lives for the emulated session; the region mapping is never torn down
// before the session ends.
type TimeService struct {
	standardSteady *clock.StandardSteady
	tickSteady     *clock.TickSteady

	local     *clock.LocalSystem
	network   *clock.NetworkSystem
	ephemeral *clock.EphemeralNetworkSystem
	user      *clock.UserSystem

	sharedMemory *kernel.KSharedMemory
	region       *shmem.Region

	localWriter     *LocalWriter
	networkWriter   *NetworkWriter
	ephemeralWriter *EphemeralWriter
}

// New constructs the service in strict dependency order: steady clocks,
// the system clocks referencing them, the user clock composing local and
// network, the shared region, and finally the writers referencing the
// region. System clocks reference steady clocks but never the reverse.
func New() (*TimeService, error) {
	standardSteady := clock.NewStandardSteady()
	tickSteady := clock.NewTickSteady()

	local := clock.NewLocalSystem(standardSteady)
	network := clock.NewNetworkSystem(standardSteady)
	ephemeral := clock.NewEphemeralNetworkSystem(tickSteady)
	user := clock.NewUserSystem(standardSteady, local, network, kernel.NewEvent())

	mem := kernel.NewSharedMemory(shmem.RegionSize)
	region, err := shmem.New(mem)
	if err != nil {
		return nil, fmt.Errorf("service: mapping time region: %w", err)
	}

	s := &TimeService{
		standardSteady:  standardSteady,
		tickSteady:      tickSteady,
		local:           local,
		network:         network,
		ephemeral:       ephemeral,
		user:            user,
		sharedMemory:    mem,
		region:          region,
		localWriter:     NewLocalWriter(region),
		networkWriter:   NewNetworkWriter(region),
		ephemeralWriter: NewEphemeralWriter(),
	}

	standardSteady.MarkInitialized()
	tickSteady.MarkInitialized()

	Logger().Info("time service constructed",
		zap.Stringer("standard_source", standardSteady.ID()),
		zap.Stringer("tick_source", tickSteady.ID()))
	return s, nil
}

func (s *TimeService) StandardSteady() *clock.StandardSteady { return s.standardSteady }

func (s *TimeService) TickSteady() *clock.TickSteady { return s.tickSteady }

func (s *TimeService) LocalClock() *clock.LocalSystem { return s.local }

func (s *TimeService) NetworkClock() *clock.NetworkSystem { return s.network }

func (s *TimeService) EphemeralClock() *clock.EphemeralNetworkSystem { return s.ephemeral }

func (s *TimeService) UserClock() *clock.UserSystem { return s.user }

// Region returns the guest-facing shared time region.
func (s *TimeService) Region() *shmem.Region { return s.region }

func (s *TimeService) LocalWriter() *LocalWriter { return s.localWriter }

func (s *TimeService) NetworkWriter() *NetworkWriter { return s.networkWriter }

func (s *TimeService) EphemeralWriter() *EphemeralWriter { return s.ephemeralWriter }

// SetLocalContext stores ctx on the local clock and publishes it to the
// guest.
func (s *TimeService) SetLocalContext(ctx clock.SystemContext) error {
	if err := s.local.SetContext(ctx); err != nil {
		return err
	}
	return s.localWriter.UpdateContext(ctx)
}

// SetNetworkContext stores ctx on the network clock and publishes it to
// the guest.
func (s *TimeService) SetNetworkContext(ctx clock.SystemContext) error {
	if err := s.network.SetContext(ctx); err != nil {
		return err
	}
	return s.networkWriter.UpdateContext(ctx)
}

// SetEphemeralContext stores ctx on the ephemeral network clock. Waiters
// are signaled but nothing reaches the shared region.
func (s *TimeService) SetEphemeralContext(ctx clock.SystemContext) error {
	if err := s.ephemeral.SetContext(ctx); err != nil {
		return err
	}
	return s.ephemeralWriter.UpdateContext(ctx)
}

// SetAutomaticCorrection flips the user clock's correction policy and
// publishes the flag to the guest.
func (s *TimeService) SetAutomaticCorrection(enabled bool) error {
	if err := s.user.SetAutomaticCorrectionEnabled(enabled); err != nil {
		return err
	}
	s.region.SetAutomaticCorrection(enabled)
	Logger().Debug("automatic correction published", zap.Bool("enabled", enabled))
	return nil
}
