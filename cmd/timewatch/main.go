package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/halcyon-emu/timesrv/clock"
	"github.com/halcyon-emu/timesrv/service"
)

func main() {
	var (
		localOffset   = flag.Int64("local-offset", 0, "Publish a local clock context with this offset (POSIX seconds)")
		networkOffset = flag.Int64("network-offset", 0, "Publish a network clock context with this offset (POSIX seconds)")
		auto          = flag.Bool("auto", false, "Enable automatic correction")
		interactive   = flag.Bool("i", false, "Interactive mode with TUI")
		verbose       = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		service.SetLogger(logger)
	}

	svc, err := service.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *localOffset != 0 {
		if err := publishLocal(svc, *localOffset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *networkOffset != 0 {
		if err := publishNetwork(svc, *networkOffset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *auto {
		if err := svc.SetAutomaticCorrection(true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(svc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printSnapshot(svc)
}

func publishLocal(svc *service.TimeService, offset int64) error {
	tp, err := clock.CurrentTimePoint(svc.StandardSteady())
	if err != nil {
		return err
	}
	return svc.SetLocalContext(clock.SystemContext{
		SteadyTimePoint: tp,
		Offset:          uint64(offset),
	})
}

func publishNetwork(svc *service.TimeService, offset int64) error {
	tp, err := clock.CurrentTimePoint(svc.StandardSteady())
	if err != nil {
		return err
	}
	return svc.SetNetworkContext(clock.SystemContext{
		SteadyTimePoint: tp,
		Offset:          uint64(offset),
	})
}

func printSnapshot(svc *service.TimeService) {
	region := svc.Region()

	local, localCount := region.LocalContext()
	network, networkCount := region.NetworkContext()
	corrected, corrCount := region.AutomaticCorrection()

	printEntry("local", local, localCount)
	printEntry("network", network, networkCount)
	fmt.Printf("correction  count=%d enabled=%v\n", corrCount, corrected)
}

func printEntry(name string, ctx clock.SystemContext, count uint32) {
	fmt.Printf("%-11s count=%d slot=%d steady=%ds offset=%d source=%s\n",
		name, count, count&1,
		ctx.SteadyTimePoint.TimePoint, ctx.Offset,
		ctx.SteadyTimePoint.SourceID)
}
