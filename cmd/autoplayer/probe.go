package main

import (
	"time"

	"autoplayer/internal/detect"
	"autoplayer/internal/runstate"
	"autoplayer/internal/screen"

	"github.com/spf13/cobra"
)

var (
	probeCount    int
	probeInterval time.Duration
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Print the sampled colour and decision for every lane",
		RunE:  runProbeCmd,
	}

	cmd.Flags().IntVar(&probeCount, "count", 10, "number of samples per lane (0 = until interrupted)")
	cmd.Flags().DurationVar(&probeInterval, "interval", 200*time.Millisecond, "delay between samples")

	return cmd
}

func runProbeCmd(cmd *cobra.Command, _ []string) error {
	c, loggerManager, err := setup()
	if err != nil {
		return err
	}
	defer loggerManager.Close()

	for i, bounds := range screen.Displays() {
		loggerManager.Info("[PROBE] display %d: %v", i, bounds)
	}

	sampler, err := screen.Open(c.Sampler)
	if err != nil {
		loggerManager.LogError(err, "sampler")
		return err
	}
	defer sampler.Close()

	state := runstate.New()
	stop := stopOnSignal(cmd.Context(), state)
	defer stop()

	thresholds := c.Thresholds()
	for n := 0; state.Running() && (probeCount == 0 || n < probeCount); n++ {
		for i, lane := range c.Lanes {
			r, g, b, err := sampler.Sample(lane.X, c.HitZoneY)
			if err != nil {
				loggerManager.LogError(err, "sample")
				continue
			}
			loggerManager.Info("[PROBE] lane %d key=%s x=%d y=%d rgb=(%d,%d,%d) active=%v",
				i, lane.Key, lane.X, c.HitZoneY, r, g, b, detect.IsActive(r, g, b, thresholds))
		}
		time.Sleep(probeInterval)
	}
	return nil
}
