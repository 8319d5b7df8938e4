package main

import (
	"fmt"
	"time"

	"autoplayer/internal/input"
	"autoplayer/internal/interrupt"
	"autoplayer/internal/keys"
	"autoplayer/internal/runstate"

	"github.com/spf13/cobra"
)

// spamOptions: параметры замера скорости ввода
type spamOptions struct {
	Key      string
	Duration time.Duration
	Hold     time.Duration
	Gap      time.Duration
	Warmup   time.Duration
}

var spamOpts spamOptions

func newSpamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spam",
		Short: "Press and release a key repeatedly to measure the injection rate",
		RunE:  runSpamCmd,
	}

	cmd.Flags().StringVar(&spamOpts.Key, "key", "f", "key to spam (a-z, 0-9)")
	cmd.Flags().DurationVar(&spamOpts.Duration, "duration", 5*time.Second, "how long to run (0 = until ESC)")
	cmd.Flags().DurationVar(&spamOpts.Hold, "hold", time.Millisecond, "how long each press is held")
	cmd.Flags().DurationVar(&spamOpts.Gap, "gap", 0, "pause between presses")
	cmd.Flags().DurationVar(&spamOpts.Warmup, "warmup", time.Second, "delay before the first press")

	return cmd
}

func runSpamCmd(cmd *cobra.Command, _ []string) error {
	key, err := keys.Parse(spamOpts.Key)
	if err != nil {
		return err
	}

	c, loggerManager, err := setup()
	if err != nil {
		return err
	}
	defer loggerManager.Close()

	injector, err := input.Open(c.Injector, input.Options{SerialPort: c.SerialPort, BaudRate: c.BaudRate})
	if err != nil {
		loggerManager.LogError(err, "injector")
		return err
	}
	defer injector.Close()

	source, err := interrupt.OpenSource(c.AbortSource)
	if err != nil {
		loggerManager.LogError(err, "abort source")
		return err
	}
	defer source.Close()

	state := runstate.New()
	stop := stopOnSignal(cmd.Context(), state)
	defer stop()

	watcher := interrupt.NewWatcher(state, source, loggerManager)
	go watcher.Run()

	loggerManager.Info("Focus the target window. Press ESC to stop early.")
	time.Sleep(spamOpts.Warmup)

	count, elapsed, err := spam(injector, key, spamOpts, state, time.Now, time.Sleep)
	state.Stop()
	loggerManager.LogError(err, "spam")

	rate := 0.0
	if elapsed > 0 {
		rate = float64(count) / elapsed.Seconds()
	}
	loggerManager.Info("Sent %d presses in %.3fs -> %.1f KPS", count, elapsed.Seconds(), rate)
	return nil
}

const (
	releaseAttempts = 3
	releaseRetry    = time.Millisecond
)

// releaseKey отпускает клавишу, повторяя попытку, чтобы она не осталась зажатой
func releaseKey(injector input.Injector, key keys.Key, sleep func(time.Duration)) error {
	var err error
	for attempt := 1; attempt <= releaseAttempts; attempt++ {
		if err = injector.KeyUp(key); err == nil {
			return nil
		}
		if attempt < releaseAttempts {
			sleep(releaseRetry)
		}
	}
	return fmt.Errorf("key up after %d attempts, %s may be stuck down: %w", releaseAttempts, key, err)
}

// spam жмет клавишу, пока не истечет Duration или не сбросится running.
// Нажатие считается, только если отпускание прошло успешно.
func spam(injector input.Injector, key keys.Key, opts spamOptions, state *runstate.State, now func() time.Time, sleep func(time.Duration)) (int, time.Duration, error) {
	count := 0
	start := now()
	for state.Running() {
		if opts.Duration > 0 && now().Sub(start) >= opts.Duration {
			break
		}

		if err := injector.KeyDown(key); err != nil {
			return count, now().Sub(start), fmt.Errorf("key down: %w", err)
		}
		if opts.Hold > 0 {
			sleep(opts.Hold)
		}
		if err := releaseKey(injector, key, sleep); err != nil {
			return count, now().Sub(start), err
		}
		count++

		if opts.Gap > 0 {
			sleep(opts.Gap)
		}
	}
	return count, now().Sub(start), nil
}
