// Package player собирает компоненты автоплеера и управляет их жизненным циклом.
package player

import (
	"fmt"

	"autoplayer/internal/config"
	"autoplayer/internal/focus"
	"autoplayer/internal/input"
	"autoplayer/internal/interrupt"
	"autoplayer/internal/lane"
	"autoplayer/internal/logger"
	"autoplayer/internal/metrics"
	"autoplayer/internal/osutils"
	"autoplayer/internal/runstate"
	"autoplayer/internal/screen"
	"autoplayer/internal/window"

	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"
)

// Deps: внешние зависимости автоплеера
type Deps struct {
	Locator window.Locator
	// OpenSampler вызывается каждым воркером в его собственном потоке
	OpenSampler func() (screen.Sampler, error)
	Injector    input.Injector
	AbortSource interrupt.KeySource
}

// Open создает зависимости по выбранным в конфигурации бэкендам
func Open(cfg *config.Config) (*Deps, error) {
	locator, err := window.NewLocator()
	if err != nil {
		return nil, fmt.Errorf("window locator: %w", err)
	}

	injector, err := input.Open(cfg.Injector, input.Options{
		SerialPort: cfg.SerialPort,
		BaudRate:   cfg.BaudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("injector %s: %w", cfg.Injector, err)
	}

	source, err := interrupt.OpenSource(cfg.AbortSource)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("abort source %s: %w", cfg.AbortSource, err), injector.Close())
	}

	backend := cfg.Sampler
	return &Deps{
		Locator:     locator,
		OpenSampler: func() (screen.Sampler, error) { return screen.Open(backend) },
		Injector:    injector,
		AbortSource: source,
	}, nil
}

// Close освобождает инжектор и источник клавиши остановки
func (d *Deps) Close() error {
	var errs error
	if d.Injector != nil {
		errs = multierr.Append(errs, d.Injector.Close())
	}
	if d.AbortSource != nil {
		errs = multierr.Append(errs, d.AbortSource.Close())
	}
	return errs
}

// Run ищет окно, запускает монитор фокуса, наблюдатель ESC и по воркеру
// на дорожку, затем ждет завершения всех горутин.
func Run(cfg *config.Config, state *runstate.State, deps *Deps, loggerManager *logger.LoggerManager) {
	target, found := deps.Locator.Find(cfg.WindowTitle)
	if found {
		loggerManager.Info("Target window found: %d", target)
	} else {
		loggerManager.Info("Target window not found; falling back to title substring: %s", cfg.WindowTitle)
	}

	monitor := focus.NewMonitor(state, deps.Locator, target, found, cfg.WindowTitle, cfg.FocusPoll, loggerManager)
	watcher := interrupt.NewWatcher(state, deps.AbortSource, loggerManager)

	var wg conc.WaitGroup
	wg.Go(monitor.Run)
	wg.Go(watcher.Run)

	loggerManager.Info("Starting %d lanes at y=%d, logical_cores=%d", len(cfg.Lanes), cfg.HitZoneY, osutils.LogicalCores())
	loggerManager.Info("Press ESC to stop.")

	stats := metrics.New()
	settings := lane.SettingsFrom(cfg)
	var lanes conc.WaitGroup
	for i, l := range cfg.Lanes {
		w := lane.NewWorker(i, l, settings, state, deps.OpenSampler, deps.Injector, stats.ForLane(i, l.Key.String()), loggerManager)
		lanes.Go(w.Run)
	}

	// Воркеры завершаются раньше срока, только если не смогли стартовать
	lanes.Wait()
	if state.Stop() {
		loggerManager.Error("All lanes exited before shutdown, stopping")
	}
	wg.Wait()
	loggerManager.Info("All lanes stopped")

	loggerManager.LogError(stats.Report(loggerManager), "lane stats")
	if cfg.MetricsFile != "" {
		loggerManager.LogError(stats.WriteTextfile(cfg.MetricsFile), "metrics textfile")
	}
}
