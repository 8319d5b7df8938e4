// Package lane реализует воркер одной дорожки: чтение пикселя,
// классификацию и нажатие/отпускание клавиши с антидребезгом.
package lane

import (
	"runtime"
	"time"

	"autoplayer/internal/config"
	"autoplayer/internal/detect"
	"autoplayer/internal/input"
	"autoplayer/internal/logger"
	"autoplayer/internal/metrics"
	"autoplayer/internal/osutils"
	"autoplayer/internal/runstate"
	"autoplayer/internal/screen"
)

const (
	releaseAttempts = 3
	releaseRetry    = time.Millisecond
)

// Settings: параметры цикла, общие для всех дорожек
type Settings struct {
	HitZoneY        int
	Thresholds      detect.Thresholds
	MinHold         time.Duration
	ReleaseDebounce time.Duration
	NotFocusedSleep time.Duration
	LoopYieldEvery  uint32
}

// SettingsFrom берет параметры цикла из конфигурации
func SettingsFrom(c *config.Config) Settings {
	return Settings{
		HitZoneY:        c.HitZoneY,
		Thresholds:      c.Thresholds(),
		MinHold:         c.MinHold,
		ReleaseDebounce: c.ReleaseDebounce,
		NotFocusedSleep: c.NotFocusedSleep,
		LoopYieldEvery:  c.LoopYieldEvery,
	}
}

// Worker: конечный автомат одной дорожки (RELEASED/HELD).
// Состояние принадлежит только своей горутине.
type Worker struct {
	index    int
	lane     config.Lane
	settings Settings
	state    *runstate.State
	open     func() (screen.Sampler, error)
	injector input.Injector
	counters metrics.LaneCounters
	logger   *logger.LoggerManager

	now   func() time.Time
	sleep func(time.Duration)
	yield func()
	pin   func(core int) error

	sampler    screen.Sampler
	keyPressed bool
	lastWhite  time.Time
	pressTime  time.Time
	iters      uint32
}

// NewWorker создает воркер дорожки. open вызывается в потоке воркера,
// полученный Sampler закрывается при выходе.
func NewWorker(index int, lane config.Lane, settings Settings, state *runstate.State, open func() (screen.Sampler, error), injector input.Injector, counters metrics.LaneCounters, loggerManager *logger.LoggerManager) *Worker {
	return &Worker{
		index:    index,
		lane:     lane,
		settings: settings,
		state:    state,
		open:     open,
		injector: injector,
		counters: counters,
		logger:   loggerManager,
		now:      time.Now,
		sleep:    time.Sleep,
		yield:    runtime.Gosched,
		pin:      osutils.PinCurrentThread,
	}
}

// Run крутит цикл дорожки, пока running не станет false, затем отпускает
// клавишу, если она зажата.
func (w *Worker) Run() {
	// Поток не отпускается: он завершится вместе с горутиной
	// и его привязка к ядру не достанется другим горутинам
	runtime.LockOSThread()

	core := osutils.CoreFor(w.index)
	if err := w.pin(core); err != nil {
		w.logger.Debug("[LANE %d] affinity to core %d not set: %v", w.index, core, err)
	}

	sampler, err := w.open()
	if err != nil {
		w.logger.LogError(err, "lane sampler")
		return
	}
	w.sampler = sampler
	defer func() {
		if err := w.sampler.Close(); err != nil {
			w.logger.LogError(err, "lane sampler close")
		}
	}()

	w.lastWhite = w.now()
	w.pressTime = w.lastWhite

	for w.state.Running() {
		w.step()
	}
	w.shutdown()
}

// step: одна итерация автомата
func (w *Worker) step() {
	if !w.state.Focused() {
		if w.keyPressed {
			w.release("focus")
		}
		w.sleep(w.settings.NotFocusedSleep)
		return
	}

	now := w.now()
	r, g, b, err := w.sampler.Sample(w.lane.X, w.settings.HitZoneY)
	if err != nil {
		w.counters.SampleFailed()
	} else {
		w.observe(now, detect.IsActive(r, g, b, w.settings.Thresholds))
	}

	w.iters++
	if w.settings.LoopYieldEvery != 0 && w.iters%w.settings.LoopYieldEvery == 0 {
		w.yield()
	}
}

// observe применяет классифицированный отсчет
func (w *Worker) observe(now time.Time, active bool) {
	if active {
		w.lastWhite = now
		if !w.keyPressed {
			w.press(now)
		}
		return
	}

	if !w.keyPressed {
		return
	}
	if now.Sub(w.lastWhite) >= w.settings.ReleaseDebounce && now.Sub(w.pressTime) >= w.settings.MinHold {
		w.release("")
	}
}

func (w *Worker) press(now time.Time) {
	if err := w.injector.KeyDown(w.lane.Key); err != nil {
		w.counters.InjectFailed()
		w.logger.Debug("[LANE %d] down failed: %v", w.index, err)
		return
	}
	w.counters.Pressed()
	w.keyPressed = true
	w.pressTime = now
	w.logger.Debug("[LANE %d] down", w.index)
}

// release отпускает клавишу; при ошибке дорожка остается HELD
// и отпускание повторится на следующей итерации
func (w *Worker) release(reason string) bool {
	if err := w.injector.KeyUp(w.lane.Key); err != nil {
		w.counters.InjectFailed()
		w.logger.Debug("[LANE %d] up failed: %v", w.index, err)
		return false
	}
	w.counters.Released()
	w.keyPressed = false
	if reason != "" {
		w.logger.Debug("[LANE %d] up (%s)", w.index, reason)
	} else {
		w.logger.Debug("[LANE %d] up", w.index)
	}
	return true
}

// shutdown гарантирует, что клавиша не останется зажатой
func (w *Worker) shutdown() {
	if !w.keyPressed {
		return
	}
	for attempt := 1; attempt <= releaseAttempts; attempt++ {
		if w.release("exit") {
			return
		}
		if attempt < releaseAttempts {
			w.sleep(releaseRetry)
		}
	}
	w.logger.Error("[LANE %d] key %s may be stuck down", w.index, w.lane.Key)
}
