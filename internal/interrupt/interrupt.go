package interrupt

import (
	"time"

	"autoplayer/internal/logger"
	"autoplayer/internal/runstate"
)

// PollInterval: период опроса клавиши остановки
const PollInterval = 5 * time.Millisecond

// KeySource сообщает, зажата ли сейчас клавиша аварийной остановки
type KeySource interface {
	Pressed() bool
	Close() error
}

// Watcher опрашивает клавишу остановки и сбрасывает running при нажатии
type Watcher struct {
	state         *runstate.State
	source        KeySource
	loggerManager *logger.LoggerManager
	sleep         func(time.Duration)
}

// NewWatcher создает наблюдатель клавиши остановки
func NewWatcher(state *runstate.State, source KeySource, loggerManager *logger.LoggerManager) *Watcher {
	return &Watcher{
		state:         state,
		source:        source,
		loggerManager: loggerManager,
		sleep:         time.Sleep,
	}
}

// Run опрашивает клавишу, пока она не будет нажата или running не станет false
func (w *Watcher) Run() {
	for w.state.Running() {
		if w.source.Pressed() {
			if w.state.Stop() {
				w.loggerManager.Info("[EXIT] ESC pressed, shutting down")
			}
			return
		}
		w.sleep(PollInterval)
	}
}
