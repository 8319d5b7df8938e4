// Package focus следит за тем, находится ли целевое окно в фокусе.
package focus

import (
	"strings"
	"time"

	"autoplayer/internal/logger"
	"autoplayer/internal/runstate"
	"autoplayer/internal/window"
)

// Monitor периодически проверяет фокус и публикует его в общее состояние.
// Это единственный писатель флага focused.
type Monitor struct {
	state    *runstate.State
	locator  window.Locator
	target   window.Handle
	found    bool
	title    string
	interval time.Duration
	logger   *logger.LoggerManager
	sleep    func(time.Duration)
}

// NewMonitor создает монитор. target/found: результат начального поиска окна;
// если окно не найдено, фокус определяется только по заголовку.
func NewMonitor(state *runstate.State, locator window.Locator, target window.Handle, found bool, title string, interval time.Duration, loggerManager *logger.LoggerManager) *Monitor {
	return &Monitor{
		state:    state,
		locator:  locator,
		target:   target,
		found:    found,
		title:    title,
		interval: interval,
		logger:   loggerManager,
		sleep:    time.Sleep,
	}
}

// Check сравнивает активное окно с целевым: совпадение хэндла ИЛИ
// подстрока в заголовке активного окна. Окно без заголовка по подстроке
// не совпадает.
func (m *Monitor) Check() bool {
	fg := m.locator.Foreground()
	if fg == 0 {
		return false
	}
	if m.found && fg == m.target {
		return true
	}
	title := m.locator.Title(fg)
	return title != "" && strings.Contains(title, m.title)
}

// Run проверяет фокус каждые interval, пока running не станет false
func (m *Monitor) Run() {
	last := m.state.Focused()
	for m.state.Running() {
		ok := m.Check()
		m.state.SetFocused(ok)
		if ok != last {
			if ok {
				m.logger.Debug("[FOCUS] on")
			} else {
				m.logger.Debug("[FOCUS] off")
			}
			last = ok
		}
		m.sleep(m.interval)
	}
}
