// Package runstate хранит два общих флага процесса: running и focused.
//
// У каждого флага один писатель (наблюдатель остановки и монитор фокуса)
// и много читателей, поэтому достаточно атомарных load/store без блокировок.
package runstate

import "go.uber.org/atomic"

// State: общие флаги выполнения
type State struct {
	running *atomic.Bool
	focused *atomic.Bool
}

// New создает состояние: running=true, focused=false
func New() *State {
	return &State{
		running: atomic.NewBool(true),
		focused: atomic.NewBool(false),
	}
}

// Running возвращает true, пока не запрошена остановка
func (s *State) Running() bool {
	return s.running.Load()
}

// Stop запрашивает остановку всех циклов. Возвращает true, если остановка
// запрошена именно этим вызовом.
func (s *State) Stop() bool {
	return s.running.CAS(true, false)
}

// Focused возвращает true, если целевое окно в фокусе
func (s *State) Focused() bool {
	return s.focused.Load()
}

// SetFocused публикует результат проверки фокуса и возвращает прежнее значение
func (s *State) SetFocused(v bool) bool {
	return s.focused.Swap(v)
}
