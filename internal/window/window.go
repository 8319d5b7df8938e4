// Package window ищет целевое окно по подстроке заголовка и сообщает,
// какое окно сейчас в фокусе.
package window

// Handle: непрозрачный хэндл окна ОС; 0 означает "нет окна"
type Handle uintptr

// Locator: мгновенные запросы к состоянию окон ОС без побочных эффектов
type Locator interface {
	// Find возвращает первое видимое окно верхнего уровня, заголовок
	// которого содержит substr. Порядок перебора определяет ОС.
	Find(substr string) (Handle, bool)
	// Foreground возвращает окно, которое сейчас получает ввод
	Foreground() Handle
	// Title возвращает заголовок окна или пустую строку
	Title(h Handle) string
}
