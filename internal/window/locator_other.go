//go:build !windows

package window

import "fmt"

// NewLocator возвращает локатор окон текущей платформы
func NewLocator() (Locator, error) {
	return nil, fmt.Errorf("window lookup is only available on Windows")
}
