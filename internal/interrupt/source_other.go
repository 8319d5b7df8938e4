//go:build !windows

package interrupt

import "fmt"

// OpenSource открывает источник состояния клавиши остановки
func OpenSource(kind string) (KeySource, error) {
	return nil, fmt.Errorf("abort key source %q is only available on Windows", kind)
}
