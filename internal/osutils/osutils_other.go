//go:build !windows && !linux

package osutils

import (
	"fmt"
	"runtime"
)

// PinCurrentThread не поддерживается на этой платформе
func PinCurrentThread(core int) error {
	return fmt.Errorf("thread affinity is not supported on %s", runtime.GOOS)
}

// RaisePriority не поддерживается на этой платформе
func RaisePriority() error {
	return fmt.Errorf("priority change is not supported on %s", runtime.GOOS)
}
