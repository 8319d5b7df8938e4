//go:build linux

package osutils

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PinCurrentThread привязывает текущий поток ОС к ядру core.
// Вызывающий должен сначала выполнить runtime.LockOSThread.
func PinCurrentThread(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("sched_setaffinity core %d: %w", core, err)
	}
	return nil
}

// RaisePriority понижает nice процесса до -10
func RaisePriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, -10)
}
