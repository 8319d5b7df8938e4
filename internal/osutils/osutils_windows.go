//go:build windows

package osutils

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// PinCurrentThread привязывает текущий поток ОС к ядру core.
// Вызывающий должен сначала выполнить runtime.LockOSThread.
func PinCurrentThread(core int) error {
	if core < 0 || core >= 64 {
		return fmt.Errorf("core %d out of affinity mask range", core)
	}
	thread, err := windows.GetCurrentThread()
	if err != nil {
		return err
	}
	mask := uintptr(1) << uint(core)
	prev, _, callErr := procSetThreadAffinityMask.Call(uintptr(thread), mask)
	if prev == 0 {
		return fmt.Errorf("SetThreadAffinityMask: %w", callErr)
	}
	return nil
}

// RaisePriority переводит процесс в HIGH_PRIORITY_CLASS (ниже REALTIME)
func RaisePriority() error {
	return windows.SetPriorityClass(windows.CurrentProcess(), windows.HIGH_PRIORITY_CLASS)
}
