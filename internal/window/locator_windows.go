//go:build windows

package window

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")

	// Колбэк создается один раз: число колбэков в процессе ограничено
	enumWindowsCallback = windows.NewCallback(enumWindowsProc)
)

type search struct {
	substr string
	found  windows.HWND
}

func enumWindowsProc(hwnd windows.HWND, lparam uintptr) uintptr {
	if !windows.IsWindowVisible(hwnd) {
		return 1
	}
	s := (*search)(unsafe.Pointer(lparam))
	title := windowTitle(hwnd)
	if title != "" && strings.Contains(title, s.substr) {
		s.found = hwnd
		return 0
	}
	return 1
}

func windowTitle(hwnd windows.HWND) string {
	if hwnd == 0 {
		return ""
	}
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if int32(n) <= 0 {
		return ""
	}
	buf := make([]uint16, int(n)+1)
	r, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	got := int32(r)
	if got <= 0 {
		return ""
	}
	if int(got) > len(buf) {
		got = int32(len(buf))
	}
	return windows.UTF16ToString(buf[:got])
}

// Win32Locator реализует Locator через user32
type Win32Locator struct{}

// NewLocator возвращает локатор окон текущей платформы
func NewLocator() (Locator, error) {
	return Win32Locator{}, nil
}

// Find перебирает окна верхнего уровня через EnumWindows
func (Win32Locator) Find(substr string) (Handle, bool) {
	s := &search{substr: substr}
	// EnumWindows возвращает ошибку, когда колбэк останавливает перебор
	_ = windows.EnumWindows(enumWindowsCallback, unsafe.Pointer(s))
	if s.found == 0 {
		return 0, false
	}
	return Handle(s.found), true
}

// Foreground возвращает текущее активное окно
func (Win32Locator) Foreground() Handle {
	return Handle(windows.GetForegroundWindow())
}

// Title читает заголовок окна
func (Win32Locator) Title(h Handle) string {
	return windowTitle(windows.HWND(h))
}
