//go:build windows

package input

import (
	"fmt"
	"syscall"
	"unsafe"

	"autoplayer/internal/keys"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard     = 1
	keyeventfKeyUp    = 0x0002
	keyeventfScanCode = 0x0008
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// keyboardInput повторяет INPUT с KEYBDINPUT в объединении; хвост
// добивает размер до MOUSEINPUT, самого большого члена объединения
type keyboardInput struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

// SendInputInjector вводит клавиши через SendInput
type SendInputInjector struct{}

func newSendInput() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	return SendInputInjector{}, nil
}

// KeyDown нажимает клавишу дорожки
func (SendInputInjector) KeyDown(k keys.Key) error {
	return sendKey(k, false)
}

// KeyUp отпускает клавишу дорожки
func (SendInputInjector) KeyUp(k keys.Key) error {
	return sendKey(k, true)
}

// Close ничего не освобождает
func (SendInputInjector) Close() error {
	return nil
}

// sendKey вводит скан-код, а если его нет, то виртуальный код
func sendKey(k keys.Key, up bool) error {
	in := keyboardInput{Type: inputKeyboard}
	if k.Scan != 0 {
		in.Ki.WScan = k.Scan
		in.Ki.DwFlags = keyeventfScanCode
	} else {
		in.Ki.WVk = k.VK
	}
	if up {
		in.Ki.DwFlags |= keyeventfKeyUp
	}

	sent, _, callErr := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if sent != 1 {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of 1 inputs", sent)
	}
	return nil
}
