//go:build windows

package screen

import (
	"errors"
	"fmt"

	"autoplayer/internal/helpers"

	"golang.org/x/sys/windows"
)

const clrInvalid = 0xFFFFFFFF

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	gdi32         = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC     = user32.NewProc("GetDC")
	procReleaseDC = user32.NewProc("ReleaseDC")
	procGetPixel  = gdi32.NewProc("GetPixel")
)

// GDISampler читает пиксели через GetPixel по контексту всего экрана
type GDISampler struct {
	hdc uintptr
}

func openGDI() (Sampler, error) {
	hdc, _, err := procGetDC.Call(0)
	if hdc == 0 {
		return nil, fmt.Errorf("GetDC failed: %w", err)
	}
	return &GDISampler{hdc: hdc}, nil
}

// Sample читает COLORREF и раскладывает его на каналы
func (s *GDISampler) Sample(x, y int) (int, int, int, error) {
	ret, _, _ := procGetPixel.Call(s.hdc, uintptr(x), uintptr(y))
	if uint32(ret) == clrInvalid {
		return 0, 0, 0, errors.New("GetPixel returned CLR_INVALID")
	}
	r, g, b := helpers.SplitColorRef(uint32(ret))
	return r, g, b, nil
}

// Close возвращает контекст устройства системе
func (s *GDISampler) Close() error {
	if s.hdc == 0 {
		return nil
	}
	procReleaseDC.Call(0, s.hdc)
	s.hdc = 0
	return nil
}
