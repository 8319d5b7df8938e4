// Package screen читает цвет одиночного пикселя экрана.
package screen

import (
	"fmt"
	"image"

	"autoplayer/internal/helpers"

	"github.com/kbinani/screenshot"
)

// Sampler читает цвет пикселя. Каждый воркер держит собственный Sampler
// и закрывает его при выходе.
type Sampler interface {
	Sample(x, y int) (r, g, b int, err error)
	Close() error
}

// Бэкенды, которые умеет Open
const (
	BackendGDI        = "gdi"
	BackendScreenshot = "screenshot"
)

// Open открывает Sampler выбранного бэкенда
func Open(backend string) (Sampler, error) {
	switch backend {
	case BackendGDI:
		return openGDI()
	case BackendScreenshot:
		return &CaptureSampler{capture: screenshot.CaptureRect}, nil
	default:
		return nil, fmt.Errorf("unknown sampler backend %q", backend)
	}
}

// CaptureSampler снимает прямоугольник 1x1 через kbinani/screenshot
type CaptureSampler struct {
	capture func(image.Rectangle) (*image.RGBA, error)
}

// Sample захватывает один пиксель экрана
func (s *CaptureSampler) Sample(x, y int) (int, int, int, error) {
	img, err := s.capture(image.Rect(x, y, x+1, y+1))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to capture pixel (%d,%d): %w", x, y, err)
	}
	origin := img.Bounds().Min
	r, g, b := helpers.GetPixelColor(img, origin.X, origin.Y)
	return r, g, b, nil
}

// Close ничего не освобождает: захват не держит хэндлов
func (s *CaptureSampler) Close() error {
	return nil
}

// Displays возвращает границы активных мониторов
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}
