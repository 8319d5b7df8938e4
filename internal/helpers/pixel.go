package helpers

import (
	"image"
)

// GetPixelColor получает цвет пикселя по координатам в диапазоне 0-255.
// Точка вне изображения считается черной.
func GetPixelColor(img image.Image, x int, y int) (int, int, int) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return 0, 0, 0
	}

	clr := img.At(x, y)
	r, g, b, _ := clr.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

// SplitColorRef раскладывает COLORREF (0x00bbggrr) на каналы
func SplitColorRef(c uint32) (int, int, int) {
	return int(c & 0xFF), int((c >> 8) & 0xFF), int((c >> 16) & 0xFF)
}
