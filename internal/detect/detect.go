// Package detect классифицирует цвет пикселя в зоне попадания.
package detect

// Thresholds: предрассчитанные пороги классификации.
type Thresholds struct {
	// Sum: порог суммы каналов (3 * brightness)
	Sum int
	// WhiteMin: нижняя граница каждого канала для "почти белого" (255 - tolerance)
	WhiteMin int
}

// NewThresholds рассчитывает пороги из яркости и допуска
func NewThresholds(brightness, tolerance int) Thresholds {
	return Thresholds{
		Sum:      brightness * 3,
		WhiteMin: 255 - tolerance,
	}
}

// IsActive возвращает true, если пиксель похож на маркер ноты:
// либо суммарная яркость выше порога, либо все каналы почти белые.
func IsActive(r, g, b int, t Thresholds) bool {
	if r+g+b > t.Sum {
		return true
	}
	return r >= t.WhiteMin && g >= t.WhiteMin && b >= t.WhiteMin
}
