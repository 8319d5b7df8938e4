package detect

import "testing"

func TestNewThresholds(t *testing.T) {
	th := NewThresholds(240, 120)
	if th.Sum != 720 {
		t.Errorf("expected Sum 720, got %d", th.Sum)
	}
	if th.WhiteMin != 135 {
		t.Errorf("expected WhiteMin 135, got %d", th.WhiteMin)
	}
}

func TestIsActive(t *testing.T) {
	th := NewThresholds(240, 120)

	tests := []struct {
		name    string
		r, g, b int
		want    bool
	}{
		{"pure white", 255, 255, 255, true},
		{"black", 10, 10, 10, false},
		{"near white at boundary", 135, 135, 135, true},
		{"one channel under white min", 134, 255, 255, false},
		{"grey under both tests", 134, 134, 134, false},
		{"bright sum over threshold", 250, 250, 221, true},
		{"sum at threshold rescued by white test", 255, 255, 210, true},
		{"saturated red", 255, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActive(tt.r, tt.g, tt.b, th); got != tt.want {
				t.Errorf("IsActive(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestBrightnessIgnoresTolerance(t *testing.T) {
	// Сумма выше порога срабатывает при любом допуске
	for tol := 0; tol <= 255; tol += 15 {
		th := NewThresholds(100, tol)
		if !IsActive(200, 101, 0, th) {
			t.Fatalf("tolerance %d: expected active for sum 301 > 300", tol)
		}
	}
}

func TestWhiteTestIgnoresBrightness(t *testing.T) {
	// Почти белый пиксель активен даже при недостижимом пороге суммы
	th := NewThresholds(255, 120)
	for v := 135; v <= 255; v += 20 {
		if !IsActive(v, v, v, th) {
			t.Fatalf("expected (%d,%d,%d) active via white test", v, v, v)
		}
	}
}

func TestInactiveWhenBothFail(t *testing.T) {
	th := NewThresholds(240, 120)
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				sumFails := r+g+b <= th.Sum
				whiteFails := r < th.WhiteMin || g < th.WhiteMin || b < th.WhiteMin
				if sumFails && whiteFails && IsActive(r, g, b, th) {
					t.Fatalf("(%d,%d,%d) should be inactive", r, g, b)
				}
			}
		}
	}
}
