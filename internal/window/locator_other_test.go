//go:build !windows

package window

import "testing"

func TestNewLocatorUnsupported(t *testing.T) {
	if loc, err := NewLocator(); err == nil || loc != nil {
		t.Fatalf("NewLocator() = %v, %v; want error", loc, err)
	}
}
