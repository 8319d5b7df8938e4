//go:build !windows

package screen

import "fmt"

func openGDI() (Sampler, error) {
	return nil, fmt.Errorf("gdi sampler is only available on Windows")
}
