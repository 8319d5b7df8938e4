//go:build !windows

package input

import "fmt"

func newSendInput() (Injector, error) {
	return nil, fmt.Errorf("sendinput injector is only available on Windows")
}
