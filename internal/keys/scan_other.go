//go:build !windows

package keys

func scanCode(vk uint16) uint16 {
	return setOneScanCodes[vk]
}
