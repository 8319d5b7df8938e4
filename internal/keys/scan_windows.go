//go:build windows

package keys

import "golang.org/x/sys/windows"

const mapvkVKToVSC = 0

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procMapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

// scanCode берет скан-код у активной раскладки, а при неудаче берет из таблицы US
func scanCode(vk uint16) uint16 {
	sc, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVKToVSC)
	if sc != 0 {
		return uint16(sc)
	}
	return setOneScanCodes[vk]
}
