// Package keys разбирает клавиши дорожек и хранит их виртуальный код и скан-код.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedKey возвращается для всего, кроме одиночного символа a-z/0-9
var ErrUnsupportedKey = errors.New("unsupported key")

// Key: логическая клавиша дорожки.
type Key struct {
	// Char: символ в нижнем регистре, как его понимает Arduino-мост
	Char rune
	// VK: виртуальный код Windows (VK_A..VK_Z, VK_0..VK_9)
	VK uint16
	// Scan: аппаратный скан-код; 0 означает ввод по VK
	Scan uint16
}

// String возвращает символ клавиши
func (k Key) String() string {
	return string(k.Char)
}

// Parse разбирает одиночный алфавитно-цифровой символ
func Parse(value string) (Key, error) {
	v := strings.TrimSpace(value)
	if len(v) != 1 {
		return Key{}, fmt.Errorf("%w (expected single char): %q", ErrUnsupportedKey, v)
	}

	c := rune(strings.ToLower(v)[0])
	if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') {
		return Key{}, fmt.Errorf("%w (a-z/0-9 only): %q", ErrUnsupportedKey, v)
	}

	vk := uint16(strings.ToUpper(string(c))[0])
	return Key{
		Char: c,
		VK:   vk,
		Scan: scanCode(vk),
	}, nil
}

// Escape: виртуальный код клавиши аварийной остановки
const Escape uint16 = 0x1B

// setOneScanCodes: скан-коды набора 1 для раскладки US
var setOneScanCodes = map[uint16]uint16{
	'1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05, '5': 0x06,
	'6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A, '0': 0x0B,
	'Q': 0x10, 'W': 0x11, 'E': 0x12, 'R': 0x13, 'T': 0x14,
	'Y': 0x15, 'U': 0x16, 'I': 0x17, 'O': 0x18, 'P': 0x19,
	'A': 0x1E, 'S': 0x1F, 'D': 0x20, 'F': 0x21, 'G': 0x22,
	'H': 0x23, 'J': 0x24, 'K': 0x25, 'L': 0x26,
	'Z': 0x2C, 'X': 0x2D, 'C': 0x2E, 'V': 0x2F, 'B': 0x30,
	'N': 0x31, 'M': 0x32,
}
