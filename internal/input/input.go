// Package input эмулирует нажатия клавиш дорожек.
package input

import (
	"fmt"
	"io"
	"sync"

	"autoplayer/internal/arduino"
	"autoplayer/internal/keys"
)

// Injector отправляет синтетические события клавиатуры.
// Реализации безопасны для одновременного вызова из воркеров дорожек.
type Injector interface {
	KeyDown(k keys.Key) error
	KeyUp(k keys.Key) error
	Close() error
}

// Бэкенды, которые умеет Open
const (
	BackendSendInput = "sendinput"
	BackendArduino   = "arduino"
)

// Options: параметры открытия бэкенда
type Options struct {
	SerialPort string
	BaudRate   int
}

// Open открывает Injector выбранного бэкенда
func Open(backend string, opts Options) (Injector, error) {
	switch backend {
	case BackendSendInput:
		return newSendInput()
	case BackendArduino:
		port, err := arduino.InitializePort(opts.SerialPort, opts.BaudRate)
		if err != nil {
			return nil, err
		}
		return NewSerialInjector(port), nil
	default:
		return nil, fmt.Errorf("unknown injector backend %q", backend)
	}
}

// SerialInjector передает нажатия Arduino-мосту, который работает как
// USB-клавиатура
type SerialInjector struct {
	mu   sync.Mutex
	port io.WriteCloser
}

// NewSerialInjector оборачивает открытый порт
func NewSerialInjector(port io.WriteCloser) *SerialInjector {
	return &SerialInjector{port: port}
}

// KeyDown отправляет key_down:<символ>
func (s *SerialInjector) KeyDown(k keys.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return arduino.SendKeyDownToArduino(s.port, k.String())
}

// KeyUp отправляет key_up:<символ>
func (s *SerialInjector) KeyUp(k keys.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return arduino.SendKeyUpToArduino(s.port, k.String())
}

// Close закрывает порт
func (s *SerialInjector) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}
