package arduino

import (
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// InitializePort открывает последовательный порт Arduino-моста
func InitializePort(name string, baud int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return port, nil
}

// SendKeyDownToArduino просит мост зажать клавишу
func SendKeyDownToArduino(port io.Writer, key string) error {
	return writeMessage(port, fmt.Sprintf("key_down:%s\n", key))
}

// SendKeyUpToArduino просит мост отпустить клавишу
func SendKeyUpToArduino(port io.Writer, key string) error {
	return writeMessage(port, fmt.Sprintf("key_up:%s\n", key))
}

func writeMessage(port io.Writer, message string) error {
	n, err := port.Write([]byte(message))
	if err != nil {
		return fmt.Errorf("error writing to Arduino: %w", err)
	}
	if n != len(message) {
		return fmt.Errorf("short write to Arduino: %d of %d bytes", n, len(message))
	}
	return nil
}
