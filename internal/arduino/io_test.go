package arduino

import (
	"bytes"
	"errors"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("port gone")
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

func TestKeyMessages(t *testing.T) {
	var buf bytes.Buffer
	if err := SendKeyDownToArduino(&buf, "e"); err != nil {
		t.Fatal(err)
	}
	if err := SendKeyUpToArduino(&buf, "e"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "key_down:e\nkey_up:e\n" {
		t.Errorf("unexpected wire data %q", got)
	}
}

func TestWriteErrors(t *testing.T) {
	if err := SendKeyDownToArduino(failingWriter{}, "r"); err == nil {
		t.Error("expected write error")
	}
	if err := SendKeyUpToArduino(shortWriter{}, "r"); err == nil {
		t.Error("expected short write error")
	}
}
