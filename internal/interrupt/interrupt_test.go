package interrupt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"autoplayer/internal/logger"
	"autoplayer/internal/runstate"
)

type scriptedSource struct {
	pressedAt int
	polls     int
}

func (s *scriptedSource) Pressed() bool {
	s.polls++
	return s.polls >= s.pressedAt
}

func (s *scriptedSource) Close() error {
	return nil
}

func TestWatcherStopsOnPress(t *testing.T) {
	state := runstate.New()
	src := &scriptedSource{pressedAt: 4}
	var out bytes.Buffer
	w := NewWatcher(state, src, logger.New(&out, false))

	sleeps := 0
	w.sleep = func(d time.Duration) {
		if d != PollInterval {
			t.Errorf("slept %v, want %v", d, PollInterval)
		}
		sleeps++
	}

	w.Run()

	if state.Running() {
		t.Fatal("expected running=false after abort key")
	}
	if src.polls != 4 || sleeps != 3 {
		t.Errorf("polls=%d sleeps=%d", src.polls, sleeps)
	}
	if !strings.Contains(out.String(), "ESC pressed") {
		t.Errorf("expected exit log, got %q", out.String())
	}
}

func TestWatcherExitsWhenStoppedElsewhere(t *testing.T) {
	state := runstate.New()
	src := &scriptedSource{pressedAt: 1 << 30}
	w := NewWatcher(state, src, logger.New(nil, false))

	w.sleep = func(time.Duration) {
		if src.polls == 2 {
			state.Stop()
		}
	}

	w.Run()

	if src.polls != 2 {
		t.Errorf("expected 2 polls before exit, got %d", src.polls)
	}
}
