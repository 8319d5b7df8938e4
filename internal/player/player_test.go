package player

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"autoplayer/internal/config"
	"autoplayer/internal/keys"
	"autoplayer/internal/logger"
	"autoplayer/internal/runstate"
	"autoplayer/internal/screen"
	"autoplayer/internal/window"
)

type fakeLocator struct{}

func (fakeLocator) Find(substr string) (window.Handle, bool) { return 42, substr == "Roblox" }
func (fakeLocator) Foreground() window.Handle                { return 42 }
func (fakeLocator) Title(window.Handle) string               { return "Roblox" }

type whiteSampler struct{}

func (whiteSampler) Sample(x, y int) (int, int, int, error) { return 255, 255, 255, nil }
func (whiteSampler) Close() error                           { return nil }

type recorder struct {
	mu     sync.Mutex
	held   map[rune]bool
	downs  int
	ups    int
	closed bool
}

func (r *recorder) KeyDown(k keys.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held[k.Char] = true
	r.downs++
	return nil
}

func (r *recorder) KeyUp(k keys.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held[k.Char] = false
	r.ups++
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.downs, r.ups
}

// escAfterPresses нажимает ESC, когда все дорожки зажаты
type escAfterPresses struct {
	inj    *recorder
	lanes  int
	closed bool
}

func (s *escAfterPresses) Pressed() bool {
	downs, _ := s.inj.counts()
	return downs >= s.lanes
}

func (s *escAfterPresses) Close() error {
	s.closed = true
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	lanes, err := config.ParseLanes("731:e,881:r")
	if err != nil {
		t.Fatalf("ParseLanes: %v", err)
	}
	return &config.Config{
		Lanes:            lanes,
		HitZoneY:         880,
		BrightnessThresh: 240,
		Tolerance:        120,
		MinHold:          20 * time.Millisecond,
		ReleaseDebounce:  12 * time.Millisecond,
		FocusPoll:        time.Millisecond,
		NotFocusedSleep:  time.Millisecond,
		WindowTitle:      "Roblox",
	}
}

func TestRunStopsOnEscAndReleasesKeys(t *testing.T) {
	cfg := testConfig(t)
	inj := &recorder{held: map[rune]bool{}}
	source := &escAfterPresses{inj: inj, lanes: len(cfg.Lanes)}
	deps := &Deps{
		Locator:     fakeLocator{},
		OpenSampler: func() (screen.Sampler, error) { return whiteSampler{}, nil },
		Injector:    inj,
		AbortSource: source,
	}
	state := runstate.New()
	var out bytes.Buffer

	done := make(chan struct{})
	go func() {
		Run(cfg, state, deps, logger.New(&out, false))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		state.Stop()
		t.Fatal("Run did not stop on ESC")
	}

	if state.Running() {
		t.Fatal("running should be false after ESC")
	}
	downs, ups := inj.counts()
	if downs != 2 || ups != 2 {
		t.Fatalf("downs=%d ups=%d, want 2/2", downs, ups)
	}
	for key, held := range inj.held {
		if held {
			t.Errorf("key %c left held", key)
		}
	}

	log := out.String()
	for _, want := range []string{
		"Target window found: 42",
		"Starting 2 lanes at y=880",
		"Press ESC to stop.",
		"[EXIT] ESC pressed",
		"[STATS] lane 0 (e): presses=1 releases=1",
		"[STATS] lane 1 (r): presses=1 releases=1",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}

	if err := deps.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !inj.closed || !source.closed {
		t.Fatal("deps not closed")
	}
}

func TestRunLogsMissingWindow(t *testing.T) {
	cfg := testConfig(t)
	cfg.WindowTitle = "RoBeats"
	state := runstate.New()
	state.Stop()

	var out bytes.Buffer
	deps := &Deps{
		Locator:     fakeLocator{},
		OpenSampler: func() (screen.Sampler, error) { return whiteSampler{}, nil },
		Injector:    &recorder{held: map[rune]bool{}},
		AbortSource: &escAfterPresses{inj: &recorder{held: map[rune]bool{}}, lanes: 1},
	}
	Run(cfg, state, deps, logger.New(&out, false))

	if !strings.Contains(out.String(), "falling back to title substring: RoBeats") {
		t.Fatalf("unexpected log:\n%s", out.String())
	}
}

func TestRunStopsWhenAllLanesFail(t *testing.T) {
	cfg := testConfig(t)
	inj := &recorder{held: map[rune]bool{}}
	deps := &Deps{
		Locator:     fakeLocator{},
		OpenSampler: func() (screen.Sampler, error) { return nil, errors.New("GetDC failed") },
		Injector:    inj,
		AbortSource: &escAfterPresses{inj: inj, lanes: len(cfg.Lanes)},
	}
	state := runstate.New()
	var out bytes.Buffer

	done := make(chan struct{})
	go func() {
		Run(cfg, state, deps, logger.New(&out, false))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		state.Stop()
		t.Fatal("Run kept waiting after every lane exited")
	}

	if state.Running() {
		t.Fatal("running should be false once every lane exited")
	}
	if downs, _ := inj.counts(); downs != 0 {
		t.Fatalf("downs = %d, want 0", downs)
	}
	if !strings.Contains(out.String(), "All lanes exited before shutdown") {
		t.Fatalf("unexpected log:\n%s", out.String())
	}
}
