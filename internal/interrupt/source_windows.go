//go:build windows

package interrupt

import (
	"fmt"

	"autoplayer/internal/keys"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
	"go.uber.org/atomic"
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// AsyncKeyState читает состояние ESC через GetAsyncKeyState
type AsyncKeyState struct{}

// Pressed проверяет старший бит: он выставлен, пока клавиша зажата
func (AsyncKeyState) Pressed() bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(keys.Escape))
	return int16(state) < 0
}

// Close ничего не освобождает
func (AsyncKeyState) Close() error {
	return nil
}

// HookLatch ставит низкоуровневый хук клавиатуры и защелкивает факт
// нажатия ESC; Watcher опрашивает защелку так же, как GetAsyncKeyState
type HookLatch struct {
	pressed *atomic.Bool
	events  chan types.KeyboardEvent
	done    chan struct{}
}

func newHookLatch() (*HookLatch, error) {
	h := &HookLatch{
		pressed: atomic.NewBool(false),
		events:  make(chan types.KeyboardEvent, 100),
		done:    make(chan struct{}),
	}
	if err := keyboard.Install(nil, h.events); err != nil {
		return nil, fmt.Errorf("failed to install keyboard hook: %w", err)
	}
	go h.consume()
	return h, nil
}

// consume разбирает события хука
func (h *HookLatch) consume() {
	for {
		select {
		case event := <-h.events:
			if event.Message == types.WM_KEYDOWN && event.VKCode == types.VK_ESCAPE {
				h.pressed.Store(true)
			}
		case <-h.done:
			return
		}
	}
}

// Pressed возвращает true, если ESC был нажат после установки хука
func (h *HookLatch) Pressed() bool {
	return h.pressed.Load()
}

// Close снимает хук
func (h *HookLatch) Close() error {
	close(h.done)
	return keyboard.Uninstall()
}

// OpenSource открывает источник состояния клавиши остановки
func OpenSource(kind string) (KeySource, error) {
	switch kind {
	case SourcePoll:
		return AsyncKeyState{}, nil
	case SourceHook:
		h, err := newHookLatch()
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("unknown abort source %q", kind)
	}
}
