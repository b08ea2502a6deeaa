// Package sdl provides an SDL2 window frontend that draws the CHIP-8
// framebuffer and maps the keyboard to the hexadecimal keypad.
package sdl

import (
	"fmt"
	"runtime"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/veandco/go-sdl2/sdl"
)

// Compile-time check to ensure Window implements machine.Frontend.
var _ machine.Frontend = (*Window)(nil)

// Window is an SDL2 window showing the framebuffer. SDL requires all calls
// to happen on the thread that created the window.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

// New creates and shows a window with the given title. The window size is
// the CHIP-8 screen size multiplied by scale.
func New(title string, scale int) (*Window, error) {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL2: %w", err)
	}

	w := &Window{}
	var err error
	w.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(chip8.ScreenWidth*scale), int32(chip8.ScreenHeight*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// draw in CHIP-8 pixel coordinates, SDL scales to the window size
	if err := w.renderer.SetLogicalSize(chip8.ScreenWidth, chip8.ScreenHeight); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("setting logical size: %w", err)
	}

	return w, nil
}

// Poll implements machine.Frontend.
func (w *Window) Poll(keys machine.KeyLatch) (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return true, nil

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return true, nil
			}

			key, ok := keypad[ev.Keysym.Scancode]
			if !ok {
				continue
			}
			if err := keys.SetKey(key, ev.Type == sdl.KEYDOWN); err != nil {
				return false, fmt.Errorf("setting key: %w", err)
			}
		}
	}
	return false, nil
}

// Render implements machine.Frontend.
func (w *Window) Render(fb chip8.Framebuffer) error {
	if err := w.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting background color: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}

	if err := w.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting pixel color: %w", err)
	}
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if !fb[y*chip8.ScreenWidth+x] {
				continue
			}
			rect := sdl.Rect{X: int32(x), Y: int32(y), W: 1, H: 1}
			if err := w.renderer.FillRect(&rect); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	w.renderer.Present()
	return nil
}

// Close implements machine.Frontend.
func (w *Window) Close() error {
	var err error
	if w.renderer != nil {
		err = w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		if destroyErr := w.window.Destroy(); err == nil {
			err = destroyErr
		}
		w.window = nil
	}
	sdl.Quit()
	return err
}
