// Package headless provides a frontend without window and input, used for
// running programs for a fixed number of frames and printing the result.
package headless

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/machine"
)

// Compile-time check to ensure Headless implements machine.Frontend.
var _ machine.Frontend = (*Headless)(nil)

// Headless remembers the last rendered framebuffer.
type Headless struct {
	fb      chip8.Framebuffer
	renders int
}

// New returns a new headless frontend.
func New() *Headless {
	return &Headless{}
}

// Poll implements machine.Frontend. There is no input.
func (h *Headless) Poll(_ machine.KeyLatch) (bool, error) {
	return false, nil
}

// Render implements machine.Frontend.
func (h *Headless) Render(fb chip8.Framebuffer) error {
	h.fb = fb
	h.renders++
	return nil
}

// Close implements machine.Frontend.
func (h *Headless) Close() error {
	return nil
}

// Renders returns the number of rendered frames.
func (h *Headless) Renders() int {
	return h.renders
}

// WriteTo writes the last rendered framebuffer as text to the writer.
func (h *Headless) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, h.fb.String())
	if err != nil {
		return int64(n), fmt.Errorf("writing framebuffer: %w", err)
	}
	return int64(n), nil
}
