package headless

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestHeadless(t *testing.T) {
	h := New()

	quit, err := h.Poll(chip8.New())
	assert.NoError(t, err)
	assert.False(t, quit)

	var fb chip8.Framebuffer
	fb[chip8.ScreenWidth*2+3] = true
	assert.NoError(t, h.Render(fb))
	assert.Equal(t, 1, h.Renders())

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64((chip8.ScreenWidth+1)*chip8.ScreenHeight), n)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "...#"+strings.Repeat(".", chip8.ScreenWidth-4), lines[2])
	assert.NoError(t, h.Close())
}
