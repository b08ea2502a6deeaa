package chip8

import "strings"

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// spriteWidth is the width of a sprite row in pixels, one bit per pixel.
const spriteWidth = 8

// Framebuffer contains one entry per pixel, row-major, indexed by y*ScreenWidth+x.
type Framebuffer [ScreenWidth * ScreenHeight]bool

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the screen edges.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb[pixelIndex(x, y)]
}

// String returns the framebuffer as text, one line per row with set pixels
// shown as '#' and unset pixels as '.'.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			if fb[y*ScreenWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Framebuffer returns a copy of the current screen content.
func (p *Processor) Framebuffer() Framebuffer {
	return p.framebuffer
}

// DisplayDirty returns whether the framebuffer changed since the last call
// of ClearDisplayDirty.
func (p *Processor) DisplayDirty() bool {
	return p.displayDirty
}

// ClearDisplayDirty marks the framebuffer as drawn.
func (p *Processor) ClearDisplayDirty() {
	p.displayDirty = false
}

func (p *Processor) clearDisplay() {
	p.framebuffer = Framebuffer{}
	p.displayDirty = true
}

// drawSprite XORs a sprite of the given height, read from memory at I, onto
// the framebuffer at (x, y). Pixels wrap around the screen edges on each
// axis independently. It returns whether a set pixel was erased.
// Nothing is drawn if the sprite data would extend past the end of memory.
func (p *Processor) drawSprite(x, y, height uint8) (bool, error) {
	if height > 0 {
		if err := p.checkIndexRange(uint16(height) - 1); err != nil {
			return false, err
		}
	}

	collision := false
	for row := range int(height) {
		data := p.memory[int(p.index)+row]
		for col := range spriteWidth {
			if data&(0x80>>col) == 0 {
				continue
			}
			i := pixelIndex(int(x)+col, int(y)+row)
			collision = collision || p.framebuffer[i]
			p.framebuffer[i] = !p.framebuffer[i]
		}
	}

	p.displayDirty = true
	return collision, nil
}

func pixelIndex(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return y*ScreenWidth + x
}
