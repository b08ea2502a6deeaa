package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawGlyph draws the font glyph 0 at the top left corner and loops.
var drawGlyph = []byte{
	0xA0, 0x00, // LD I, $000
	0xD0, 0x05, // DRW V0, V0, 5
	0x12, 0x04, // JP $204
}

// quitWindow requests to quit on the first poll.
type quitWindow struct {
	closed bool
}

func (w *quitWindow) Poll(_ machine.KeyLatch) (bool, error) { return true, nil }
func (w *quitWindow) Render(_ chip8.Framebuffer) error      { return nil }
func (w *quitWindow) Close() error {
	w.closed = true
	return nil
}

func newQuitWindow(string, int) (machine.Frontend, error) {
	return &quitWindow{}, nil
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
	assert.NotNil(t, p.newWindow)
}

func TestExecuteHeadless(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	opts := options.Program{
		Parameters: options.Parameters{Input: createTempFile(t, drawGlyph)},
		Flags: options.Flags{
			CyclesPerSecond: machine.DefaultCyclesPerSecond,
			Headless:        true,
			MaxFrames:       2,
		},
	}

	var buf bytes.Buffer
	err := p.Execute(context.Background(), opts, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, chip8.ScreenHeight)
	assert.True(t, strings.HasPrefix(lines[0], "####."), "glyph row 0: "+lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "#..#."), "glyph row 1: "+lines[1])
}

func TestExecuteWindow(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	window := &quitWindow{}
	var gotTitle string
	var gotScale int
	p.newWindow = func(title string, scale int) (machine.Frontend, error) {
		gotTitle, gotScale = title, scale
		return window, nil
	}

	opts := options.Program{
		Parameters: options.Parameters{Input: "test.ch8"},
		Flags:      options.Flags{CyclesPerSecond: machine.DefaultCyclesPerSecond, Scale: 4},
	}

	var buf bytes.Buffer
	err := p.ExecuteWithProgram(context.Background(), drawGlyph, opts, &buf)
	assert.NoError(t, err)
	assert.True(t, window.closed, "window not closed")
	assert.Equal(t, 4, gotScale)
	assert.Contains(t, gotTitle, "test.ch8")
	assert.Equal(t, 0, buf.Len())
}

func TestExecuteWindowError(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	errWindow := errors.New("no display")
	p.newWindow = func(string, int) (machine.Frontend, error) {
		return nil, errWindow
	}

	err := p.ExecuteWithProgram(context.Background(), drawGlyph, options.Program{}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errWindow))
}

func TestExecuteErrors(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	tests := []struct {
		name       string
		opts       options.Program
		errContain string
	}{
		{
			name: "unsupported system",
			opts: options.Program{
				Parameters: options.Parameters{Input: "game.ch8", System: "nes"},
			},
			errContain: "detecting system",
		},
		{
			name: "missing file",
			opts: options.Program{
				Parameters: options.Parameters{Input: "/nonexistent/game.ch8"},
			},
			errContain: "loading ROM",
		},
		{
			name: "ROM too large",
			opts: options.Program{
				Parameters: options.Parameters{Input: createTempFile(t, make([]byte, chip8.MaxProgramSize+1))},
			},
			errContain: "loading ROM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Execute(context.Background(), tt.opts, &bytes.Buffer{})
			assert.ErrorContains(t, err, tt.errContain)
		})
	}
}

func TestExecuteProcessorError(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	opts := options.Program{
		Flags: options.Flags{Headless: true, MaxFrames: 5},
	}

	// RET with an empty call stack
	err := p.ExecuteWithProgram(context.Background(), []byte{0x00, 0xEE}, opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, chip8.ErrStackEmpty))
	assert.ErrorContains(t, err, "$0200")
}

func TestExecuteCancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, newQuitWindow)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{
		Flags: options.Flags{Headless: true, MaxFrames: 1000},
	}
	err := p.ExecuteWithProgram(ctx, drawGlyph, opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

// createTempFile creates a temporary ROM file with the given data for testing.
func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	err := os.WriteFile(tmpFile, data, 0o600)
	assert.NoError(t, err)
	return tmpFile
}
