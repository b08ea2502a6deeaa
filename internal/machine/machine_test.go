package machine

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fakeFrontend records rendered frames and replays scripted key presses.
type fakeFrontend struct {
	keys    map[int]int // poll number to key pressed in that poll
	quitAt  int         // poll number to request quit at, 0 never
	polls   int
	renders int
	last    chip8.Framebuffer
	pollErr error
	closed  bool
}

func (f *fakeFrontend) Poll(keys KeyLatch) (bool, error) {
	f.polls++
	if f.pollErr != nil {
		return false, f.pollErr
	}
	if f.quitAt > 0 && f.polls >= f.quitAt {
		return true, nil
	}
	if key, ok := f.keys[f.polls]; ok {
		if err := keys.SetKey(key, true); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (f *fakeFrontend) Render(fb chip8.Framebuffer) error {
	f.renders++
	f.last = fb
	return nil
}

func (f *fakeFrontend) Close() error {
	f.closed = true
	return nil
}

func newProcessor(t *testing.T, program ...byte) *chip8.Processor {
	t.Helper()
	proc := chip8.New()
	assert.NoError(t, proc.Load(program))
	return proc
}

func TestStepRendersDirtyFrame(t *testing.T) {
	// LD I, $000; DRW V0, V0, 5; JP $204
	proc := newProcessor(t, 0xA0, 0x00, 0xD0, 0x05, 0x12, 0x04)
	frontend := &fakeFrontend{}
	m := New(log.NewTestLogger(t), proc, frontend, Options{CyclesPerSecond: 600})

	assert.NoError(t, m.Step())
	assert.Equal(t, 1, frontend.renders)
	assert.True(t, frontend.last.Pixel(0, 0))
	assert.False(t, proc.DisplayDirty())

	// the screen does not change anymore, nothing is rendered
	assert.NoError(t, m.Step())
	assert.Equal(t, 1, frontend.renders)
	assert.Equal(t, 2, m.Frames())
}

func TestStepTicksTimersOncePerFrame(t *testing.T) {
	// LD V0, 30; LD DT, V0; JP $204
	proc := newProcessor(t, 0x60, 0x1E, 0xF0, 0x15, 0x12, 0x04)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{}, Options{CyclesPerSecond: 6000})

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(29), proc.DelayTimer())
	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(28), proc.DelayTimer())
}

func TestStepForwardsKeys(t *testing.T) {
	// LD V5, K; JP $202
	proc := newProcessor(t, 0xF5, 0x0A, 0x12, 0x02)
	frontend := &fakeFrontend{keys: map[int]int{3: 0xB}}
	m := New(log.NewTestLogger(t), proc, frontend, Options{CyclesPerSecond: 60})

	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(chip8.ProgramStart), proc.PC())

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(0xB), proc.Register(5))
	assert.Equal(t, uint16(chip8.ProgramStart+2), proc.PC())
}

func TestStepQuit(t *testing.T) {
	proc := newProcessor(t, 0x12, 0x00)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{quitAt: 1}, Options{})

	err := m.Step()
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Equal(t, 0, m.Frames())
}

func TestStepProcessorError(t *testing.T) {
	// RET with an empty stack
	proc := newProcessor(t, 0x00, 0xEE)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{}, Options{Trace: true})

	err := m.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, chip8.ErrStackEmpty))
	assert.ErrorContains(t, err, "$0200")
}

func TestStepPollError(t *testing.T) {
	errPoll := errors.New("poll failed")
	proc := newProcessor(t, 0x12, 0x00)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{pollErr: errPoll}, Options{})

	err := m.Step()
	assert.True(t, errors.Is(err, errPoll))
}

func TestRunMaxFrames(t *testing.T) {
	proc := newProcessor(t, 0x12, 0x00)
	frontend := &fakeFrontend{}
	m := New(log.NewTestLogger(t), proc, frontend, Options{MaxFrames: 3})

	assert.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 3, m.Frames())
	assert.Equal(t, 3, frontend.polls)
}

func TestRunQuit(t *testing.T) {
	proc := newProcessor(t, 0x12, 0x00)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{quitAt: 2}, Options{})

	assert.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 1, m.Frames())
}

func TestRunCancelled(t *testing.T) {
	proc := newProcessor(t, 0x12, 0x00)
	m := New(log.NewTestLogger(t), proc, &fakeFrontend{}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewDefaults(t *testing.T) {
	m := New(log.NewTestLogger(t), chip8.New(), &fakeFrontend{}, Options{})
	assert.Equal(t, DefaultCyclesPerSecond/FrameRate, m.cyclesPerFrame)

	m = New(log.NewTestLogger(t), chip8.New(), &fakeFrontend{}, Options{CyclesPerSecond: 1})
	assert.Equal(t, 1, m.cyclesPerFrame)
}
