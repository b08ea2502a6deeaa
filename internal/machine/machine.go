// Package machine implements the frame paced driver loop that runs a CHIP-8
// processor and connects it to a frontend.
package machine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second. The timers are ticked once
// per frame.
const FrameRate = 60

// DefaultCyclesPerSecond is the default instruction rate.
const DefaultCyclesPerSecond = 700

// ErrQuit is returned by Run when the frontend requested to quit.
var ErrQuit = errors.New("quit requested")

// KeyLatch receives logical key state changes from a frontend.
type KeyLatch interface {
	SetKey(key int, pressed bool) error
}

// Frontend presents the framebuffer and translates input events.
type Frontend interface {
	// Poll processes pending input events, forwards key changes to the
	// latch and returns whether the user requested to quit.
	Poll(keys KeyLatch) (bool, error)
	// Render draws the framebuffer.
	Render(fb chip8.Framebuffer) error
	// Close releases all frontend resources.
	Close() error
}

// Options control the driver loop.
type Options struct {
	CyclesPerSecond int  // instructions executed per second
	MaxFrames       int  // stop after this many frames, 0 runs until quit
	Trace           bool // log every executed instruction
}

// Machine runs a processor at a fixed frame rate.
type Machine struct {
	logger   *log.Logger
	proc     *chip8.Processor
	frontend Frontend
	opts     Options

	cyclesPerFrame int
	frames         int
}

// New returns a new machine. The processor must already contain the program.
func New(logger *log.Logger, proc *chip8.Processor, frontend Frontend, opts Options) *Machine {
	if opts.CyclesPerSecond <= 0 {
		opts.CyclesPerSecond = DefaultCyclesPerSecond
	}

	return &Machine{
		logger:         logger,
		proc:           proc,
		frontend:       frontend,
		opts:           opts,
		cyclesPerFrame: max(1, opts.CyclesPerSecond/FrameRate),
	}
}

// Frames returns the number of frames executed so far.
func (m *Machine) Frames() int {
	return m.frames
}

// Run executes frames paced at FrameRate until the context is cancelled,
// the frontend requests to quit, MaxFrames is reached or the processor
// reports an error. A quit request or reaching MaxFrames returns nil.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	m.logger.Debug("Starting machine",
		log.Int("cycles_per_frame", m.cyclesPerFrame),
		log.Int("max_frames", m.opts.MaxFrames))

	for {
		if m.opts.MaxFrames > 0 && m.frames >= m.opts.MaxFrames {
			m.logger.Debug("Frame limit reached", log.Int("frames", m.frames))
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())
		case <-ticker.C:
		}

		err := m.Step()
		if errors.Is(err, ErrQuit) {
			m.logger.Debug("Quit requested", log.Int("frames", m.frames))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Step runs a single frame: poll input, execute the instructions of one
// frame, tick the timers and render the screen if it changed.
func (m *Machine) Step() error {
	quit, err := m.frontend.Poll(m.proc)
	if err != nil {
		return fmt.Errorf("polling input: %w", err)
	}
	if quit {
		return ErrQuit
	}

	for range m.cyclesPerFrame {
		if err := m.cycle(); err != nil {
			return err
		}
	}
	m.proc.TickTimers()
	m.frames++

	if !m.proc.DisplayDirty() {
		return nil
	}
	if err := m.frontend.Render(m.proc.Framebuffer()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	m.proc.ClearDisplayDirty()
	return nil
}

func (m *Machine) cycle() error {
	address, word, ok := m.proc.NextInstruction()
	if m.opts.Trace && ok {
		m.logger.Debug("Executing",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.String("instruction", disasm.Format(word)))
	}

	if err := m.proc.Cycle(); err != nil {
		m.logger.Debug("Processor state", log.String("state", m.proc.State().String()))
		return fmt.Errorf("executing instruction at $%04X: %w", address, err)
	}
	return nil
}
