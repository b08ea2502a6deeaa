// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// WindowConstructor creates a windowed frontend.
type WindowConstructor func(title string, scale int) (machine.Frontend, error)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger    *log.Logger
	detector  *detector.Detector
	loader    *loader.Loader
	newWindow WindowConstructor
}

// New creates a new emulation pipeline. The window constructor is used for
// all runs that are not headless.
func New(logger *log.Logger, newWindow WindowConstructor) *Pipeline {
	return &Pipeline{
		logger:    logger,
		detector:  detector.New(logger),
		loader:    loader.New(),
		newWindow: newWindow,
	}
}

// Execute runs the complete emulation pipeline. In headless mode the final
// screen is written to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	if _, err := p.detector.Detect(opts); err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, writer)
}

// ExecuteWithProgram runs the emulation pipeline with a pre-loaded program.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program, writer io.Writer) error {
	proc := chip8.New()
	if err := proc.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	p.printInfo(opts, len(program))

	if opts.Headless {
		return p.runHeadless(ctx, proc, opts, writer)
	}

	window, err := p.newWindow("retrochip8 - "+opts.Input, opts.Scale)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer func() {
		if err := window.Close(); err != nil {
			p.logger.Error("Closing window failed", log.Err(err))
		}
	}()

	return p.run(ctx, proc, window, opts)
}

// runHeadless runs the program without window and prints the final screen.
func (p *Pipeline) runHeadless(ctx context.Context, proc *chip8.Processor, opts options.Program, writer io.Writer) error {
	frontend := headless.New()
	if err := p.run(ctx, proc, frontend, opts); err != nil {
		return err
	}

	if _, err := frontend.WriteTo(writer); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, proc *chip8.Processor, frontend machine.Frontend, opts options.Program) error {
	m := machine.New(p.logger, proc, frontend, config.CreateMachineOptions(opts))
	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Debug("Program stopped", log.Int("frames", m.Frames()))
	return nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("cpu", opts.CyclesPerSecond),
	)
}
