// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
)

// Limits of the configurable options.
const (
	minCyclesPerSecond = machine.FrameRate
	maxCyclesPerSecond = 1_000_000
	defaultScale       = 10
	maxScale           = 40
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Trace {
		opts.Debug = true
	}

	if opts.CyclesPerSecond < minCyclesPerSecond || opts.CyclesPerSecond > maxCyclesPerSecond {
		return fmt.Errorf("unsupported cpu speed: %d. Valid range: %d-%d",
			opts.CyclesPerSecond, minCyclesPerSecond, maxCyclesPerSecond)
	}

	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("unsupported scale: %d. Valid range: 1-%d", opts.Scale, maxScale)
	}

	if opts.MaxFrames < 0 {
		return fmt.Errorf("invalid frame count: %d", opts.MaxFrames)
	}
	if opts.Headless && opts.MaxFrames == 0 {
		return fmt.Errorf("headless mode requires a frame count, pass -frames")
	}

	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system to emulate (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.CyclesPerSecond, "cpu", machine.DefaultCyclesPerSecond, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window pixel scale")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and print the final screen")
	flags.IntVar(&opts.MaxFrames, "frames", 0, "stop after this many frames at 60 frames per second, 0 runs until quit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
}
