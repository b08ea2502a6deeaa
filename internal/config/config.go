// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachineOptions returns the driver loop options for the program options.
func CreateMachineOptions(opts options.Program) machine.Options {
	return machine.Options{
		CyclesPerSecond: opts.CyclesPerSecond,
		MaxFrames:       opts.MaxFrames,
		Trace:           opts.Trace,
	}
}
