// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
}

// Flags contains behavior options.
type Flags struct {
	CyclesPerSecond int  `flag:"cpu" usage:"instructions executed per second" default:"700"`
	Scale           int  `flag:"scale" usage:"window pixel scale" default:"10"`
	Headless        bool `flag:"headless" usage:"run without window and print the final screen"`
	MaxFrames       int  `flag:"frames" usage:"stop after this many frames, 0 runs until quit"`
	Debug           bool `flag:"debug" usage:"enable debug logging"`
	Quiet           bool `flag:"q" usage:"quiet mode"`
	Trace           bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}
