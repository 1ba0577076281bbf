// Package options contains the program options.
package options

import (
	"time"
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	System   string        `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Clock    time.Duration `flag:"clock" usage:"interval between two executed instructions" default:"2ms"`
	MaxSteps uint64        `flag:"steps" usage:"stop after executing this many instructions (0: unlimited)"`
	Headless bool          `flag:"headless" usage:"do not render to the terminal, print the final frame instead"`
	Debug    bool          `flag:"debug" usage:"enable debug logging"`
	Quiet    bool          `flag:"q" usage:"quiet mode"`
}

// Program options of the virtual machine host.
type Program struct {
	Parameters
	Flags
}
