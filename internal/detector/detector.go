// Package detector handles target system detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for systems that the virtual machine cannot run.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the target system from options or the input file name.
// An explicitly passed system takes precedence over the file extension.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	if opts.System != "" {
		system, _ := arch.SystemFromString(opts.System)
		if system != arch.CHIP8System {
			return "", fmt.Errorf("%w '%s'", ErrUnsupportedSystem, opts.System)
		}
		return system, nil
	}

	system := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", opts.Input))

	if system != arch.CHIP8System {
		return "", fmt.Errorf("%w '%s' detected for file '%s'", ErrUnsupportedSystem, system, opts.Input)
	}
	return system, nil
}

// detectFromFile determines the system type based on the file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and raw images without a known header
		return arch.CHIP8System
	}
}
