// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyImage is returned for ROM files without content.
var ErrEmptyImage = errors.New("empty ROM image")

// Loader handles loading ROM images from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the raw ROM image at path. CHIP-8 images have no header, the
// file content is the program as it is placed at vm.ProgramStart. Images
// exceeding the program space are truncated.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	size := int(info.Size())
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM image: %w", err)
	}

	// the buffer loader pads the image to a full bank
	size = min(size, len(cart.PRG))

	if size > vm.MaxProgramSize {
		l.logger.Warn("ROM image exceeds program space, truncating",
			log.String("file", path),
			log.Int("size", size),
			log.Int("max_size", vm.MaxProgramSize))
		size = vm.MaxProgramSize
	}
	return cart.PRG[:size], nil
}
