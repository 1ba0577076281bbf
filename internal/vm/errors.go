package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrUnsupportedInstruction is returned when a valid CHIP-8 instruction is
	// fetched that this core revision does not execute.
	ErrUnsupportedInstruction = errors.New("instruction not supported by this core revision")

	// ErrAddressOutOfRange is returned when a fetch or a sprite read would
	// access memory beyond the 4 KB address space. It matches
	// chip8.ErrMemoryOutOfBounds with errors.Is.
	ErrAddressOutOfRange = fmt.Errorf("address out of range: %w", chip8.ErrMemoryOutOfBounds)
)
