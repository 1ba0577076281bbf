// Package instruction contains the decoded CHIP-8 instruction variants.
//
// The set of variants is closed: every 16-bit word decodes either to one of
// the instructions executed by this core, to Unsupported for valid CHIP-8
// encodings that are not executed yet, or to a malformed opcode error.
package instruction

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/nibble"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded CHIP-8 instruction with its operands extracted.
type Instruction interface {
	// Name returns the instruction mnemonic.
	Name() string
	// String returns the mnemonic followed by its formatted operands.
	String() string

	instruction()
}

// nopName is the mnemonic of the explicit 0x0000 no-op, which the CHIP-8
// opcode table only knows as a machine code call.
const nopName = "nop"

// Nop does not change any state (0000).
type Nop struct{}

// ClearScreen resets every pixel of the framebuffer to unlit (00E0).
type ClearScreen struct{}

// Jump sets the program counter to Address (1nnn).
type Jump struct {
	Address nibble.Datum
}

// Load sets register V[Register] to Value (6xkk).
type Load struct {
	Register nibble.Nibble
	Value    byte
}

// Add adds Value to register V[Register] with 8-bit wraparound (7xkk).
// VF is not affected.
type Add struct {
	Register nibble.Nibble
	Value    byte
}

// SetIndex sets the index register to Address (Annn).
type SetIndex struct {
	Address nibble.Datum
}

// Draw XORs a sprite of Rows bytes read from memory at the index register
// onto the framebuffer at position V[X], V[Y] (Dxyn). VF is set to the
// collision flag.
type Draw struct {
	X    nibble.Nibble
	Y    nibble.Nibble
	Rows nibble.Nibble
}

// Unsupported is a valid CHIP-8 encoding that this core revision does not execute.
type Unsupported struct {
	Opcode uint16

	ins *chip8.Instruction
}

func (Nop) instruction()         {}
func (ClearScreen) instruction() {}
func (Jump) instruction()        {}
func (Load) instruction()        {}
func (Add) instruction()         {}
func (SetIndex) instruction()    {}
func (Draw) instruction()        {}
func (Unsupported) instruction() {}

func (Nop) Name() string         { return nopName }
func (ClearScreen) Name() string { return chip8.ClsName }
func (Jump) Name() string        { return chip8.JpName }
func (Load) Name() string        { return chip8.LdName }
func (Add) Name() string         { return chip8.AddName }
func (SetIndex) Name() string    { return chip8.LdName }
func (Draw) Name() string        { return chip8.DrwName }

// Name returns the mnemonic of the matching CHIP-8 opcode table entry.
func (u Unsupported) Name() string {
	if u.ins == nil {
		return ""
	}
	return u.ins.Name
}

func (i Nop) String() string         { return i.Name() }
func (i ClearScreen) String() string { return i.Name() }

func (i Jump) String() string {
	return fmt.Sprintf("%s $%03X", i.Name(), uint16(i.Address))
}

func (i Load) String() string {
	return fmt.Sprintf("%s V%X, $%02X", i.Name(), uint8(i.Register), i.Value)
}

func (i Add) String() string {
	return fmt.Sprintf("%s V%X, $%02X", i.Name(), uint8(i.Register), i.Value)
}

func (i SetIndex) String() string {
	return fmt.Sprintf("%s I, $%03X", i.Name(), uint16(i.Address))
}

func (i Draw) String() string {
	return fmt.Sprintf("%s V%X, V%X, $%X", i.Name(), uint8(i.X), uint8(i.Y), uint8(i.Rows))
}

func (u Unsupported) String() string {
	return fmt.Sprintf("%s ($%04X)", u.Name(), u.Opcode)
}

// WritesFlagRegister returns whether executing the instruction overwrites VF
// as a side effect, independent of its register operands.
func WritesFlagRegister(ins Instruction) bool {
	_, ok := ins.(Draw)
	return ok
}
