package instruction

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/nibble"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of a CHIP-8 instruction word in bytes.
const Size = 2

// ErrMalformedOpcode is returned for words that match no CHIP-8 encoding.
var ErrMalformedOpcode = errors.New("malformed opcode")

// Word combines the two instruction bytes, high byte first.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Decode maps a raw instruction word to its instruction. Dispatch happens on
// the high nibble first and then on narrower nibble groups.
func Decode(word uint16) (Instruction, error) {
	n0, n1 := nibble.Split(byte(word >> 8))
	n2, n3 := nibble.Split(byte(word))

	switch n0 {
	case 0x0:
		if n1 == 0 {
			switch {
			case n2 == 0x0 && n3 == 0x0:
				return Nop{}, nil
			case n2 == 0xE && n3 == 0x0:
				return ClearScreen{}, nil
			}
		}

	case 0x1:
		return Jump{Address: mustDatum(n1, n2, n3)}, nil

	case 0x6:
		return Load{Register: n1, Value: nibble.Byte(n2, n3)}, nil

	case 0x7:
		return Add{Register: n1, Value: nibble.Byte(n2, n3)}, nil

	case 0xA:
		return SetIndex{Address: mustDatum(n1, n2, n3)}, nil

	case 0xD:
		return Draw{X: n1, Y: n2, Rows: n3}, nil
	}

	return decodeUnsupported(word)
}

// decodeUnsupported looks the word up in the CHIP-8 opcode table to tell a
// not yet executed instruction apart from a malformed encoding.
func decodeUnsupported(word uint16) (Instruction, error) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return Unsupported{Opcode: word, ins: op.Instruction}, nil
		}
	}
	return nil, fmt.Errorf("%w: $%04X", ErrMalformedOpcode, word)
}

// mustDatum assembles a 12-bit operand. The nibbles come from a split byte
// so a failure can only be caused by a decoder bug.
func mustDatum(n0, n1, n2 nibble.Nibble) nibble.Datum {
	d, err := nibble.DatumFromNibbles(n0, n1, n2)
	if err != nil {
		panic(fmt.Sprintf("decoder fault: %v", err))
	}
	return d
}
