// Package nibble provides the 4-bit and 12-bit field types that CHIP-8 opcodes are built from.
package nibble

import (
	"errors"
	"fmt"
)

const (
	// MaxNibble is the highest value a 4-bit field can hold.
	MaxNibble = 0xF
	// MaxDatum is the highest value a 12-bit address or immediate can hold.
	MaxDatum = 0xFFF
)

var (
	errNibbleRange = errors.New("nibble out of range")
	errDatumRange  = errors.New("datum out of range")
)

// Nibble is a validated 4-bit value.
type Nibble uint8

// newNibble returns the value as a nibble, failing if it does not fit into 4 bits.
func newNibble(value uint8) (Nibble, error) {
	if value > MaxNibble {
		return 0, fmt.Errorf("%w: $%02X", errNibbleRange, value)
	}
	return Nibble(value), nil
}

// Split decomposes a byte into its high and low nibble.
func Split(b byte) (Nibble, Nibble) {
	return Nibble(b >> 4), Nibble(b & 0x0F)
}

// Byte joins a high and a low nibble into a byte.
func Byte(hi, lo Nibble) byte {
	return byte(hi)<<4 | byte(lo)
}

// Int returns the nibble as int, convenient for indexing arrays.
func (n Nibble) Int() int {
	return int(n)
}

// Datum is a validated 12-bit address or immediate.
type Datum uint16

// NewDatum returns the value as a datum, failing if it does not fit into 12 bits.
func NewDatum(value uint16) (Datum, error) {
	if value > MaxDatum {
		return 0, fmt.Errorf("%w: $%04X", errDatumRange, value)
	}
	return Datum(value), nil
}

// DatumFromNibbles assembles a datum from three nibbles, most significant first.
func DatumFromNibbles(n0, n1, n2 Nibble) (Datum, error) {
	var value uint16
	for _, n := range [...]Nibble{n0, n1, n2} {
		if _, err := newNibble(uint8(n)); err != nil {
			return 0, err
		}
		value = value<<4 | uint16(n)
	}
	return NewDatum(value)
}

// BitAt returns whether bit n of the input is set. Bits beyond 7 are never set.
func BitAt(input byte, n uint) bool {
	if n > 7 {
		return false
	}
	return input&(1<<n) != 0
}
