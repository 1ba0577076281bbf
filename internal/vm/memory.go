package vm

import "fmt"

// Memory is the byte addressable CHIP-8 memory.
type Memory [MemorySize]byte

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: read at $%04X", ErrAddressOutOfRange, address)
	}
	return m[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("%w: write at $%04X", ErrAddressOutOfRange, address)
	}
	m[address] = value
	return nil
}

// checkRange verifies that size bytes starting at address are addressable.
func checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, size)
	}
	return nil
}
