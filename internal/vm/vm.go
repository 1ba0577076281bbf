// Package vm implements the CHIP-8 virtual machine core: the machine state,
// the instruction executor and the step driver that the host calls once per tick.
//
// The machine is not safe for concurrent use. The host owns it exclusively
// and serializes all calls, including the 60 Hz timer ticks.
package vm

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory map:
//
//	0x000-0x1FF: Interpreter and font area (unused by this core)
//	0x200-0xFFF: Program space
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000
	// ProgramStart is the address programs are loaded at and execution starts from.
	ProgramStart = 0x200
	// MaxProgramSize is the number of bytes that fit into the program space.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// FlagRegister is the index of VF, which carry and collision results overwrite.
	FlagRegister = 0xF
	// StackSize is the depth of the call stack.
	StackSize = 16

	// DefaultClock is the default interval between two steps.
	DefaultClock = 2 * time.Millisecond
	// TimerFrequency is the rate in Hz at which the host decrements the timers.
	TimerFrequency = 60
)

// Option is a functional option for configuring the Machine.
type Option func(*Machine)

// WithClock sets the interval between two steps that the host should use.
func WithClock(clock time.Duration) Option {
	return func(m *Machine) {
		m.clock = clock
	}
}

// WithLogger sets the logger used for instruction tracing.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// Machine holds the complete state of a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	clock  time.Duration

	memory    Memory
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16

	// reserved for call and return, which this revision does not execute
	sp    uint8
	stack [StackSize]uint16

	delayTimer uint8
	soundTimer uint8

	display Framebuffer
}

// New returns a machine with zeroed memory and registers, a blank display
// and the program counter at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{
		clock: DefaultClock,
		pc:    ProgramStart,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadProgram copies the program into memory starting at ProgramStart.
// Data that does not fit into the program space is dropped, the number of
// copied bytes is returned.
func (m *Machine) LoadProgram(data []byte) int {
	return copy(m.memory[ProgramStart:], data)
}

// Memory returns the machine memory.
func (m *Machine) Memory() *Memory {
	return &m.memory
}

// Register returns the value of register V[n]. Only the low nibble of n is used.
func (m *Machine) Register(n uint8) uint8 {
	return m.registers[n&0xF]
}

// SetRegister sets register V[n]. Only the low nibble of n is used.
func (m *Machine) SetRegister(n, value uint8) {
	m.registers[n&0xF] = value
}

// Index returns the index register.
func (m *Machine) Index() uint16 {
	return m.index
}

// SetIndex sets the index register.
func (m *Machine) SetIndex(address uint16) {
	m.index = address
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SetPC sets the program counter.
func (m *Machine) SetPC(address uint16) {
	m.pc = address
}

// SP returns the stack pointer.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Display returns a copy of the current framebuffer.
func (m *Machine) Display() Framebuffer {
	return m.display
}

// Speed returns the configured interval between two steps.
func (m *Machine) Speed() time.Duration {
	return m.clock
}
