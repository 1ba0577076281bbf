package vm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
)

// Execute applies one decoded instruction to the machine state. It returns
// whether the framebuffer changed.
//
// Only Draw writes VF as a side effect; Add wraps around without touching it.
func (m *Machine) Execute(ins instruction.Instruction) (bool, error) {
	switch ins := ins.(type) {
	case instruction.Nop:
		return false, nil

	case instruction.ClearScreen:
		return m.display.Clear(), nil

	case instruction.Jump:
		m.pc = uint16(ins.Address)
		return false, nil

	case instruction.Load:
		m.registers[ins.Register] = ins.Value
		return false, nil

	case instruction.Add:
		m.registers[ins.Register] += ins.Value
		return false, nil

	case instruction.SetIndex:
		m.index = uint16(ins.Address)
		return false, nil

	case instruction.Draw:
		return m.draw(ins)

	case instruction.Unsupported:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedInstruction, ins)

	default:
		return false, fmt.Errorf("%w: %T", ErrUnsupportedInstruction, ins)
	}
}
