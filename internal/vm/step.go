package vm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// Keypad is the pressed state of the 16 CHIP-8 keys 0-F.
type Keypad [16]bool

// Step runs one fetch, decode and execute cycle. The program counter is
// advanced past the fetched word before the instruction executes.
//
// A copy of the framebuffer is returned if the instruction changed it,
// otherwise nil. Any error is fatal for this step; an unknown or not yet
// supported instruction is never partially executed.
func (m *Machine) Step(keys Keypad) (*Framebuffer, error) {
	_ = keys // no key reading instruction is executed by this revision

	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		return nil, err
	}

	ins, err := instruction.Decode(word)
	if err != nil {
		return nil, fmt.Errorf("decoding opcode at $%04X: %w", pc, err)
	}

	if m.logger != nil {
		m.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", ins.String()),
			log.Bool("writes_vf", instruction.WritesFlagRegister(ins)))
	}

	changed, err := m.Execute(ins)
	if err != nil {
		return nil, fmt.Errorf("executing '%s' at $%04X: %w", ins, pc, err)
	}
	if !changed {
		return nil, nil
	}

	frame := m.display
	return &frame, nil
}

// fetch reads the instruction word at the program counter and advances the
// program counter by one instruction.
func (m *Machine) fetch() (uint16, error) {
	hi, err := m.memory.Read(m.pc)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	lo, err := m.memory.Read(m.pc + 1)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}

	word := instruction.Word(hi, lo)
	m.pc += instruction.Size
	return word, nil
}
