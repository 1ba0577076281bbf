package vm

import (
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/nibble"
)

// spriteWidth is the number of pixels encoded by one sprite row byte.
const spriteWidth = 8

// draw XORs an n row sprite read from memory at the index register onto the
// framebuffer at V[x], V[y]. The starting corner and every single pixel wrap
// around the screen edges. VF is reset to 0 and raised to 1 if any lit
// pixel gets erased. It returns whether any pixel changed.
func (m *Machine) draw(ins instruction.Draw) (bool, error) {
	rows := ins.Rows.Int()
	if err := checkRange(m.index, rows); err != nil {
		return false, err
	}

	sx := int(m.registers[ins.X]) % Width
	sy := int(m.registers[ins.Y]) % Height

	// VF is clobbered, see instruction.WritesFlagRegister
	m.registers[FlagRegister] = 0
	changed := false

	for i := range rows {
		row := m.memory[int(m.index)+i]
		y := (sy + i) % Height

		for j := range spriteWidth {
			if !nibble.BitAt(row, uint(spriteWidth-1-j)) {
				continue // XOR with an unlit sprite pixel keeps the screen pixel
			}

			x := (sx + j) % Width
			if m.display[y][x] {
				m.registers[FlagRegister] = 1
			}
			m.display[y][x] = !m.display[y][x]
			changed = true
		}
	}

	return changed, nil
}
