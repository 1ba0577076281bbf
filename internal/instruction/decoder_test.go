package instruction

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/nibble"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected Instruction
	}{
		{"NOP", 0x0000, Nop{}},
		{"CLS", 0x00E0, ClearScreen{}},
		{"JP addr", 0x1234, Jump{Address: 0x234}},
		{"JP max addr", 0x1FFF, Jump{Address: nibble.MaxDatum}},
		{"LD Vx, byte", 0x6A0F, Load{Register: 0xA, Value: 0x0F}},
		{"LD VF, byte", 0x6FFF, Load{Register: 0xF, Value: 0xFF}},
		{"ADD Vx, byte", 0x7234, Add{Register: 0x2, Value: 0x34}},
		{"LD I, addr", 0xA234, SetIndex{Address: 0x234}},
		{"DRW Vx, Vy, n", 0xD235, Draw{X: 0x2, Y: 0x3, Rows: 0x5}},
		{"DRW zero rows", 0xD120, Draw{X: 0x1, Y: 0x2, Rows: 0x0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ins)
		})
	}
}

func TestDecode_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected *chip8.Instruction
	}{
		{"RET", 0x00EE, chip8.RetInst},
		{"CALL addr", 0x2300, chip8.CallInst},
		{"SE Vx, byte", 0x3234, chip8.SeInst},
		{"SNE Vx, byte", 0x4234, chip8.SneInst},
		{"ADD Vx, Vy", 0x8234, chip8.AddInst},
		{"SUB Vx, Vy", 0x8235, chip8.SubInst},
		{"JP V0, addr", 0xB234, chip8.JpInst},
		{"RND Vx, byte", 0xC234, chip8.RndInst},
		{"SKP Vx", 0xE29E, chip8.SkpInst},
		{"SKNP Vx", 0xE2A1, chip8.SknpInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)

			u, ok := ins.(Unsupported)
			assert.True(t, ok)
			assert.Equal(t, tt.word, u.Opcode)
			assert.Equal(t, tt.expected.Name, u.Name())
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	words := []uint16{0x8008, 0x800F, 0xE000, 0xE0FF}

	for _, word := range words {
		ins, err := Decode(word)
		assert.Nil(t, ins)
		assert.True(t, errors.Is(err, ErrMalformedOpcode))
	}
}

func TestDecode_Total(t *testing.T) {
	// every word either decodes or fails with the malformed opcode error
	for w := 0; w <= 0xFFFF; w++ {
		ins, err := Decode(uint16(w))
		if err != nil {
			assert.True(t, errors.Is(err, ErrMalformedOpcode))
			continue
		}
		assert.NotNil(t, ins)
		assert.NotEmpty(t, ins.Name())
	}
}

func TestDecode_JumpUses12Bits(t *testing.T) {
	ins, err := Decode(Word(0x12, 0x34))
	assert.NoError(t, err)

	jump, ok := ins.(Jump)
	assert.True(t, ok)
	assert.Equal(t, nibble.Datum(0x234), jump.Address)
}

func TestWord(t *testing.T) {
	assert.Equal(t, uint16(0x00E0), Word(0x00, 0xE0))
	assert.Equal(t, uint16(0xD235), Word(0xD2, 0x35))
}
