package vm_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var _ = Describe("Machine", func() {
	var (
		m    *vm.Machine
		keys vm.Keypad
	)

	BeforeEach(func() {
		m = vm.New()
		keys = vm.Keypad{}
	})

	Describe("New", func() {
		It("should use the configured clock", func() {
			m = vm.New(vm.WithClock(200 * time.Millisecond))
			Expect(m.Speed()).To(Equal(200 * time.Millisecond))
		})

		It("should start at the program start address", func() {
			Expect(m.PC()).To(Equal(uint16(vm.ProgramStart)))
		})
	})

	Describe("Step", func() {
		It("should load and add across two steps", func() {
			m.LoadProgram([]byte{0x60, 0x0A, 0x70, 0x05})

			frame, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
			Expect(m.PC()).To(Equal(uint16(0x202)))

			frame, err = m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
			Expect(m.Register(0)).To(Equal(uint8(15)))
			Expect(m.PC()).To(Equal(uint16(0x204)))
		})

		It("should clear a screen with lit pixels", func() {
			// draw a pixel first so that the clear has something to erase
			m.LoadProgram([]byte{
				0xA2, 0x06, // ld I, $206
				0xD0, 0x01, // drw V0, V0, $1
				0x00, 0xE0, // cls
				0x80, // sprite row
			})

			for range 2 {
				_, err := m.Step(keys)
				Expect(err).NotTo(HaveOccurred())
			}
			display := m.Display()
			Expect(display.Lit()).To(Equal(1))

			frame, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).NotTo(BeNil())
			Expect(frame.Lit()).To(Equal(0))
		})

		It("should return a frame only when pixels changed", func() {
			m.LoadProgram([]byte{
				0x00, 0xE0, // cls on a blank screen
				0xA2, 0x08, // ld I, $208
				0xD0, 0x01, // drw V0, V0, $1
				0x00, 0x00, // nop
				0xF0, // sprite row
			})

			frame, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())

			_, err = m.Step(keys)
			Expect(err).NotTo(HaveOccurred())

			frame, err = m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).NotTo(BeNil())
			Expect(frame.Lit()).To(Equal(4))
			Expect(frame.Pixel(3, 0)).To(BeTrue())

			frame, err = m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(BeNil())
		})

		It("should return a copy of the framebuffer", func() {
			m.LoadProgram([]byte{0xA2, 0x04, 0xD0, 0x01, 0x80})

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			frame, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())

			frame[0][0] = false
			display := m.Display()
			Expect(display.Pixel(0, 0)).To(BeTrue())
		})

		It("should jump to the 12-bit address", func() {
			m.LoadProgram([]byte{0x12, 0x34})

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.PC()).To(Equal(uint16(0x234)))
		})

		It("should set the index register", func() {
			m.LoadProgram([]byte{0xA3, 0x21})

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Index()).To(Equal(uint16(0x321)))
		})

		It("should fail on a malformed opcode", func() {
			m.LoadProgram([]byte{0x80, 0x08})

			frame, err := m.Step(keys)
			Expect(frame).To(BeNil())
			Expect(err).To(MatchError(instruction.ErrMalformedOpcode))
			Expect(err.Error()).To(ContainSubstring("$0200"))
		})

		It("should fail on an unsupported instruction without executing it", func() {
			m.LoadProgram([]byte{0x22, 0x10})

			_, err := m.Step(keys)
			Expect(err).To(MatchError(vm.ErrUnsupportedInstruction))
			Expect(m.SP()).To(Equal(uint8(0)))
			Expect(m.PC()).To(Equal(uint16(0x202)))
		})

		It("should fail when the program counter runs off memory", func() {
			m.SetPC(0xFFF)

			_, err := m.Step(keys)
			Expect(err).To(MatchError(vm.ErrAddressOutOfRange))
			Expect(m.PC()).To(Equal(uint16(0xFFF)))
		})

		It("should fail when the program counter is outside of memory", func() {
			m.SetPC(0xFFFF)

			_, err := m.Step(keys)
			Expect(err).To(MatchError(vm.ErrAddressOutOfRange))
			Expect(err).To(MatchError(chip8.ErrMemoryOutOfBounds))
			Expect(m.PC()).To(Equal(uint16(0xFFFF)))
		})

		It("should fetch the last word of memory", func() {
			Expect(m.Memory().Write(0xFFE, 0x00)).To(Succeed())
			Expect(m.Memory().Write(0xFFF, 0xE0)).To(Succeed())
			m.SetPC(0xFFE)

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.PC()).To(Equal(uint16(0x1000)))
		})
	})

	Describe("Flag register", func() {
		DescribeTable("should not be touched by instructions other than draw",
			func(program []byte) {
				m.SetRegister(vm.FlagRegister, 0x5A)
				m.SetRegister(1, 0x01)
				m.LoadProgram(program)

				_, err := m.Step(keys)
				Expect(err).NotTo(HaveOccurred())
				Expect(m.Register(vm.FlagRegister)).To(Equal(uint8(0x5A)))
			},
			Entry("nop", []byte{0x00, 0x00}),
			Entry("cls", []byte{0x00, 0xE0}),
			Entry("jp", []byte{0x13, 0x00}),
			Entry("ld Vx, byte", []byte{0x61, 0xFF}),
			Entry("add with overflow", []byte{0x71, 0xFF}),
			Entry("ld I, addr", []byte{0xA3, 0x00}),
		)

		It("should wrap an overflowing add without setting a carry", func() {
			m.SetRegister(vm.FlagRegister, 0x5A)
			m.SetRegister(1, 0x01)
			m.LoadProgram([]byte{0x71, 0xFF})

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Register(1)).To(Equal(uint8(0x00)))
			Expect(m.Register(vm.FlagRegister)).To(Equal(uint8(0x5A)))
		})

		It("should wrap when adding to VF itself without a carry", func() {
			m.SetRegister(vm.FlagRegister, 0xFF)
			m.LoadProgram([]byte{0x7F, 0x02})

			_, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Register(vm.FlagRegister)).To(Equal(uint8(0x01)))
		})

		It("should report draw collisions", func() {
			m.LoadProgram([]byte{
				0xA2, 0x08, // ld I, $208
				0xD0, 0x01, // drw V0, V0, $1
				0xD0, 0x01, // drw V0, V0, $1
				0x00, 0x00, // nop
				0x81, // sprite row
			})

			for range 2 {
				_, err := m.Step(keys)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(m.Register(vm.FlagRegister)).To(Equal(uint8(0)))

			frame, err := m.Step(keys)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Register(vm.FlagRegister)).To(Equal(uint8(1)))
			Expect(frame.Lit()).To(Equal(0))
		})
	})

	Describe("Timers", func() {
		It("should only decrement when ticked by the host", func() {
			m.SetSoundTimer(3)
			m.SetDelayTimer(1)
			m.LoadProgram([]byte{0x00, 0x00, 0x00, 0x00})

			for range 2 {
				_, err := m.Step(keys)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(m.SoundTimer()).To(Equal(uint8(3)))
			Expect(m.BuzzerActive()).To(BeTrue())

			m.TickTimers()
			Expect(m.SoundTimer()).To(Equal(uint8(2)))
			Expect(m.DelayTimer()).To(Equal(uint8(0)))
		})
	})
})
