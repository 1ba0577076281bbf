package vm

// TickTimers decrements the delay and sound timers if they are not zero.
// The host calls it at TimerFrequency, independent of the step rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SetDelayTimer sets the delay timer.
func (m *Machine) SetDelayTimer(value uint8) {
	m.delayTimer = value
}

// SoundTimer returns the sound timer.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SetSoundTimer sets the sound timer.
func (m *Machine) SetSoundTimer(value uint8) {
	m.soundTimer = value
}

// BuzzerActive returns whether the buzzer should currently sound.
func (m *Machine) BuzzerActive() bool {
	return m.soundTimer > 0
}
