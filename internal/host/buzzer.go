package host

import "github.com/retroenv/retrogolib/log"

// LogBuzzer logs buzzer state changes.
type LogBuzzer struct {
	logger *log.Logger
}

// NewLogBuzzer returns a buzzer that logs to logger.
func NewLogBuzzer(logger *log.Logger) *LogBuzzer {
	return &LogBuzzer{logger: logger}
}

// SetActive logs the new buzzer state.
func (b *LogBuzzer) SetActive(active bool) {
	if active {
		b.logger.Debug("Buzzer on")
	} else {
		b.logger.Debug("Buzzer off")
	}
}
