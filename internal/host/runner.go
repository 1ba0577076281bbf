// Package host drives a virtual machine in real time. It owns the machine,
// calls Step at the machine speed, ticks the timers at 60 Hz and connects the
// display, keypad and buzzer to their host side implementations.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

// Renderer presents a framebuffer to the user.
type Renderer interface {
	Render(frame *vm.Framebuffer) error
}

// Keypad reports the currently pressed keys.
type Keypad interface {
	Keys() vm.Keypad
}

// Buzzer is switched on while the sound timer is active.
type Buzzer interface {
	SetActive(active bool)
}

// Stats contains the counters of a finished run.
type Stats struct {
	Steps           uint64
	Frames          uint64
	TimerTicks      uint64
	UniqueAddresses int  // number of distinct instruction addresses executed
	Halted          bool // the program jumped to its own address

	executed set.Set[uint16]
}

// Runner executes a machine until the context is done, the step limit is
// reached, a step fails or a halted program is detected.
type Runner struct {
	Machine  *vm.Machine
	Renderer Renderer // optional
	Keypad   Keypad   // optional, no keys are pressed if not set
	Buzzer   Buzzer   // optional

	MaxSteps   uint64 // 0 is unlimited
	StopOnHalt bool   // end the run when the program jumps to its own address
}

// Run drives the machine. All machine access happens on the calling
// goroutine. The returned error wraps ctx.Err() if the context ended the run.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	stats := Stats{
		executed: set.New[uint16](),
	}

	stepTicker := time.NewTicker(r.Machine.Speed())
	defer stepTicker.Stop()
	timerTicker := time.NewTicker(time.Second / vm.TimerFrequency)
	defer timerTicker.Stop()

	buzzing := false
	for {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("running machine: %w", ctx.Err())

		case <-timerTicker.C:
			r.Machine.TickTimers()
			stats.TimerTicks++
			if active := r.Machine.BuzzerActive(); active != buzzing {
				buzzing = active
				if r.Buzzer != nil {
					r.Buzzer.SetActive(active)
				}
			}

		case <-stepTicker.C:
			done, err := r.step(&stats)
			if err != nil || done {
				return stats, err
			}
		}
	}
}

// step executes a single instruction and returns whether the run is finished.
func (r *Runner) step(stats *Stats) (bool, error) {
	var keys vm.Keypad
	if r.Keypad != nil {
		keys = r.Keypad.Keys()
	}

	pc := r.Machine.PC()
	frame, err := r.Machine.Step(keys)
	if err != nil {
		return true, fmt.Errorf("step at $%04X: %w", pc, err)
	}

	stats.Steps++
	if !stats.executed.Contains(pc) {
		stats.executed.Add(pc)
		stats.UniqueAddresses++
	}

	if frame != nil {
		stats.Frames++
		if r.Renderer != nil {
			if err := r.Renderer.Render(frame); err != nil {
				return true, fmt.Errorf("rendering frame: %w", err)
			}
		}
	}

	// every executable instruction advances the program counter except a
	// jump to its own address
	if r.Machine.PC() == pc {
		stats.Halted = true
		if r.StopOnHalt {
			return true, nil
		}
	}

	return r.MaxSteps > 0 && stats.Steps >= r.MaxSteps, nil
}
