// Package pipeline orchestrates the stages of running a ROM: system
// detection, loading, machine setup and the host run loop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

var errInteractiveOutput = errors.New("interactive mode requires a terminal output")

// Pipeline orchestrates the complete run workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new run pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute loads the ROM file named in the options and runs it until the
// context is cancelled, the step limit is reached or the program halts.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) (host.Stats, error) {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return host.Stats{}, fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return host.Stats{}, fmt.Errorf("loading ROM: %w", err)
	}

	p.printInfo(opts, system, len(program))
	return p.ExecuteWithProgram(ctx, program, opts, out)
}

// ExecuteWithProgram runs an already loaded program.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	out io.Writer) (host.Stats, error) {

	machine := p.createMachine(opts)
	if n := machine.LoadProgram(program); n < len(program) {
		p.logger.Warn("Program exceeds program space, truncated",
			log.Int("size", len(program)),
			log.Int("loaded", n))
	}

	var (
		stats host.Stats
		err   error
	)
	if opts.Headless {
		stats, err = p.runHeadless(ctx, machine, opts, out)
	} else {
		stats, err = p.runInteractive(ctx, machine, opts, out)
	}

	p.printStats(opts, stats)
	return stats, err
}

func (p *Pipeline) createMachine(opts options.Program) *vm.Machine {
	vmOpts := []vm.Option{vm.WithClock(opts.Clock)}
	if opts.Debug {
		vmOpts = append(vmOpts, vm.WithLogger(p.logger))
	}
	return vm.New(vmOpts...)
}

// runHeadless runs without terminal interaction and writes the final frame
// to out when the run ends.
func (p *Pipeline) runHeadless(ctx context.Context, machine *vm.Machine, opts options.Program,
	out io.Writer) (host.Stats, error) {

	runner := &host.Runner{
		Machine:    machine,
		Keypad:     host.StaticKeypad{},
		Buzzer:     host.NewLogBuzzer(p.logger),
		MaxSteps:   opts.MaxSteps,
		StopOnHalt: true,
	}
	stats, err := runner.Run(ctx)

	frame := machine.Display()
	if renderErr := host.NewTextRenderer(out).Render(&frame); renderErr != nil {
		return stats, errors.Join(err, renderErr)
	}
	if err != nil {
		return stats, fmt.Errorf("running program: %w", err)
	}
	return stats, nil
}

// runInteractive renders to the terminal attached to out and reads the
// keypad from stdin.
func (p *Pipeline) runInteractive(ctx context.Context, machine *vm.Machine, opts options.Program,
	out io.Writer) (host.Stats, error) {

	file, ok := out.(*os.File)
	if !ok {
		return host.Stats{}, errInteractiveOutput
	}

	renderer, err := host.NewTerminalRenderer(file)
	if err != nil {
		return host.Stats{}, fmt.Errorf("creating terminal renderer: %w", err)
	}
	defer func() { _ = renderer.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keypad, err := host.NewTerminalKeypad(p.logger, os.Stdin, cancel)
	if err != nil {
		return host.Stats{}, fmt.Errorf("creating terminal keypad: %w", err)
	}
	defer func() { _ = keypad.Close() }()

	runner := &host.Runner{
		Machine:  machine,
		Renderer: renderer,
		Keypad:   keypad,
		Buzzer:   host.NewLogBuzzer(p.logger),
		MaxSteps: opts.MaxSteps,
	}
	stats, err := runner.Run(ctx)
	if err != nil {
		return stats, fmt.Errorf("running program: %w", err)
	}
	return stats, nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.Stringer("clock", opts.Clock),
	)
}

// printStats prints the counters of a finished run.
func (p *Pipeline) printStats(opts options.Program, stats host.Stats) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Run finished",
		log.Uint64("steps", stats.Steps),
		log.Uint64("frames", stats.Frames),
		log.Uint64("timer_ticks", stats.TimerTicks),
		log.Int("unique_addresses", stats.UniqueAddresses),
		log.Bool("halted", stats.Halted),
	)
}
