package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultKeyHold is how long a key counts as pressed after its last input byte.
const DefaultKeyHold = 150 * time.Millisecond

const ctrlC = 0x03

// keyLayout maps the left side of a QWERTY keyboard to the CHIP-8 keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r      4 5 6 D
//	a s d f  ->  7 8 9 E
//	z x c v      A 0 B F
var keyLayout = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// StaticKeypad reports a fixed key state.
type StaticKeypad vm.Keypad

// Keys returns the fixed key state.
func (k StaticKeypad) Keys() vm.Keypad {
	return vm.Keypad(k)
}

// TerminalKeypad reads key presses from a terminal in raw mode. Terminals
// only report key presses, so a key is held for a fixed time after its
// last input byte.
type TerminalKeypad struct {
	logger    *log.Logger
	in        *os.File
	state     *term.State
	hold      time.Duration
	now       func() time.Time
	interrupt func()

	mu      sync.Mutex
	pressed [16]time.Time
}

// NewTerminalKeypad switches the terminal attached to in to raw mode and
// starts reading keys. Raw mode disables the interrupt signal, so Ctrl+C
// calls interrupt instead.
func NewTerminalKeypad(logger *log.Logger, in *os.File, interrupt func()) (*TerminalKeypad, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("input is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	k := newKeypad(logger, DefaultKeyHold, interrupt)
	k.in = in
	k.state = state
	go k.readKeys(in)
	return k, nil
}

func newKeypad(logger *log.Logger, hold time.Duration, interrupt func()) *TerminalKeypad {
	return &TerminalKeypad{
		logger:    logger,
		hold:      hold,
		now:       time.Now,
		interrupt: interrupt,
	}
}

// Keys returns the keys that were pressed within the hold time.
func (k *TerminalKeypad) Keys() vm.Keypad {
	now := k.now()

	k.mu.Lock()
	defer k.mu.Unlock()

	var keys vm.Keypad
	for i, t := range k.pressed {
		keys[i] = !t.IsZero() && now.Sub(t) < k.hold
	}
	return keys
}

// Close restores the previous terminal state.
func (k *TerminalKeypad) Close() error {
	if k.state == nil {
		return nil
	}
	if err := term.Restore(int(k.in.Fd()), k.state); err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}

func (k *TerminalKeypad) readKeys(r io.Reader) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			k.handleByte(b)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				k.logger.Warn("Reading keyboard input failed", log.Err(err))
			}
			return
		}
	}
}

func (k *TerminalKeypad) handleByte(b byte) {
	if b == ctrlC {
		if k.interrupt != nil {
			k.interrupt()
		}
		return
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyLayout[b]
	if !ok {
		return
	}

	k.mu.Lock()
	k.pressed[key] = k.now()
	k.mu.Unlock()
}
