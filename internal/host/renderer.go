package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
	"golang.org/x/term"
)

const (
	ansiCursorHome = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"

	// two pixel rows share one character cell
	terminalRows = vm.Height / 2
)

var errNoTerminal = errors.New("output is not a terminal")

// TextRenderer writes every frame as text lines of '#' and '.' characters.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render writes the frame followed by an empty line.
func (r *TextRenderer) Render(frame *vm.Framebuffer) error {
	if _, err := fmt.Fprintln(r.w, frame.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// TerminalRenderer redraws the screen in place on an ANSI terminal using
// half block characters.
type TerminalRenderer struct {
	out *os.File
	buf strings.Builder
}

// NewTerminalRenderer prepares the terminal attached to out for rendering.
func NewTerminalRenderer(out *os.File) (*TerminalRenderer, error) {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNoTerminal
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("getting terminal size: %w", err)
	}
	if width < vm.Width || height < terminalRows {
		return nil, fmt.Errorf("terminal size %dx%d is too small, %dx%d is required",
			width, height, vm.Width, terminalRows)
	}

	if _, err := io.WriteString(out, ansiClear+ansiHideCursor); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return &TerminalRenderer{out: out}, nil
}

// Render draws the frame starting at the top left corner of the terminal.
func (r *TerminalRenderer) Render(frame *vm.Framebuffer) error {
	r.buf.Reset()
	r.buf.WriteString(ansiCursorHome)
	writeHalfBlocks(&r.buf, frame)

	if _, err := io.WriteString(r.out, r.buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close restores the cursor.
func (r *TerminalRenderer) Close() error {
	_, err := io.WriteString(r.out, ansiShowCursor+"\r\n")
	return err
}

// writeHalfBlocks renders two pixel rows per text line. Lines end with \r\n
// as the terminal can be in raw mode.
func writeHalfBlocks(sb *strings.Builder, frame *vm.Framebuffer) {
	for y := 0; y < vm.Height; y += 2 {
		for x := range vm.Width {
			top := frame[y][x]
			bottom := frame[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
}
