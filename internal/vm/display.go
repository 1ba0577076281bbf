package vm

import "strings"

const (
	// Width is the framebuffer width in pixels.
	Width = 64
	// Height is the framebuffer height in pixels.
	Height = 32
)

// Framebuffer is the monochrome display, indexed by row and then column.
// A true value is a lit pixel.
type Framebuffer [Height][Width]bool

// Pixel returns whether the pixel at column x and row y is lit.
// Coordinates wrap around the screen edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[wrap(y, Height)][wrap(x, Width)]
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	count := 0
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				count++
			}
		}
	}
	return count
}

// Clear resets every pixel to unlit and returns whether any pixel changed.
func (f *Framebuffer) Clear() bool {
	changed := f.Lit() > 0
	*f = Framebuffer{}
	return changed
}

// String renders the framebuffer as text, one line per row, using '#' for
// lit and '.' for unlit pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// wrap returns v modulo size, mapping negative values into the valid range.
func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
