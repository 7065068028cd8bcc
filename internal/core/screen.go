package core

import (
	"image/color"
	"strings"
)

// Cell is one terminal character with optional foreground and background.
// A nil color means the terminal default.
type Cell struct {
	Rune rune
	Fg   color.Color
	Bg   color.Color
}

// SameStyle reports whether two cells can be rendered in the same styled run.
func (c Cell) SameStyle(other Cell) bool {
	return sameColor(c.Fg, other.Fg) && sameColor(c.Bg, other.Bg)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

var blankCell = Cell{Rune: ' '}

// Screen is a 2D cell buffer the terminal host composes a frame into.
// It decouples presentation from the terminal, so layout and colour
// grouping can be tested without Bubble Tea.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded; the host
// recomposes every frame.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with unstyled spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// SetCell places a cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// Get returns the rune at the given position.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// DrawText writes a string horizontally starting at (x, y) in color fg.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg color.Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Fg: fg})
		i++
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, fg color.Color) {
	set := func(x, y int, ch rune) { s.SetCell(x, y, Cell{Rune: ch, Fg: fg}) }

	// Corners
	set(r.X, r.Y, '┌')
	set(r.Right()-1, r.Y, '┐')
	set(r.X, r.Bottom()-1, '└')
	set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		set(x, r.Y, '─')
		set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		set(r.X, y, '│')
		set(r.Right()-1, y, '│')
	}
}

// String converts the screen buffer to plain text, dropping colours.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x, c := range s.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}
