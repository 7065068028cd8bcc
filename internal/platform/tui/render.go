package tui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/framedrive/internal/core"
)

// upperHalf shows the top pixel as foreground and the bottom pixel as background.
const upperHalf = '▀'

// Compositor turns a surface into terminal cells. It keeps the resampling
// buffer between frames so scaled presentation does not allocate per frame.
type Compositor struct {
	scaled *image.RGBA
}

// displayImage returns the surface at display resolution.
func (c *Compositor) displayImage(src *image.RGBA, l Layout) *image.RGBA {
	if !l.Scaled {
		return src
	}
	want := image.Rect(0, 0, l.PixelsW, l.PixelsH)
	if c.scaled == nil || c.scaled.Bounds() != want {
		c.scaled = image.NewRGBA(want)
	}
	xdraw.NearestNeighbor.Scale(c.scaled, want, src, src.Bounds(), xdraw.Src, nil)
	return c.scaled
}

// Compose draws the surface into dst at l, two pixel rows per cell, plus the
// border when l has one. Cells past the edge of dst are clipped.
func (c *Compositor) Compose(dst *core.Screen, src *image.RGBA, l Layout) {
	if l.Frame.W > 0 {
		dst.DrawBox(l.Frame, core.ColorGrid)
	}
	if src.Bounds().Empty() {
		return
	}

	img := c.displayImage(src, l)
	for row := range l.Cells.H {
		top := 2 * row
		bottom := top + 1
		for col := range l.Cells.W {
			cell := core.Cell{Rune: upperHalf, Fg: img.RGBAAt(col, top)}
			if bottom < l.PixelsH {
				cell.Bg = img.RGBAAt(col, bottom)
			}
			dst.SetCell(l.Cells.X+col, l.Cells.Y+row, cell)
		}
	}
}

// styleFor builds the lipgloss style for a cell's colours.
func styleFor(fg, bg color.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg != nil {
		style = style.Foreground(lipgloss.Color(core.Hex(fg)))
	}
	if bg != nil {
		style = style.Background(lipgloss.Color(core.Hex(bg)))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with the same style
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !cell.SameStyle(start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == nil && start.Bg == nil {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
