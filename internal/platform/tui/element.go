package tui

import (
	"errors"
	"image"
	"image/draw"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
)

// Rows reserved below the surface for the status and help lines.
const chromeRows = 2

// Layout is where the surface lands on the terminal.
// Each terminal cell shows one pixel column and two pixel rows, so a
// surface shown at native size is Cols = W and Rows = ceil(H / 2).
type Layout struct {
	Cells   core.Rect // On-screen cells covered by the surface
	PixelsW int       // Displayed width in pixels (== Cells.W)
	PixelsH int       // Displayed height in pixels (Cells.H*2 or one less)
	Scaled  bool      // Whether the surface is resampled for display
	Frame   core.Rect // Border rectangle, zero when borders are off
}

// ComputeLayout centres a surfaceW x surfaceH surface in a screenW x screenH
// terminal. With fit set, a surface larger than the available area is
// scaled down, preserving its aspect ratio; otherwise it is clipped.
func ComputeLayout(surfaceW, surfaceH, screenW, screenH int, fit, border bool) Layout {
	inset := 0
	if border {
		inset = 1
	}
	availW := core.Max(1, screenW-2*inset)
	availH := core.Max(1, screenH-chromeRows-2*inset)

	pxW, pxH := surfaceW, surfaceH
	scaled := false
	if fit && (pxW > availW || pxH > availH*2) {
		scale := min(float64(availW)/float64(surfaceW), float64(availH*2)/float64(surfaceH))
		pxW = core.Max(1, int(float64(surfaceW)*scale))
		pxH = core.Max(1, int(float64(surfaceH)*scale))
		scaled = true
	}

	cols := pxW
	rows := (pxH + 1) / 2
	x := inset + core.Max(0, (availW-cols)/2)
	y := inset + core.Max(0, (availH-rows)/2)

	l := Layout{
		Cells:   core.NewRect(x, y, cols, rows),
		PixelsW: pxW,
		PixelsH: pxH,
		Scaled:  scaled,
	}
	if border {
		l.Frame = core.NewRect(x-1, y-1, cols+2, rows+2)
	}
	return l
}

// Bounding returns the on-screen rectangle in cell units. Height is in
// rows, so an odd pixel height ends half-way through the last row.
func (l Layout) Bounding() core.BoundingRect {
	return core.BoundingRect{
		Left:   float64(l.Cells.X),
		Top:    float64(l.Cells.Y),
		Width:  float64(l.PixelsW),
		Height: float64(l.PixelsH) / 2,
	}
}

// Element is the terminal render target: an RGBA surface plus its current
// placement on screen.
type Element struct {
	surface   *image.RGBA
	layout    Layout
	screenW   int
	screenH   int
	fit       bool
	border    bool
	listeners []driver.ClickListener
}

// NewElement creates an element for a screenW x screenH terminal.
func NewElement(screenW, screenH int, fit, border bool) *Element {
	return &Element{
		surface: image.NewRGBA(image.Rect(0, 0, 0, 0)),
		screenW: screenW,
		screenH: screenH,
		fit:     fit,
		border:  border,
	}
}

// SetSize allocates the surface and lays it out.
func (e *Element) SetSize(width, height int) {
	e.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	e.relayout()
}

// Context returns the surface.
func (e *Element) Context() draw.Image {
	return e.surface
}

// AddClickListener registers fn.
func (e *Element) AddClickListener(fn driver.ClickListener) {
	e.listeners = append(e.listeners, fn)
}

// Image returns the surface as an RGBA image.
func (e *Element) Image() *image.RGBA {
	return e.surface
}

// BoundingClientRect returns the surface's on-screen rectangle in cells.
func (e *Element) BoundingClientRect() core.BoundingRect {
	return e.layout.Bounding()
}

// Layout returns the current placement.
func (e *Element) Layout() Layout {
	return e.layout
}

// Resize updates the terminal size. The surface keeps its pixel size;
// only its placement changes.
func (e *Element) Resize(screenW, screenH int) {
	e.screenW, e.screenH = screenW, screenH
	e.relayout()
}

func (e *Element) relayout() {
	b := e.surface.Bounds()
	if b.Empty() {
		e.layout = Layout{}
		return
	}
	e.layout = ComputeLayout(b.Dx(), b.Dy(), e.screenW, e.screenH, e.fit, e.border)
}

// Click dispatches a click on terminal cell (col, row) with the pointer at
// the cell centre. Like a DOM listener, it only fires for cells covered by
// the surface; hit reports whether it did.
func (e *Element) Click(col, row int) (hit bool, err error) {
	if !e.layout.Cells.Contains(col, row) {
		return false, nil
	}
	ev := core.PointerEventAt(float64(col)+0.5, float64(row)+0.5, e)
	var errs []error
	for _, fn := range e.listeners {
		if err := fn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return true, errors.Join(errs...)
}
