package headless

import (
	"errors"
	"image"
	"image/draw"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
)

// Element is an in-memory render target with a configurable on-screen rectangle.
type Element struct {
	surface   *image.RGBA
	rect      core.BoundingRect
	rectSet   bool
	listeners []driver.ClickListener
	sizeCalls int
}

// NewElement creates an element. Until SetRect is called the bounding
// rectangle tracks the surface size at the origin.
func NewElement() *Element {
	return &Element{surface: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

// SetSize allocates a width x height surface.
func (e *Element) SetSize(width, height int) {
	e.sizeCalls++
	e.surface = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Context returns the surface.
func (e *Element) Context() draw.Image {
	return e.surface
}

// Image returns the surface as an RGBA image.
func (e *Element) Image() *image.RGBA {
	return e.surface
}

// SizeCalls returns how many times SetSize was called.
func (e *Element) SizeCalls() int {
	return e.sizeCalls
}

// AddClickListener registers fn.
func (e *Element) AddClickListener(fn driver.ClickListener) {
	e.listeners = append(e.listeners, fn)
}

// Listeners returns the number of registered click listeners.
func (e *Element) Listeners() int {
	return len(e.listeners)
}

// SetRect places the element on a virtual screen.
func (e *Element) SetRect(rect core.BoundingRect) {
	e.rect = rect
	e.rectSet = true
}

// BoundingClientRect returns the element's on-screen rectangle.
func (e *Element) BoundingClientRect() core.BoundingRect {
	if e.rectSet {
		return e.rect
	}
	b := e.surface.Bounds()
	return core.BoundingRect{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Click dispatches a click at device coordinates (x, y) to every listener
// and joins their errors.
func (e *Element) Click(x, y float64) error {
	ev := core.PointerEventAt(x, y, e)
	var errs []error
	for _, fn := range e.listeners {
		if err := fn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
