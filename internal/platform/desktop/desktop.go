// Package desktop hosts the frame driver in an ebiten window. The window
// build needs the ebiten build tag; without it Run reports ErrUnavailable.
//
// The host reuses the headless scheduler and element: ebiten's Update steps
// the scheduler once per tick, and Layout places the element's rectangle
// where Draw blits the surface.
package desktop

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("desktop host requires building with the 'ebiten' tag")

// Options configures the window host.
type Options struct {
	Scale         int    // Initial window pixels per surface pixel
	ScreenshotDir string // Where ctrl+s writes PNGs
	Logger        *log.Logger
	DriverOptions []driver.Option
}

// Letterbox fits a surfaceW x surfaceH surface into an outW x outH window,
// preserving aspect ratio and centring it. The result is the on-screen
// rectangle click coordinates are mapped through.
func Letterbox(surfaceW, surfaceH, outW, outH int) core.BoundingRect {
	if surfaceW <= 0 || surfaceH <= 0 || outW <= 0 || outH <= 0 {
		return core.BoundingRect{}
	}
	scale := min(float64(outW)/float64(surfaceW), float64(outH)/float64(surfaceH))
	w := float64(surfaceW) * scale
	h := float64(surfaceH) * scale
	return core.BoundingRect{
		Left:   (float64(outW) - w) / 2,
		Top:    (float64(outH) - h) / 2,
		Width:  w,
		Height: h,
	}
}

// inside reports whether (x, y) lies on the rectangle.
func inside(r core.BoundingRect, x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}
