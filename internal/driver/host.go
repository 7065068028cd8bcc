package driver

import (
	"image/draw"
	"time"

	"github.com/vovakirdan/framedrive/internal/core"
)

// Scheduler is the host's cooperative frame-callback primitive.
// RequestFrame queues fn to run once, on the host's loop goroutine, at the
// host's next frame opportunity. It must not call fn synchronously.
type Scheduler interface {
	RequestFrame(fn func())
}

// Clock supplies wall-clock time for delta computation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ClickListener handles a pointer click. A returned error goes to the host's
// event-dispatch error channel (usually its logger).
type ClickListener func(ev core.PointerEvent) error

// Element is the host-owned render target. The driver sizes it once,
// borrows its drawing context and listens for clicks on it.
type Element interface {
	core.BoundingRecter

	// SetSize sets the pixel dimensions of the drawing surface.
	SetSize(width, height int)

	// Context returns the drawing surface, valid after SetSize.
	Context() draw.Image

	// AddClickListener registers fn for clicks on the element.
	AddClickListener(fn ClickListener)
}
