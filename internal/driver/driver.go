// Package driver runs an engine against a host: it sizes the host's surface
// from the engine, forwards clicks in engine space, and drives a
// self-rescheduling advance+render loop.
//
// All Driver methods must be called from the host's single loop goroutine.
// The driver holds no locks.
package driver

import (
	"context"
	"fmt"
	"image/draw"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/engine"
)

// Stats summarises loop activity for status displays.
type Stats struct {
	Frames    uint64  // OnFrame invocations that ran a step
	Clicks    uint64  // Clicks forwarded to the engine
	Failures  uint64  // Failed frames
	LastDelta float64 // Delta passed to the latest Advance, in milliseconds
}

// Driver owns one engine instance and the frame clock.
type Driver struct {
	construct   engine.Constructor
	scheduler   Scheduler
	clock       Clock
	logger      *log.Logger
	policy      FailurePolicy
	maxFailures int

	engine    engine.Engine
	surface   draw.Image
	lastFrame time.Time

	stopped     bool
	err         error
	consecutive int
	stats       Stats
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock injects the frame clock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithLogger sets the logger for lifecycle and failure messages.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithFailurePolicy sets the frame failure policy. maxConsecutive only
// applies to PolicySkip; values below 1 select DefaultMaxConsecutiveFailures.
func WithFailurePolicy(p FailurePolicy, maxConsecutive int) Option {
	return func(d *Driver) {
		d.policy = p
		if maxConsecutive < 1 {
			maxConsecutive = DefaultMaxConsecutiveFailures
		}
		d.maxFailures = maxConsecutive
	}
}

// New creates a driver. The frame clock starts now, before any engine exists,
// so the first delta covers everything between New and the first frame.
func New(construct engine.Constructor, scheduler Scheduler, opts ...Option) *Driver {
	d := &Driver{
		construct:   construct,
		scheduler:   scheduler,
		clock:       SystemClock{},
		logger:      log.New(io.Discard),
		policy:      PolicyHalt,
		maxFailures: DefaultMaxConsecutiveFailures,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.lastFrame = d.clock.Now()
	return d
}

// Boot starts the frame clock, loads the engine module registered as id,
// and initializes the driver against el. A load failure is returned before
// the engine is constructed.
func Boot(ctx context.Context, id string, el Element, scheduler Scheduler, opts ...Option) (*Driver, error) {
	d := New(nil, scheduler, opts...)

	construct, err := engine.Load(ctx, id)
	if err != nil {
		d.logger.Error("engine load failed", "engine", id, "error", err)
		return nil, err
	}
	d.construct = construct

	if err := d.Initialize(el); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize constructs the engine, sizes el to the engine's dimensions,
// registers the click handler and schedules the first frame, in that order.
// On construction failure nothing after the first step happens.
func (d *Driver) Initialize(el Element) error {
	if d.engine != nil {
		return ErrAlreadyInitialized
	}
	if d.construct == nil {
		return fmt.Errorf("%w: no constructor", ErrConstruct)
	}

	var eng engine.Engine
	err := guard("construct", func() error {
		var cErr error
		eng, cErr = d.construct()
		return cErr
	})
	if err == nil && eng == nil {
		err = fmt.Errorf("constructor returned nil engine")
	}
	if err != nil {
		d.logger.Error("engine construction failed", "error", err)
		return fmt.Errorf("%w: %w", ErrConstruct, err)
	}

	w, h := eng.Width(), eng.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: invalid engine size %dx%d", ErrConstruct, w, h)
	}
	d.engine = eng

	el.SetSize(w, h)
	d.surface = el.Context()

	el.AddClickListener(d.OnClick)

	d.scheduler.RequestFrame(d.OnFrame)

	d.logger.Info("engine ready", "width", w, "height", h, "policy", d.policy)
	return nil
}

// OnFrame runs one frame: compute the delta since the previous frame,
// advance, render, and request the next frame. A failed step is handled by
// the failure policy; a halted or stopped loop does nothing.
func (d *Driver) OnFrame() {
	if d.stopped || d.err != nil || d.engine == nil {
		return
	}

	now := d.clock.Now()
	// Negative deltas from a non-monotonic injected clock pass through.
	delta := float64(now.Sub(d.lastFrame)) / float64(time.Millisecond)
	d.lastFrame = now

	d.stats.Frames++
	d.stats.LastDelta = delta

	if err := d.step(delta); err != nil {
		d.stats.Failures++
		d.consecutive++

		if d.policy == PolicyHalt {
			d.halt(err)
			return
		}
		if d.consecutive >= d.maxFailures {
			d.halt(fmt.Errorf("%w (%d): %w", ErrTooManyFailures, d.consecutive, err))
			return
		}
		d.logger.Warn("frame failed, skipping",
			"frame", d.stats.Frames, "consecutive", d.consecutive, "error", err)
	} else {
		d.consecutive = 0
	}

	d.scheduler.RequestFrame(d.OnFrame)
}

func (d *Driver) step(delta float64) error {
	if err := guard("advance", func() error { return d.engine.Advance(delta) }); err != nil {
		return err
	}
	return guard("render", func() error { return d.engine.Render(d.surface) })
}

func (d *Driver) halt(err error) {
	d.err = err
	d.logger.Error("frame loop halted", "frame", d.stats.Frames, "error", err)
}

// OnClick maps the event's device coordinates into engine space through the
// target's bounding rectangle and forwards them with exactly one Click.
// Coordinates are neither clamped nor filtered. Click failures are returned
// and never affect the frame loop.
func (d *Driver) OnClick(ev core.PointerEvent) error {
	if d.engine == nil {
		return ErrNotInitialized
	}
	if ev.Target == nil {
		return ErrNoTarget
	}

	rect := ev.Target.BoundingClientRect()
	x, y := core.ToEngineSpace(ev.ClientX, ev.ClientY, rect, d.engine.Width(), d.engine.Height())
	d.stats.Clicks++

	return guard("click", func() error { return d.engine.Click(x, y) })
}

// Stop makes the next OnFrame return without advancing or rescheduling.
func (d *Driver) Stop() {
	if !d.stopped {
		d.stopped = true
		d.logger.Info("frame loop stopped", "frames", d.stats.Frames)
	}
}

// Stopped reports whether Stop was called.
func (d *Driver) Stopped() bool { return d.stopped }

// Err returns the error that halted the frame loop, or nil while it runs.
func (d *Driver) Err() error { return d.err }

// Running reports whether the loop is still scheduling frames.
func (d *Driver) Running() bool {
	return d.engine != nil && !d.stopped && d.err == nil
}

// Engine returns the owned engine, nil before Initialize.
func (d *Driver) Engine() engine.Engine { return d.engine }

// Surface returns the borrowed drawing surface, nil before Initialize.
func (d *Driver) Surface() draw.Image { return d.surface }

// Stats returns a copy of the loop counters.
func (d *Driver) Stats() Stats { return d.stats }
