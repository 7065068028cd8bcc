// Package engine defines the contract between the frame driver and an opaque
// simulation engine, and a registry through which engines are discovered
// and loaded.
package engine

import "image/draw"

// Engine is the only boundary the driver depends on.
// Engines own their simulation; the driver only schedules and forwards.
type Engine interface {
	// Width returns the intrinsic surface width in pixels.
	// Constant and positive for the lifetime of the instance.
	Width() int

	// Height returns the intrinsic surface height in pixels.
	Height() int

	// Advance moves the simulation forward by deltaMillis milliseconds.
	// A non-nil error is a per-frame fault.
	Advance(deltaMillis float64) error

	// Render paints the current state into dst. The driver guarantees dst
	// bounds are Width() x Height(); it makes no promise that dst was cleared.
	Render(dst draw.Image) error

	// Click delivers a point in engine space, [0,Width] x [0,Height].
	// Out-of-range points are possible and must be tolerated.
	Click(x, y float64) error
}

// Constructor creates a ready-to-use engine instance.
type Constructor func() (Engine, error)
