// Package core provides fundamental types shared by the driver, the hosts
// and the engines. It has no dependency on any host toolkit (Bubble Tea,
// ebiten) so the frame driver stays testable in isolation.
package core

// Rect is an integer rectangle in cells or pixels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Bounding converts the rectangle to an on-screen bounding rectangle.
func (r Rect) Bounding() BoundingRect {
	return BoundingRect{
		Left:   float64(r.X),
		Top:    float64(r.Y),
		Width:  float64(r.W),
		Height: float64(r.H),
	}
}

// BoundingRect is the on-screen placement of a surface in device units.
// Its size may differ from the surface's pixel size when the host scales
// the surface for display.
type BoundingRect struct {
	Left, Top     float64
	Width, Height float64
}

// ToEngineSpace maps a device-space point onto a surface of engineW x engineH
// pixels displayed at rect. Points outside rect map outside
// [0, engineW] x [0, engineH]; nothing is clamped.
func ToEngineSpace(clientX, clientY float64, rect BoundingRect, engineW, engineH int) (float64, float64) {
	relX := (clientX - rect.Left) / rect.Width
	relY := (clientY - rect.Top) / rect.Height
	return relX * float64(engineW), relY * float64(engineH)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
