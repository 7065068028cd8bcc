// Package ripple is a small engine where every click spawns a ring that
// grows and fades out.
package ripple

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/engine"
)

// ID is the registry identifier.
const ID = "ripple"

const (
	defaultWidth  = 160
	defaultHeight = 96
	speed         = 0.06   // Pixels per millisecond
	lifetime      = 1200.0 // Milliseconds
	thickness     = 1.5    // Ring half-width in pixels
	maxRings      = 32
)

func init() {
	engine.Register(engine.Module{
		ID:    ID,
		Title: "Ripples",
		New:   func() (engine.Engine, error) { return New(defaultWidth, defaultHeight), nil },
	})
}

// Ring is one expanding circle.
type Ring struct {
	X, Y float64
	Age  float64 // Milliseconds since the click
}

// Radius returns the current ring radius in pixels.
func (r Ring) Radius() float64 {
	return r.Age * speed
}

// Game holds the active rings.
type Game struct {
	width, height int
	rings         []Ring
}

// New creates an empty pond of width x height pixels.
func New(width, height int) *Game {
	return &Game{width: width, height: height}
}

// Width returns the surface width in pixels.
func (g *Game) Width() int { return g.width }

// Height returns the surface height in pixels.
func (g *Game) Height() int { return g.height }

// Rings returns the active rings, oldest first.
func (g *Game) Rings() []Ring {
	return g.rings
}

// Advance ages every ring and drops the expired ones.
func (g *Game) Advance(deltaMillis float64) error {
	if deltaMillis < 0 {
		deltaMillis = 0
	}
	live := g.rings[:0]
	for _, r := range g.rings {
		r.Age += deltaMillis
		if r.Age < lifetime {
			live = append(live, r)
		}
	}
	g.rings = live
	return nil
}

// Render clears the surface and draws each ring, fading with age.
func (g *Game) Render(dst draw.Image) error {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(core.ColorBackground), image.Point{}, draw.Src)

	bounds := dst.Bounds()
	for _, r := range g.rings {
		c := core.Lerp(core.ColorAccent, core.ColorBackground, r.Age/lifetime)
		g.drawRing(dst, bounds, r, c)
	}
	return nil
}

func (g *Game) drawRing(dst draw.Image, bounds image.Rectangle, r Ring, c color.RGBA) {
	radius := r.Radius()
	outer := radius + thickness
	box := image.Rect(
		int(math.Floor(r.X-outer)), int(math.Floor(r.Y-outer)),
		int(math.Ceil(r.X+outer))+1, int(math.Ceil(r.Y+outer))+1,
	).Intersect(bounds)

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-r.X, float64(y)+0.5-r.Y)
			if math.Abs(d-radius) <= thickness {
				dst.Set(x, y, c)
			}
		}
	}
}

// Click starts a ring at (x, y). Points off the surface are accepted; their
// rings may still grow into view. The oldest ring is dropped past maxRings.
func (g *Game) Click(x, y float64) error {
	if len(g.rings) == maxRings {
		g.rings = append(g.rings[:0], g.rings[1:]...)
	}
	g.rings = append(g.rings, Ring{X: x, Y: y})
	return nil
}
