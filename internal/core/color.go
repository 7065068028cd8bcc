package core

import (
	"fmt"
	"image/color"
)

// Palette colors shared by the bundled engines and the hosts.
var (
	ColorBackground = color.RGBA{R: 0x10, G: 0x12, B: 0x1a, A: 0xff}
	ColorGrid       = color.RGBA{R: 0x22, G: 0x26, B: 0x33, A: 0xff}
	ColorAlive      = color.RGBA{R: 0x7d, G: 0xd3, B: 0xfc, A: 0xff}
	ColorAccent     = color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff}
	ColorText       = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

// Hex formats a color as "#rrggbb", the form lipgloss accepts.
// Alpha is dropped.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Lerp blends a towards b by t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
