package colormap

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// String returns the color in CSS functional notation, e.g. "rgb(245, 245, 245)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements image/color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// TextColor picks black or white for text drawn on top of c.
func TextColor(c RGB) string {
	// Standard luminance formula: 0.299R + 0.587G + 0.114B
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum < 128 {
		return "white"
	}
	return "black"
}
