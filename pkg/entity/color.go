package entity

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HueRange is the exclusive upper bound of a firework hue. Hues are
// degrees on the colour wheel, so magenta and pink above 255° never occur.
const HueRange = 255.0

// HSBA converts a hue in degrees at full saturation and brightness, plus an
// alpha, into a non-premultiplied colour.
func HSBA(hue float64, alpha uint8) color.NRGBA {
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// ClampAlpha clamps an integer to the [0, 255] alpha range.
func ClampAlpha(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
