// pkg/render/raster/text.go
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LineHeight is the pixel height of one line of DrawText output.
const LineHeight = 13

// DrawText writes text in a fixed 7x13 face with its top-left corner at
// (x, y) in pixels. Text is not scaled.
func (c *Canvas) DrawText(x, y int, text string, col color.Color) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

// TextWidth returns the pixel width DrawText needs for text.
func TextWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
