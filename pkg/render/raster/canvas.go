// Package raster draws the show into an in-memory RGBA image. It backs the
// engo window texture, the terminal half-block output and PNG snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// bezierCircle is the control point distance for a cubic quarter circle.
const bezierCircle = 0.5522847498

var black = color.NRGBA{A: 255}

// Canvas is a software implementation of entity.Renderer.
// The image is always fully opaque.
type Canvas struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	mask *image.Alpha

	// Scale converts simulation units to pixels.
	Scale float64
	// MinDiameter is the smallest disc drawn, in pixels.
	MinDiameter float64
}

// NewCanvas creates a black canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		z:     vector.NewRasterizer(0, 0),
		Scale: 1,
	}
	c.Resize(width, height)
	return c
}

// Resize replaces the backing image with a black one of the new size.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.Clear()
}

// Bounds returns the pixel bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the backing image. It is reused between frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// NRGBA views the canvas as non-premultiplied pixels without copying.
// Valid because every pixel is opaque.
func (c *Canvas) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: c.img.Pix, Stride: c.img.Stride, Rect: c.img.Rect}
}

// Clear implements entity.Renderer
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)
}

// Fade implements entity.Renderer by blending translucent black over the
// whole canvas.
func (c *Canvas) Fade(alpha uint8) {
	if alpha == 0 {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA{A: alpha}), image.Point{}, draw.Over)
}

// RenderStar implements entity.Renderer
func (c *Canvas) RenderStar(star *entity.Star) {
	c.disc(star.Position, star.Size, star.Color())
}

// RenderParticle implements entity.Renderer
func (c *Canvas) RenderParticle(p *entity.Particle) {
	c.disc(p.Position, p.Weight(), p.Color())
}

// Present implements entity.Renderer. The canvas is always current.
func (c *Canvas) Present() {}

// disc fills an anti-aliased circle of the given diameter centred on pos.
func (c *Canvas) disc(pos physics.Vector2D, diameter float64, col color.NRGBA) {
	if col.A == 0 || diameter <= 0 {
		return
	}
	cx, cy := pos.X*c.Scale, pos.Y*c.Scale
	r := math.Max(diameter*c.Scale, c.MinDiameter) / 2

	box := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	)
	if box.Empty() || !box.Overlaps(c.img.Rect) {
		return
	}

	w, h := box.Dx(), box.Dy()
	c.z.Reset(w, h)
	c.z.DrawOp = draw.Src
	lx, ly := float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y))
	circle(c.z, lx, ly, float32(r))

	if c.mask == nil || c.mask.Rect.Dx() < w || c.mask.Rect.Dy() < h {
		c.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	c.z.Draw(c.mask, image.Rect(0, 0, w, h), image.Opaque, image.Point{})

	draw.DrawMask(c.img, box, image.NewUniform(col), image.Point{}, c.mask, image.Point{}, draw.Over)
}

func circle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * bezierCircle
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// WritePNG encodes the current frame as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	return nil
}
