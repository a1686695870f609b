package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

func TestNewCanvas_StartsBlack(t *testing.T) {
	c := NewCanvas(8, 4)
	if c.Bounds().Dx() != 8 || c.Bounds().Dy() != 4 {
		t.Fatalf("bounds = %v", c.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := c.Image().RGBAAt(x, y); got != (color.RGBA{A: 255}) {
				t.Fatalf("pixel (%d,%d) = %v, expected opaque black", x, y, got)
			}
		}
	}
}

func TestCanvas_ResizeClampsToOnePixel(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Resize(0, -5)
	if c.Bounds().Dx() != 1 || c.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v, expected 1x1", c.Bounds())
	}
}

func TestCanvas_FadeDarkensTowardsBlack(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Image().SetRGBA(0, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	prev := c.Image().RGBAAt(0, 0).R
	for i := 0; i < 10; i++ {
		c.Fade(25)
		got := c.Image().RGBAAt(0, 0)
		if got.R >= prev {
			t.Fatalf("fade %d did not darken: %d -> %d", i, prev, got.R)
		}
		if got.A != 255 {
			t.Fatalf("fade must keep the canvas opaque, alpha %d", got.A)
		}
		prev = got.R
	}

	c.Fade(0)
	if c.Image().RGBAAt(0, 0).R != prev {
		t.Error("fade with alpha 0 must not change the canvas")
	}
}

func TestCanvas_RenderParticle(t *testing.T) {
	c := NewCanvas(20, 20)
	rocket := entity.Particle{
		Position: physics.Vector2D{X: 10, Y: 10},
		Hue:      0,
		Lifespan: entity.MaxLifespan,
		Launch:   true,
	}
	c.RenderParticle(&rocket)

	centre := c.Image().RGBAAt(10, 10)
	if centre.R < 200 || centre.G > 40 || centre.B > 40 {
		t.Errorf("centre pixel = %v, expected red", centre)
	}
	if corner := c.Image().RGBAAt(0, 0); corner != (color.RGBA{A: 255}) {
		t.Errorf("corner pixel = %v, expected untouched", corner)
	}
}

func TestCanvas_RenderStarUsesBrightness(t *testing.T) {
	c := NewCanvas(10, 10)
	star := entity.Star{Position: physics.Vector2D{X: 5, Y: 5}, Size: 2, Phase: 3.14159 / 2}
	c.RenderStar(&star)

	got := c.Image().RGBAAt(5, 5)
	if got.R == 0 || got.R != got.G || got.G != got.B {
		t.Errorf("star pixel = %v, expected grey-white", got)
	}
}

func TestCanvas_DiscsOffCanvasAreClipped(t *testing.T) {
	c := NewCanvas(10, 10)
	positions := []physics.Vector2D{
		{X: -1, Y: 5},
		{X: 10, Y: 10},
		{X: -100, Y: -100},
		{X: 5, Y: 1e6},
	}
	for _, pos := range positions {
		spark := entity.Particle{Position: pos, Lifespan: 100}
		c.RenderParticle(&spark)
	}

	spark := entity.Particle{Position: physics.Vector2D{X: 0, Y: 5}, Lifespan: 255}
	c.RenderParticle(&spark)
	if c.Image().RGBAAt(0, 5).R == 0 {
		t.Error("edge disc should be partly drawn")
	}
}

func TestCanvas_ScaleMapsSimulationUnits(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Scale = 0.5
	rocket := entity.Particle{Position: physics.Vector2D{X: 10, Y: 10}, Lifespan: 255, Launch: true}
	c.RenderParticle(&rocket)

	if c.Image().RGBAAt(5, 5).R == 0 {
		t.Error("scaled rocket should be drawn at (5,5)")
	}
}

func TestCanvas_NRGBASharesPixels(t *testing.T) {
	c := NewCanvas(3, 3)
	view := c.NRGBA()
	c.Image().SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	if got := view.NRGBAAt(1, 1); got != (color.NRGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("view pixel = %v", got)
	}
}

func TestCanvas_Snapshots(t *testing.T) {
	c := NewCanvas(4, 3)
	c.Image().SetRGBA(2, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if r, _, _, _ := img.At(2, 1).RGBA(); r != 0xffff {
		t.Errorf("decoded red = %#x", r)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() failed: %v", err)
	}
	if err := c.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCanvas_MinDiameterKeepsTinyDiscsVisible(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Scale = 0.1
	star := entity.Star{Position: physics.Vector2D{X: 55, Y: 55}, Size: 1, Phase: 3.14159 / 2}

	c.RenderStar(&star)
	faint := c.Image().RGBAAt(5, 5).R

	c.Clear()
	c.MinDiameter = 1
	c.RenderStar(&star)
	if got := c.Image().RGBAAt(5, 5).R; got <= faint {
		t.Errorf("min diameter pixel %d should be brighter than %d", got, faint)
	}
}
