// pkg/entity/star.go
package entity

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-fireworks/pkg/physics"
)

const (
	// SkyFraction is the share of the surface height stars are placed in.
	SkyFraction = 0.7

	starSizeMin  = 0.1
	starSizeMax  = 2.0
	twinkleMin   = 0.02
	twinkleMax   = 0.05
	brightnessLo = 100.0
	brightnessHi = 255.0
)

// Star is a twinkling background point
type Star struct {
	Position     physics.Vector2D
	Size         float64
	TwinkleSpeed float64
	Phase        float64
}

// SkyBounds returns the region stars are placed in for a surface size.
func SkyBounds(width, height float64) physics.Rect {
	return physics.NewRect(width, height*SkyFraction)
}

// NewStar places a star at a random point of sky.
func NewStar(sky physics.Rect, rng *rand.Rand) Star {
	pos := sky.RandomPoint(rng)
	return Star{
		Position:     pos,
		Size:         physics.RandomRange(rng, starSizeMin, starSizeMax),
		TwinkleSpeed: physics.RandomRange(rng, twinkleMin, twinkleMax),
		Phase:        rng.Float64() * 2 * math.Pi,
	}
}

// Twinkle advances the phase by one frame and returns the new brightness.
func (s *Star) Twinkle() float64 {
	s.Phase += s.TwinkleSpeed
	return s.Brightness()
}

// Brightness maps the current phase into [100, 255].
func (s *Star) Brightness() float64 {
	return physics.Map(math.Sin(s.Phase), -1, 1, brightnessLo, brightnessHi)
}

// Color is white with the brightness as alpha.
func (s *Star) Color() color.NRGBA {
	return color.NRGBA{R: 255, G: 255, B: 255, A: ClampAlpha(int(s.Brightness()))}
}

// Render implements Renderable
func (s *Star) Render(r Renderer) {
	r.RenderStar(s)
}
