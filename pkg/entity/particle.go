// pkg/entity/particle.go
package entity

import (
	"image/color"
	"math/rand/v2"

	"github.com/opd-ai/go-fireworks/pkg/physics"
)

const (
	// MaxLifespan is the lifespan every particle starts with.
	MaxLifespan = 255
	// DefaultDecay is the lifespan a spark loses per step.
	DefaultDecay = 4

	// LaunchWeight and SparkWeight are the rendered point diameters.
	LaunchWeight = 4.0
	SparkWeight  = 2.0

	launchSpeedMin = -12.0
	launchSpeedMax = -8.0
	sparkSpeedMin  = 2.0
	sparkSpeedMax  = 10.0
)

// Particle is a point mass. A launch particle is the rising rocket of a
// firework; every other particle is a spark that fades as it ages.
type Particle struct {
	Position     physics.Vector2D
	Velocity     physics.Vector2D
	Acceleration physics.Vector2D
	Hue          float64
	Lifespan     int
	Decay        int
	Launch       bool
}

// NewLaunchParticle creates a rocket at pos moving straight up.
func NewLaunchParticle(pos physics.Vector2D, hue float64, rng *rand.Rand) Particle {
	return Particle{
		Position: pos,
		Velocity: physics.Vector2D{X: 0, Y: physics.RandomRange(rng, launchSpeedMin, launchSpeedMax)},
		Hue:      hue,
		Lifespan: MaxLifespan,
		Launch:   true,
	}
}

// NewSpark creates a spark at pos flying in a random direction.
func NewSpark(pos physics.Vector2D, hue float64, decay int, rng *rand.Rand) Particle {
	dir := physics.Random2D(rng)
	return Particle{
		Position: pos,
		Velocity: dir.Scale(physics.RandomRange(rng, sparkSpeedMin, sparkSpeedMax)),
		Hue:      hue,
		Lifespan: MaxLifespan,
		Decay:    decay,
	}
}

// ApplyForce accumulates a force into the acceleration for the next step.
func (p *Particle) ApplyForce(force physics.Vector2D) {
	p.Acceleration = p.Acceleration.Add(force)
}

// Step integrates one frame. Must be called exactly once per frame.
func (p *Particle) Step() {
	if !p.Launch {
		p.Lifespan -= p.Decay
	}
	p.Velocity = p.Velocity.Add(p.Acceleration)
	p.Position = p.Position.Add(p.Velocity)
	p.Acceleration = physics.Vector2D{}
}

// IsDone reports whether the particle has burnt out.
func (p *Particle) IsDone() bool {
	return p.Lifespan < 0
}

// Alpha is opaque for rockets and follows the remaining lifespan for sparks.
func (p *Particle) Alpha() uint8 {
	if p.Launch {
		return 255
	}
	return ClampAlpha(p.Lifespan)
}

// Weight returns the rendered point diameter.
func (p *Particle) Weight() float64 {
	if p.Launch {
		return LaunchWeight
	}
	return SparkWeight
}

// Color returns the draw colour including alpha.
func (p *Particle) Color() color.NRGBA {
	return HSBA(p.Hue, p.Alpha())
}

// Render implements Renderable
func (p *Particle) Render(r Renderer) {
	r.RenderParticle(p)
}
