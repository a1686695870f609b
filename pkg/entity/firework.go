// pkg/entity/firework.go
package entity

import (
	"math/rand/v2"

	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// DefaultSparkCount is the number of sparks in one burst.
const DefaultSparkCount = 100

// apexEpsilon absorbs float64 drift in the accumulated rocket velocity,
// e.g. vy=-10 under 0.2 per frame lands on -2e-15 after 50 frames.
const apexEpsilon = 1e-9

// State is the lifecycle phase of a firework
type State int

const (
	// Ascending: the rocket is rising.
	Ascending State = iota
	// Exploded: the rocket has burst; sparks may still be alive.
	Exploded
)

func (s State) String() string {
	switch s {
	case Ascending:
		return "ascending"
	case Exploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// Burst configures what a firework does at its apex
type Burst struct {
	Sparks int
	Decay  int
}

// DefaultBurst returns the stock burst parameters.
func DefaultBurst() Burst {
	return Burst{Sparks: DefaultSparkCount, Decay: DefaultDecay}
}

// Firework is a rocket that rises until its vertical velocity turns
// non-negative (within apexEpsilon), then bursts into sparks.
type Firework struct {
	ID       ID
	Hue      float64
	Rocket   Particle
	Exploded bool
	Sparks   []Particle
	// Apex is the rocket position at the moment of explosion.
	Apex  physics.Vector2D
	burst Burst
}

// NewFirework creates a rising firework launched from origin.
func NewFirework(id ID, hue float64, origin physics.Vector2D, burst Burst, rng *rand.Rand) *Firework {
	return &Firework{
		ID:     id,
		Hue:    hue,
		Rocket: NewLaunchParticle(origin, hue, rng),
		burst:  burst,
	}
}

// State returns the current lifecycle phase.
func (f *Firework) State() State {
	if f.Exploded {
		return Exploded
	}
	return Ascending
}

// Update advances the firework by one frame. It reports whether the rocket
// exploded during this frame.
func (f *Firework) Update(gravity physics.Vector2D, rng *rand.Rand) bool {
	justExploded := false
	if !f.Exploded {
		f.Rocket.ApplyForce(gravity)
		f.Rocket.Step()
		if f.Rocket.Velocity.Y >= -apexEpsilon {
			f.explode(rng)
			justExploded = true
		}
	}

	// Sparks born this frame are stepped this frame as well.
	alive := f.Sparks[:0]
	for i := range f.Sparks {
		spark := f.Sparks[i]
		spark.ApplyForce(gravity)
		spark.Step()
		if !spark.IsDone() {
			alive = append(alive, spark)
		}
	}
	clear(f.Sparks[len(alive):])
	f.Sparks = alive

	return justExploded
}

func (f *Firework) explode(rng *rand.Rand) {
	f.Exploded = true
	f.Apex = f.Rocket.Position
	f.Sparks = make([]Particle, 0, f.burst.Sparks)
	for i := 0; i < f.burst.Sparks; i++ {
		f.Sparks = append(f.Sparks, NewSpark(f.Apex, f.Hue, f.burst.Decay, rng))
	}
}

// Done reports whether the firework has exploded and every spark is gone.
func (f *Firework) Done() bool {
	return f.Exploded && len(f.Sparks) == 0
}

// Render implements Renderable
func (f *Firework) Render(r Renderer) {
	if !f.Exploded {
		f.Rocket.Render(r)
	}
	for i := range f.Sparks {
		f.Sparks[i].Render(r)
	}
}
