// pkg/entity/entity.go
package entity

// ID is a unique identifier for a firework within one simulation run
type ID uint64

// Renderer draws simulation entities onto a frame buffer.
// Entities call back into it from their Render methods; the buffer is never
// cleared between frames, only faded.
type Renderer interface {
	// Clear paints the whole frame opaque black.
	Clear()
	// Fade paints a black rectangle of the given alpha over the whole frame.
	Fade(alpha uint8)
	RenderStar(star *Star)
	RenderParticle(particle *Particle)
	// Present is called once at the end of every frame.
	Present()
}

// Renderable is implemented by everything the simulation draws
type Renderable interface {
	Render(r Renderer)
}
