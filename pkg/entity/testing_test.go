package entity

import "math/rand/v2"

// recordingRenderer counts draw calls for assertions.
type recordingRenderer struct {
	clears    int
	fades     []uint8
	stars     []*Star
	particles []Particle
	presents  int
}

func (r *recordingRenderer) Clear()                     { r.clears++ }
func (r *recordingRenderer) Fade(alpha uint8)           { r.fades = append(r.fades, alpha) }
func (r *recordingRenderer) RenderStar(s *Star)         { r.stars = append(r.stars, s) }
func (r *recordingRenderer) RenderParticle(p *Particle) { r.particles = append(r.particles, *p) }
func (r *recordingRenderer) Present()                   { r.presents++ }

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(2024, 11))
}
