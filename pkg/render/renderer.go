// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// NullRenderer is a headless implementation of entity.Renderer that only
// reports what it was asked to draw.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer logging to logger.
// A nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Fade implements entity.Renderer.
func (d *NullRenderer) Fade(alpha uint8) {
	ctx := context.Background()
	d.logger.Debug(ctx, "Fade called", "alpha", alpha)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called", "frame", d.frames)
}

// RenderStar implements entity.Renderer.
func (d *NullRenderer) RenderStar(star *entity.Star) {
	ctx := context.Background()
	if star == nil {
		d.logger.Debug(ctx, "RenderStar called with nil star")
		return
	}
	d.logger.Debug(ctx, "RenderStar called",
		"x", star.Position.X,
		"y", star.Position.Y,
		"brightness", star.Brightness(),
	)
}

// RenderParticle implements entity.Renderer.
func (d *NullRenderer) RenderParticle(particle *entity.Particle) {
	ctx := context.Background()
	if particle == nil {
		d.logger.Debug(ctx, "RenderParticle called with nil particle")
		return
	}
	d.logger.Debug(ctx, "RenderParticle called",
		"x", particle.Position.X,
		"y", particle.Position.Y,
		"hue", particle.Hue,
		"launch", particle.Launch,
		"alpha", particle.Alpha(),
	)
}
