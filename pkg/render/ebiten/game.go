//go:build ebiten

// Package ebiten runs the show in an Ebitengine window. Frames are drawn
// into a persistent offscreen image so that the translucent fade leaves
// trails, and the image is copied to the screen every Draw.
package ebiten

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// Game implements ebiten.Game and entity.Renderer
type Game struct {
	ctx    context.Context
	sim    *engine.Simulation
	logger *logging.Logger

	offscreen     *ebiten.Image
	width, height int
	started       bool
}

// NewGame creates a game driving sim
func NewGame(ctx context.Context, sim *engine.Simulation, logger *logging.Logger) *Game {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	g := &Game{ctx: ctx, sim: sim, logger: logger}
	g.Resize(int(sim.Width), int(sim.Height))
	return g
}

// Update polls input and advances the show by one frame
func (g *Game) Update() error {
	if !g.started {
		// the first Layout may already have changed the window size
		g.sim.Width, g.sim.Height = float64(g.width), float64(g.height)
		g.sim.Start(g.ctx, g)
		g.started = true
	}
	if !g.sim.Running() || g.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, in := range g.inputs() {
		if !g.sim.Apply(in, g) {
			return ebiten.Termination
		}
	}

	g.sim.Tick(g)
	return nil
}

func (g *Game) inputs() []engine.Input {
	var inputs []engine.Input
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		inputs = append(inputs, engine.Input{Kind: engine.InputClick, X: float64(x), Y: float64(y)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		inputs = append(inputs, engine.Input{Kind: engine.InputLaunch})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		inputs = append(inputs, engine.Input{Kind: engine.InputQuit})
	}
	return inputs
}

// Draw copies the persistent frame to the screen
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.offscreen, nil)
}

// Layout follows the window size; a change regenerates the sky.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.logger.Debug(g.ctx, "window resized", "width", outsideWidth, "height", outsideHeight)
		g.sim.Apply(engine.Input{
			Kind: engine.InputResize,
			X:    float64(outsideWidth),
			Y:    float64(outsideHeight),
		}, g)
	}
	return g.width, g.height
}

// Resize replaces the offscreen frame with a black one of the new size.
func (g *Game) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if g.offscreen != nil {
		g.offscreen.Deallocate()
	}
	g.width, g.height = width, height
	g.offscreen = ebiten.NewImage(width, height)
	g.Clear()
}

// Clear implements entity.Renderer
func (g *Game) Clear() {
	g.offscreen.Fill(color.Black)
}

// Fade implements entity.Renderer
func (g *Game) Fade(alpha uint8) {
	vector.DrawFilledRect(g.offscreen, 0, 0, float32(g.width), float32(g.height), color.NRGBA{A: alpha}, false)
}

// RenderStar implements entity.Renderer
func (g *Game) RenderStar(star *entity.Star) {
	vector.DrawFilledCircle(g.offscreen,
		float32(star.Position.X), float32(star.Position.Y),
		float32(star.Size/2), star.Color(), true)
}

// RenderParticle implements entity.Renderer
func (g *Game) RenderParticle(p *entity.Particle) {
	vector.DrawFilledCircle(g.offscreen,
		float32(p.Position.X), float32(p.Position.Y),
		float32(p.Weight()/2), p.Color(), true)
}

// Present implements entity.Renderer. Draw presents the offscreen frame.
func (g *Game) Present() {}

// Run opens the window and blocks until it is closed or the show quits.
func Run(ctx context.Context, sim *engine.Simulation, logger *logging.Logger, title string, fullscreen bool, tps int) error {
	ebiten.SetWindowSize(int(sim.Width), int(sim.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)
	ebiten.SetTPS(tps)

	g := NewGame(ctx, sim, logger)
	defer sim.Stop()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebiten window: %w", err)
	}
	return nil
}
