// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// ShowScene represents the fireworks show as an Engo scene
type ShowScene struct {
	world *ecs.World
	ctx   context.Context

	sim    *engine.Simulation
	title  string
	logger *logging.Logger

	// Rendering components
	renderer *FrameRenderer
	input    *InputSystem
	hud      *HUDSystem
}

// NewShowScene creates a new scene driving sim. The title is shown in the
// header band.
func NewShowScene(ctx context.Context, sim *engine.Simulation, title string, logger *logging.Logger) *ShowScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ShowScene{
		ctx:    ctx,
		sim:    sim,
		title:  title,
		logger: logger,
		world:  &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *ShowScene) Type() string {
	return "ShowScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *ShowScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *ShowScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.ctx, "unexpected updater, using a private world")
		world = &ecs.World{}
	}
	scene.world = world

	common.SetBackground(color.Black)
	scene.world.AddSystem(&common.RenderSystem{})

	scene.renderer = NewFrameRenderer(int(scene.sim.Width), int(scene.sim.Height))
	scene.renderer.AddTo(scene.world)

	SetupInputBindings()
	scene.input = NewInputSystem(scene.sim, scene.renderer)
	scene.world.AddSystem(scene.input)
	scene.hud = NewHUDSystem(scene.title, scene.sim)
	scene.renderer.SetOverlay(scene.hud.Draw)
	scene.world.AddSystem(scene.hud)
	scene.world.AddSystem(&showSystem{sim: scene.sim, renderer: scene.renderer})

	engo.Mailbox.Listen("WindowResizeMessage", scene.handleResize)

	scene.sim.Start(scene.ctx, scene.renderer)
}

// handleResize queues the new window size for the next frame
func (scene *ShowScene) handleResize(msg engo.Message) {
	resize, ok := msg.(engo.WindowResizeMessage)
	if !ok {
		return
	}
	scene.logger.Debug(scene.ctx, "window resized", "width", resize.NewWidth, "height", resize.NewHeight)
	scene.input.Queue(engine.Input{
		Kind: engine.InputResize,
		X:    float64(resize.NewWidth),
		Y:    float64(resize.NewHeight),
	})
}

// Exit is called when the window is closing (required by Engo)
func (scene *ShowScene) Exit() {
	scene.sim.Stop()
}

// showSystem advances the simulation once per engine frame
type showSystem struct {
	sim      *engine.Simulation
	renderer *FrameRenderer
}

// Priority runs after input handling and before rendering.
func (s *showSystem) Priority() int {
	return 5
}

func (s *showSystem) Remove(ecs.BasicEntity) {}

func (s *showSystem) Update(dt float32) {
	s.sim.Tick(s.renderer)
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, sim *engine.Simulation, logger *logging.Logger, title string, fullscreen bool) {
	opts := engo.RunOptions{
		Title:         title,
		Width:         int(sim.Width),
		Height:        int(sim.Height),
		Fullscreen:    fullscreen,
		VSync:         true,
		ScaleOnResize: false,
	}
	engo.Run(opts, NewShowScene(ctx, sim, title, logger))
}
