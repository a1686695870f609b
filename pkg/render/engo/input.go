// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-fireworks/pkg/engine"
)

const (
	buttonQuit   = "quit"
	buttonLaunch = "launch"
)

// pointerState is the subset of engo input the show reacts to
type pointerState struct {
	LeftDown bool
	X, Y     float32
	Quit     bool
	Launch   bool
}

// InputSystem turns window input into engine inputs and feeds them to the
// simulation before each frame
type InputSystem struct {
	sim      *engine.Simulation
	renderer *FrameRenderer
	poll     func() pointerState

	wasDown bool
	pending []engine.Input
	quit    func()
}

// NewInputSystem creates a new input system
func NewInputSystem(sim *engine.Simulation, renderer *FrameRenderer) *InputSystem {
	return &InputSystem{
		sim:      sim,
		renderer: renderer,
		poll:     pollEngo,
		quit:     engo.Exit,
	}
}

// Priority runs input handling before the show is advanced.
func (is *InputSystem) Priority() int {
	return 10
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Queue adds an input produced outside the poll, such as a window resize.
func (is *InputSystem) Queue(in engine.Input) {
	is.pending = append(is.pending, in)
}

// Update applies queued and polled inputs
func (is *InputSystem) Update(dt float32) {
	inputs := is.collect(is.poll())
	for _, in := range inputs {
		if !is.sim.Apply(in, is.renderer) {
			is.quit()
			return
		}
	}
}

// collect drains the queue and appends this frame's pointer and key input.
// A click is reported on the frame the left button goes down.
func (is *InputSystem) collect(state pointerState) []engine.Input {
	inputs := is.pending
	is.pending = nil

	if state.LeftDown && !is.wasDown {
		inputs = append(inputs, engine.Input{Kind: engine.InputClick, X: float64(state.X), Y: float64(state.Y)})
	}
	is.wasDown = state.LeftDown

	if state.Launch {
		inputs = append(inputs, engine.Input{Kind: engine.InputLaunch})
	}
	if state.Quit {
		inputs = append(inputs, engine.Input{Kind: engine.InputQuit})
	}
	return inputs
}

func pollEngo() pointerState {
	return pointerState{
		LeftDown: engo.Input.Mouse.Action == engo.Press && engo.Input.Mouse.Button == engo.MouseButtonLeft,
		X:        engo.Input.Mouse.X,
		Y:        engo.Input.Mouse.Y,
		Quit:     engo.Input.Button(buttonQuit).JustPressed(),
		Launch:   engo.Input.Button(buttonLaunch).JustPressed(),
	}
}

// SetupInputBindings sets up the key bindings for the show
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)
	engo.Input.RegisterButton(buttonLaunch, engo.KeySpace)
	engo.Input.RegisterButton(buttonHUD, engo.KeyH)
}
