// pkg/render/terminal_test.go
package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(cols, rows)
	return screen
}

func testSimulationConfig() config.SimulationConfig {
	cfg := config.DefaultConfig().Simulation
	cfg.Seed = 1
	cfg.StarCount = 20
	return cfg
}

func TestTerminalRenderer_SizeIsHalfBlockCanvas(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	defer screen.Fini()

	r := NewTerminalRenderer(screen, 0)
	w, h := r.Size()
	if w != 40 || h != 24 {
		t.Errorf("Size() = %vx%v, expected 40x24", w, h)
	}
}

func TestTerminalRenderer_SizeInVirtualUnits(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	defer screen.Fini()

	// 24 pixel rows showing 48 units
	r := NewTerminalRenderer(screen, 48)
	if r.Scale != 0.5 {
		t.Errorf("Scale = %v, expected 0.5", r.Scale)
	}
	if r.MinDiameter != 1 {
		t.Errorf("MinDiameter = %v, expected 1", r.MinDiameter)
	}
	w, h := r.Size()
	if w != 80 || h != 48 {
		t.Errorf("Size() = %vx%v, expected 80x48", w, h)
	}
}

func TestTerminalRenderer_PresentPaintsCells(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	defer screen.Fini()

	r := NewTerminalRenderer(screen, 0)
	r.Clear()
	rocket := entity.Particle{
		Position: physics.Vector2D{X: 10.5, Y: 8.5},
		Hue:      0,
		Lifespan: entity.MaxLifespan,
		Launch:   true,
	}
	r.RenderParticle(&rocket)
	r.Present()

	mainc, _, style, _ := screen.GetContent(10, 4)
	if mainc != halfBlock {
		t.Fatalf("cell rune = %q, expected half block", mainc)
	}
	fg, _, _ := style.Decompose()
	red, green, _ := fg.RGB()
	if red < 200 || green > 40 {
		t.Errorf("top pixel colour = %d,%d, expected red", red, green)
	}

	_, _, style, _ = screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if r0, g0, b0 := fg.RGB(); r0 != 0 || g0 != 0 || b0 != 0 {
		t.Errorf("empty cell foreground = %d,%d,%d, expected black", r0, g0, b0)
	}
	if r0, g0, b0 := bg.RGB(); r0 != 0 || g0 != 0 || b0 != 0 {
		t.Errorf("empty cell background = %d,%d,%d, expected black", r0, g0, b0)
	}
}

func TestTerminalRenderer_Translate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want engine.Input
		ok   bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.Input{Kind: engine.InputQuit}, true},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), engine.Input{Kind: engine.InputQuit}, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), engine.Input{Kind: engine.InputQuit}, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), engine.Input{Kind: engine.InputLaunch}, true},
		{"other_key", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), engine.Input{}, false},
		{"click", tcell.NewEventMouse(7, 30, tcell.Button1, tcell.ModNone), engine.Input{Kind: engine.InputClick, X: 7.5, Y: 61}, true},
		{"right_click", tcell.NewEventMouse(7, 30, tcell.Button2, tcell.ModNone), engine.Input{}, false},
		{"resize", tcell.NewEventResize(100, 40), engine.Input{Kind: engine.InputResize, X: 25, Y: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 20, 10)
			defer screen.Fini()
			// one unit per pixel until the terminal grows
			r := NewTerminalRenderer(screen, 20)
			got, ok := r.translate(tt.ev)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %+v, %v; expected %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTerminalRenderer_ClickOnPressEdgeOnly(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	defer screen.Fini()
	r := NewTerminalRenderer(screen, 0)

	if _, ok := r.translate(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)); !ok {
		t.Fatal("first press should click")
	}
	if _, ok := r.translate(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)); ok {
		t.Error("drag with the button held must not click again")
	}
	if _, ok := r.translate(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone)); ok {
		t.Error("release must not click")
	}
	if _, ok := r.translate(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone)); !ok {
		t.Error("second press should click")
	}
}

func TestTerminalRenderer_InputsDeliversAndCloses(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 0)

	inputs := r.Inputs(context.Background())
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	// the screen may report its initial size first
	deadline := time.After(2 * time.Second)
	for delivered := false; !delivered; {
		select {
		case in := <-inputs:
			switch in.Kind {
			case engine.InputLaunch:
				delivered = true
			case engine.InputResize:
			default:
				t.Fatalf("got %v, expected launch", in.Kind)
			}
		case <-deadline:
			t.Fatal("no input delivered")
		}
	}

	screen.Fini()
	select {
	case _, ok := <-inputs:
		if ok {
			t.Error("expected channel to be closed after Fini")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("input channel not closed after Fini")
	}
}

func TestTerminalRenderer_ResizeFollowsInput(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	defer screen.Fini()

	r := NewTerminalRenderer(screen, 0)
	sim := engine.NewSimulation(testSimulationConfig(), 20, 20, nil)
	sim.Start(context.Background(), r)

	screen.SetSize(30, 12)
	sim.Apply(engine.Input{Kind: engine.InputResize, X: 30, Y: 24}, r)

	if w, h := r.Size(); w != 30 || h != 24 {
		t.Errorf("canvas = %vx%v, expected 30x24", w, h)
	}
	if sim.Width != 30 || sim.Height != 24 {
		t.Errorf("simulation = %vx%v, expected 30x24", sim.Width, sim.Height)
	}
	sim.Tick(r)
}

func TestTerminalRenderer_ResizeKeepsVirtualHeight(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	defer screen.Fini()

	r := NewTerminalRenderer(screen, 40)
	w, h := r.Size()
	sim := engine.NewSimulation(testSimulationConfig(), w, h, nil)
	sim.Start(context.Background(), r)

	screen.SetSize(30, 20)
	in, ok := r.translate(tcell.NewEventResize(30, 20))
	if !ok {
		t.Fatal("resize event not translated")
	}
	sim.Apply(in, r)

	if w, h := r.Size(); w != 30 || h != 40 {
		t.Errorf("canvas = %vx%v units, expected 30x40", w, h)
	}
	if sim.Width != 30 || sim.Height != 40 {
		t.Errorf("simulation = %vx%v, expected 30x40", sim.Width, sim.Height)
	}
	for _, star := range sim.Stars() {
		if star.Position.X >= 30 || star.Position.Y >= 40 {
			t.Errorf("star at %v outside the resized sky", star.Position)
		}
	}
}
