// pkg/engine/loop.go
package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-fireworks/pkg/entity"
)

// InputKind identifies a user action delivered by a backend
type InputKind int

const (
	// InputClick is a primary-button press at (X, Y).
	InputClick InputKind = iota
	// InputResize carries the new surface size in X and Y.
	InputResize
	// InputLaunch asks for a firework at a random x.
	InputLaunch
	// InputQuit ends the show.
	InputQuit
)

func (k InputKind) String() string {
	switch k {
	case InputClick:
		return "click"
	case InputResize:
		return "resize"
	case InputLaunch:
		return "launch"
	case InputQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Input is a backend-neutral user action
type Input struct {
	Kind InputKind
	X, Y float64
}

// Resizable is implemented by renderers whose drawing surface must follow
// the viewport size.
type Resizable interface {
	Resize(width, height int)
}

// Apply feeds one input to the simulation. It reports false when the show
// should end.
func (s *Simulation) Apply(in Input, r entity.Renderer) bool {
	switch in.Kind {
	case InputClick:
		s.Click(in.X, in.Y)
	case InputResize:
		if rs, ok := r.(Resizable); ok {
			rs.Resize(int(in.X), int(in.Y))
		}
		s.Resize(in.X, in.Y)
	case InputLaunch:
		s.SpawnRandom()
	case InputQuit:
		return false
	}
	return true
}

// Run drives the simulation until ctx is cancelled, inputs is closed, a quit
// input arrives or maxFrames frames have been drawn (0 means no limit).
// With tps 0 frames are drawn back to back, otherwise tps times per second.
// The simulation must already be started; Run does not stop it.
func Run(ctx context.Context, sim *Simulation, r entity.Renderer, inputs <-chan Input, tps int, maxFrames uint64) error {
	var tick <-chan time.Time
	if tps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case in, ok := <-inputs:
				if !ok || !sim.Apply(in, r) {
					return nil
				}
				continue
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case in, ok := <-inputs:
				if !ok || !sim.Apply(in, r) {
					return nil
				}
				continue
			case <-tick:
			}
		}

		sim.Tick(r)
		if maxFrames > 0 && sim.Stats().Frame >= maxFrames {
			return nil
		}
	}
}
