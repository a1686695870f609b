//go:build !ebiten

// cmd/fireworks/window_engo.go
package main

import (
	"context"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
	engorender "github.com/opd-ai/go-fireworks/pkg/render/engo"
)

// runWindow opens an Engo window and blocks until it closes. withAudio is
// called once the simulation exists and returns its cleanup.
func runWindow(ctx context.Context, cfg *config.Config, logger *logging.Logger, withAudio func(*engine.Simulation) func()) error {
	sim := engine.NewSimulation(cfg.Simulation, float64(cfg.Display.Width), float64(cfg.Display.Height), logger)
	defer withAudio(sim)()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			engo.Exit()
		case <-done:
		}
	}()

	engorender.Run(ctx, sim, logger, cfg.Display.Title, cfg.Display.Fullscreen)
	sim.Stop()
	return ctx.Err()
}
