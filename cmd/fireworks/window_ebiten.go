//go:build ebiten

// cmd/fireworks/window_ebiten.go
package main

import (
	"context"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/logging"
	ebitenrender "github.com/opd-ai/go-fireworks/pkg/render/ebiten"
)

// runWindow opens an Ebitengine window and blocks until it closes. withAudio
// is called once the simulation exists and returns its cleanup.
func runWindow(ctx context.Context, cfg *config.Config, logger *logging.Logger, withAudio func(*engine.Simulation) func()) error {
	sim := engine.NewSimulation(cfg.Simulation, float64(cfg.Display.Width), float64(cfg.Display.Height), logger)
	defer withAudio(sim)()

	if err := ebitenrender.Run(ctx, sim, logger, cfg.Display.Title, cfg.Display.Fullscreen, cfg.Display.TPS); err != nil {
		return err
	}
	return ctx.Err()
}
