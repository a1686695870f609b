// pkg/engine/simulation.go
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/event"
	"github.com/opd-ai/go-fireworks/pkg/logging"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// Stats is a snapshot of simulation counters
type Stats struct {
	Frame         uint64
	Stars         int
	Fireworks     int
	Sparks        int
	Launched      uint64
	Exploded      uint64
	Extinguished  uint64
	DroppedSpawns uint64
}

// Simulation owns every star and firework of one show.
// It is driven from a single goroutine: Tick, Click, Resize and Spawn must
// not be called concurrently.
type Simulation struct {
	Config   config.SimulationConfig
	Width    float64
	Height   float64
	Seed     uint64
	EventBus *event.Bus

	rng       *rand.Rand
	gravity   physics.Vector2D
	burst     entity.Burst
	stars     []entity.Star
	fireworks []*entity.Firework
	nextID    entity.ID
	running   bool
	stats     Stats

	logger *logging.Logger
	ctx    context.Context
}

// NewSimulation creates a stopped simulation for a surface of the given size.
// A zero seed in cfg is replaced by one derived from the clock; the chosen
// seed is kept in Seed so a run can be replayed.
func NewSimulation(cfg config.SimulationConfig, width, height float64, logger *logging.Logger) *Simulation {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Simulation{
		Config:   cfg,
		Width:    width,
		Height:   height,
		Seed:     seed,
		EventBus: event.NewEventBus(),
		rng:      rand.New(rand.NewPCG(seed, seed)),
		gravity:  physics.Vector2D{X: 0, Y: cfg.Gravity},
		burst:    entity.Burst{Sparks: cfg.SparkCount, Decay: cfg.SparkDecay},
		nextID:   1,
		logger:   logger,
		ctx:      context.Background(),
	}
}

// Start seeds the sky, clears the surface and begins accepting ticks.
// Starting a running simulation does nothing.
func (s *Simulation) Start(ctx context.Context, r entity.Renderer) {
	if s.running {
		return
	}
	if ctx != nil {
		s.ctx = ctx
	}

	s.populateStars()
	r.Clear()
	s.running = true

	s.logger.Info(s.ctx, "simulation started",
		"seed", s.Seed,
		"width", s.Width,
		"height", s.Height,
		"stars", len(s.stars),
	)
	s.EventBus.Publish(event.NewSimulationEvent(event.SimulationStarted, s, s.Width, s.Height, s.stats.Frame))
}

// Stop releases every star and firework. Later calls to Tick, Click, Resize
// and Spawn are no-ops.
func (s *Simulation) Stop() {
	if !s.running {
		return
	}
	s.running = false

	s.logger.Info(s.ctx, "simulation stopped",
		"frames", s.stats.Frame,
		"launched", s.stats.Launched,
		"exploded", s.stats.Exploded,
		"extinguished", s.stats.Extinguished,
		"dropped_spawns", s.stats.DroppedSpawns,
		"live_fireworks", len(s.fireworks),
	)

	clear(s.fireworks)
	s.fireworks = nil
	s.stars = nil

	s.EventBus.Publish(event.NewSimulationEvent(event.SimulationStopped, s, s.Width, s.Height, s.stats.Frame))
}

// Running reports whether the simulation accepts ticks.
func (s *Simulation) Running() bool {
	return s.running
}

// Tick draws one frame: fade, stars, maybe a new firework, then every
// firework is advanced, drawn and culled once finished.
func (s *Simulation) Tick(r entity.Renderer) {
	if !s.running {
		return
	}
	s.stats.Frame++

	r.Fade(uint8(s.Config.TrailAlpha))

	for i := range s.stars {
		s.stars[i].Twinkle()
		s.stars[i].Render(r)
	}

	if s.rng.Float64() < s.Config.SpawnChance {
		s.SpawnRandom()
	}

	s.updateFireworks(r)

	r.Present()
}

func (s *Simulation) updateFireworks(r entity.Renderer) {
	alive := s.fireworks[:0]
	for _, f := range s.fireworks {
		if f.Update(s.gravity, s.rng) {
			s.stats.Exploded++
			s.logger.Debug(s.ctx, "firework exploded", "id", f.ID, "x", f.Apex.X, "y", f.Apex.Y, "frame", s.stats.Frame)
			s.EventBus.Publish(event.NewFireworkEvent(event.FireworkExploded, s, f, f.Apex, s.stats.Frame))
		}

		f.Render(r)

		if f.Done() {
			s.stats.Extinguished++
			s.logger.Debug(s.ctx, "firework extinguished", "id", f.ID, "frame", s.stats.Frame)
			s.EventBus.Publish(event.NewFireworkEvent(event.FireworkExtinguished, s, f, f.Apex, s.stats.Frame))
			continue
		}
		alive = append(alive, f)
	}
	clear(s.fireworks[len(alive):])
	s.fireworks = alive
}

// Click launches a firework at x unless y lies in the header band.
// It reports whether a firework was launched.
func (s *Simulation) Click(x, y float64) bool {
	if !s.running || y <= s.Config.HeaderBand {
		return false
	}
	return s.Spawn(x) != nil
}

// Spawn launches a firework from the bottom edge at x. It returns nil when
// the simulation is stopped or the live-firework cap is reached.
func (s *Simulation) Spawn(x float64) *entity.Firework {
	if !s.running {
		return nil
	}
	hue := s.rng.Float64() * entity.HueRange
	return s.launch(hue, x)
}

// SpawnRandom launches a firework at a random x.
func (s *Simulation) SpawnRandom() *entity.Firework {
	if !s.running {
		return nil
	}
	hue := s.rng.Float64() * entity.HueRange
	x := s.rng.Float64() * s.Width
	return s.launch(hue, x)
}

func (s *Simulation) launch(hue, x float64) *entity.Firework {
	if limit := s.Config.MaxFireworks; limit > 0 && len(s.fireworks) >= limit {
		s.stats.DroppedSpawns++
		s.logger.Debug(s.ctx, "spawn dropped", "live_fireworks", len(s.fireworks), "limit", limit)
		s.EventBus.Publish(event.NewSimulationEvent(event.SpawnDropped, s, s.Width, s.Height, s.stats.Frame))
		return nil
	}

	origin := physics.Vector2D{X: x, Y: s.Height}
	f := entity.NewFirework(s.nextID, hue, origin, s.burst, s.rng)
	s.nextID++
	s.fireworks = append(s.fireworks, f)
	s.stats.Launched++

	s.logger.Debug(s.ctx, "firework launched", "id", f.ID, "x", x, "hue", hue, "frame", s.stats.Frame)
	s.EventBus.Publish(event.NewFireworkEvent(event.FireworkLaunched, s, f, origin, s.stats.Frame))
	return f
}

// Resize adopts a new surface size and regenerates the whole sky.
// Live fireworks keep their positions.
func (s *Simulation) Resize(width, height float64) {
	if !s.running {
		return
	}
	s.Width = width
	s.Height = height
	s.populateStars()

	s.logger.Info(s.ctx, "simulation reset", "width", width, "height", height)
	s.EventBus.Publish(event.NewSimulationEvent(event.SimulationReset, s, width, height, s.stats.Frame))
}

func (s *Simulation) populateStars() {
	sky := entity.SkyBounds(s.Width, s.Height)
	s.stars = make([]entity.Star, 0, s.Config.StarCount)
	for i := 0; i < s.Config.StarCount; i++ {
		s.stars = append(s.stars, entity.NewStar(sky, s.rng))
	}
}

// Stars returns the live stars. The slice is owned by the simulation.
func (s *Simulation) Stars() []entity.Star {
	return s.stars
}

// Fireworks returns the live fireworks in draw order. The slice is owned by
// the simulation.
func (s *Simulation) Fireworks() []*entity.Firework {
	return s.fireworks
}

// Stats returns the current counters.
func (s *Simulation) Stats() Stats {
	st := s.stats
	st.Stars = len(s.stars)
	st.Fireworks = len(s.fireworks)
	for _, f := range s.fireworks {
		st.Sparks += len(f.Sparks)
	}
	return st
}
