// cmd/fireworks/main.go
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-fireworks/pkg/audio"
	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/logging"
	"github.com/opd-ai/go-fireworks/pkg/render"
	"github.com/opd-ai/go-fireworks/pkg/render/raster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "fireworks: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// options holds the command line. Only flags that were set override the
// configuration.
type options struct {
	configPath  string
	renderer    string
	width       int
	height      int
	fullscreen  bool
	seed        uint64
	audio       bool
	logLevel    string
	logPath     string
	frames      uint64
	snapshot    string
	writeConfig string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("fireworks", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "fireworks.yaml", "Path to configuration file")
	fs.StringVar(&opts.renderer, "renderer", config.RendererWindow, "Renderer: 'window', 'terminal' or 'headless'")
	fs.IntVar(&opts.width, "width", 0, "Window width (overrides config)")
	fs.IntVar(&opts.height, "height", 0, "Window height (overrides config)")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (window only)")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 derives one from the clock")
	fs.BoolVar(&opts.audio, "audio", false, "Play a sound for every explosion")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	fs.StringVar(&opts.logPath, "log", "", "Append logs to this file instead of stderr")
	fs.Uint64Var(&opts.frames, "frames", 0, "Stop after this many frames, 0 runs until quit")
	fs.StringVar(&opts.snapshot, "snapshot", "", "Write the last frame as PNG (headless only)")
	fs.StringVar(&opts.writeConfig, "write-config", "", "Write the resolved configuration to this file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

// applyFlags copies every explicitly set flag onto cfg.
func applyFlags(cfg *config.Config, opts *options, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Display.Renderer = opts.renderer
		case "width":
			cfg.Display.Width = opts.width
		case "height":
			cfg.Display.Height = opts.height
		case "fullscreen":
			cfg.Display.Fullscreen = opts.fullscreen
		case "seed":
			cfg.Simulation.Seed = opts.seed
		case "audio":
			cfg.Audio.Enabled = opts.audio
		case "log-level":
			cfg.LogLevel = opts.logLevel
		}
	})
}

// loadConfig resolves defaults, file, environment and flags in that order.
func loadConfig(opts *options, fs *flag.FlagSet) (*config.Config, bool, error) {
	cfg, fromFile, err := config.LoadConfigOrDefault(opts.configPath)
	if err != nil {
		return nil, fromFile, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fromFile, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	applyFlags(cfg, opts, fs)
	if err := cfg.Validate(); err != nil {
		return nil, fromFile, err
	}
	return cfg, fromFile, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, fromFile, err := loadConfig(opts, fs)
	if err != nil {
		return err
	}

	if opts.writeConfig != "" {
		return config.SaveConfig(cfg, opts.writeConfig)
	}

	// The terminal backend owns the tty, so logs meant for stderr are held
	// back until the screen is released.
	var held bytes.Buffer
	logOut := stderr
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	} else if cfg.Display.Renderer == config.RendererTerminal {
		logOut = &held
		defer func() { _, _ = io.Copy(stderr, &held) }()
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewLoggerWithWriter(logOut, level)
	ctx = logging.WithRunID(ctx, "")
	if !ok {
		logger.Warn(ctx, "unknown log level, using INFO", "level", cfg.LogLevel)
	}
	if fromFile {
		logger.Info(ctx, "configuration loaded", "path", opts.configPath)
	}

	switch cfg.Display.Renderer {
	case config.RendererHeadless:
		err = runHeadless(ctx, cfg, opts, logger)
	case config.RendererTerminal:
		err = runTerminal(ctx, cfg, opts, logger)
	default:
		err = runWindow(ctx, cfg, logger, func(sim *engine.Simulation) func() {
			return startAudio(ctx, cfg, sim, logger)
		})
	}
	if errors.Is(err, context.Canceled) {
		logger.Info(ctx, "interrupted")
		return nil
	}
	if err != nil {
		logger.Error(ctx, "show failed", err, "renderer", cfg.Display.Renderer)
	}
	return err
}

// startAudio attaches explosion sounds to sim when audio is enabled. A
// missing audio device only disables sound. The returned func releases the
// device.
func startAudio(ctx context.Context, cfg *config.Config, sim *engine.Simulation, logger *logging.Logger) func() {
	if !cfg.Audio.Enabled {
		return func() {}
	}
	player := audio.NewPlayer(cfg.Audio.SampleRate, logger)
	if err := player.Initialize(); err != nil {
		logger.Warn(ctx, "audio unavailable, continuing without sound", "error", err.Error())
		return func() {}
	}
	player.Attach(sim.EventBus)
	logger.Info(ctx, "audio enabled", "sample_rate", cfg.Audio.SampleRate)
	return player.Close
}

func runHeadless(ctx context.Context, cfg *config.Config, opts *options, logger *logging.Logger) error {
	var (
		r      entity.Renderer
		canvas *raster.Canvas
	)
	if opts.snapshot != "" {
		canvas = raster.NewCanvas(cfg.Display.Width, cfg.Display.Height)
		r = canvas
	} else {
		r = render.NewNullRenderer(logger)
	}

	sim := engine.NewSimulation(cfg.Simulation, float64(cfg.Display.Width), float64(cfg.Display.Height), logger)
	closeAudio := startAudio(ctx, cfg, sim, logger)
	defer closeAudio()

	sim.Start(ctx, r)
	defer sim.Stop()

	// a bounded run goes as fast as it can, an open one keeps real time
	tps := cfg.Display.TPS
	if opts.frames > 0 {
		tps = 0
	}
	if err := engine.Run(ctx, sim, r, nil, tps, opts.frames); err != nil {
		return err
	}

	if canvas != nil {
		if err := canvas.SavePNG(opts.snapshot); err != nil {
			return logging.WrapError(err, "failed to write snapshot %s", opts.snapshot)
		}
		logger.Info(ctx, "snapshot written", "path", opts.snapshot, "frame", sim.Stats().Frame)
	}
	return nil
}

func runTerminal(ctx context.Context, cfg *config.Config, opts *options, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal screen: %w", err)
	}
	defer screen.Fini()

	return runOnScreen(ctx, cfg, opts, screen, logger)
}

// runOnScreen plays the show on an initialised screen until quit.
func runOnScreen(ctx context.Context, cfg *config.Config, opts *options, screen tcell.Screen, logger *logging.Logger) error {
	r := render.NewTerminalRenderer(screen, float64(cfg.Display.Height))
	width, height := r.Size()

	sim := engine.NewSimulation(cfg.Simulation, width, height, logger)
	closeAudio := startAudio(ctx, cfg, sim, logger)
	defer closeAudio()

	sim.Start(ctx, r)
	defer sim.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	return engine.Run(runCtx, sim, r, r.Inputs(runCtx), cfg.Display.TPS, opts.frames)
}
