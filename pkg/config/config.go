// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-fireworks/pkg/entity"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Renderer names accepted by DisplayConfig.Renderer.
const (
	RendererWindow   = "window"
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// Config contains everything needed to run a fireworks show
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Display    DisplayConfig    `yaml:"display"`
	Audio      AudioConfig      `yaml:"audio"`
	LogLevel   string           `yaml:"logLevel"`
}

// SimulationConfig holds the physics and spawning parameters
type SimulationConfig struct {
	// Seed of 0 asks for a clock-derived seed.
	Seed         uint64  `yaml:"seed"`
	StarCount    int     `yaml:"starCount"`
	SparkCount   int     `yaml:"sparkCount"`
	Gravity      float64 `yaml:"gravity"`
	SpawnChance  float64 `yaml:"spawnChance"`
	HeaderBand   float64 `yaml:"headerBand"`
	TrailAlpha   int     `yaml:"trailAlpha"`
	SparkDecay   int     `yaml:"sparkDecay"`
	MaxFireworks int     `yaml:"maxFireworks"` // 0 means unbounded
}

// DisplayConfig selects and sizes the output surface
type DisplayConfig struct {
	Renderer   string `yaml:"renderer"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TPS        int    `yaml:"tps"`
	Title      string `yaml:"title"`
}

// AudioConfig controls the explosion sound
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sampleRate"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:         0,
			StarCount:    300,
			SparkCount:   entity.DefaultSparkCount,
			Gravity:      0.2,
			SpawnChance:  0.03,
			HeaderBand:   100,
			TrailAlpha:   25,
			SparkDecay:   entity.DefaultDecay,
			MaxFireworks: 64,
		},
		Display: DisplayConfig{
			Renderer: RendererWindow,
			Width:    1280,
			Height:   720,
			TPS:      60,
			Title:    "Fuegos Artificiales de Tultepec",
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
		},
		LogLevel: "INFO",
	}
}

// LoadConfig loads a YAML configuration file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but returns the defaults when
// path is empty or the file does not exist. The boolean reports whether a
// file was read.
func LoadConfigOrDefault(path string) (*Config, bool, error) {
	if path == "" {
		return DefaultConfig(), false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// SaveConfig writes a configuration to a YAML file
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from FIREWORKS_* environment variables.
// Empty variables are ignored.
func (c *Config) ApplyEnv() error {
	if v, ok := lookupEnv("FIREWORKS_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid FIREWORKS_SEED: %w", err)
		}
		c.Simulation.Seed = seed
	}
	if v, ok := lookupEnv("FIREWORKS_RENDERER"); ok {
		c.Display.Renderer = strings.ToLower(v)
	}
	if err := envInt("FIREWORKS_WIDTH", &c.Display.Width); err != nil {
		return err
	}
	if err := envInt("FIREWORKS_HEIGHT", &c.Display.Height); err != nil {
		return err
	}
	if err := envInt("FIREWORKS_MAX_FIREWORKS", &c.Simulation.MaxFireworks); err != nil {
		return err
	}
	if v, ok := lookupEnv("FIREWORKS_AUDIO"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FIREWORKS_AUDIO: %w", err)
		}
		c.Audio.Enabled = enabled
	}
	if v, ok := lookupEnv("FIREWORKS_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envInt(key string, dst *int) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate checks that the configuration can drive a simulation.
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case s.StarCount <= 0:
		return invalid("starCount must be positive, got %d", s.StarCount)
	case s.SparkCount <= 0:
		return invalid("sparkCount must be positive, got %d", s.SparkCount)
	case s.SpawnChance < 0 || s.SpawnChance > 1:
		return invalid("spawnChance must be within [0, 1], got %v", s.SpawnChance)
	case s.SparkDecay <= 0:
		return invalid("sparkDecay must be positive, got %d", s.SparkDecay)
	case s.TrailAlpha < 0 || s.TrailAlpha > 255:
		return invalid("trailAlpha must be within [0, 255], got %d", s.TrailAlpha)
	case s.MaxFireworks < 0:
		return invalid("maxFireworks must not be negative, got %d", s.MaxFireworks)
	case s.HeaderBand < 0:
		return invalid("headerBand must not be negative, got %v", s.HeaderBand)
	}

	d := c.Display
	switch {
	case d.Width <= 0 || d.Height <= 0:
		return invalid("display size must be positive, got %dx%d", d.Width, d.Height)
	case d.TPS <= 0:
		return invalid("tps must be positive, got %d", d.TPS)
	}
	switch d.Renderer {
	case RendererWindow, RendererTerminal, RendererHeadless:
	default:
		return invalid("unknown renderer %q", d.Renderer)
	}

	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return invalid("audio sampleRate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
