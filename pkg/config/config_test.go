// pkg/config/config_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_MatchesStockShow(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.Simulation

	if s.StarCount != 300 {
		t.Errorf("StarCount = %d, expected 300", s.StarCount)
	}
	if s.SparkCount != 100 {
		t.Errorf("SparkCount = %d, expected 100", s.SparkCount)
	}
	if s.Gravity != 0.2 {
		t.Errorf("Gravity = %v, expected 0.2", s.Gravity)
	}
	if s.SpawnChance != 0.03 {
		t.Errorf("SpawnChance = %v, expected 0.03", s.SpawnChance)
	}
	if s.HeaderBand != 100 {
		t.Errorf("HeaderBand = %v, expected 100", s.HeaderBand)
	}
	if s.TrailAlpha != 25 {
		t.Errorf("TrailAlpha = %d, expected 25", s.TrailAlpha)
	}
	if s.SparkDecay != 4 {
		t.Errorf("SparkDecay = %d, expected 4", s.SparkDecay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireworks.yaml")
	content := `
simulation:
  seed: 1234
  maxFireworks: 5
display:
  renderer: terminal
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Simulation.Seed != 1234 {
		t.Errorf("Seed = %d, expected 1234", cfg.Simulation.Seed)
	}
	if cfg.Simulation.MaxFireworks != 5 {
		t.Errorf("MaxFireworks = %d, expected 5", cfg.Simulation.MaxFireworks)
	}
	if cfg.Display.Renderer != RendererTerminal {
		t.Errorf("Renderer = %q, expected terminal", cfg.Display.Renderer)
	}
	if cfg.Simulation.StarCount != 300 || cfg.Display.Width != 1280 {
		t.Error("keys absent from the file must keep their defaults")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("simulation: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadConfigOrDefault(t *testing.T) {
	cfg, found, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || found {
		t.Fatalf("LoadConfigOrDefault() = found %v, err %v", found, err)
	}
	if cfg.Simulation.StarCount != 300 {
		t.Error("expected defaults for a missing file")
	}

	cfg, found, err = LoadConfigOrDefault("")
	if err != nil || found || cfg == nil {
		t.Fatalf("empty path: found %v, err %v", found, err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Simulation.Seed = 99
	cfg.Audio.Enabled = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("FIREWORKS_SEED", "77")
		t.Setenv("FIREWORKS_RENDERER", "HEADLESS")
		t.Setenv("FIREWORKS_WIDTH", "640")
		t.Setenv("FIREWORKS_HEIGHT", "480")
		t.Setenv("FIREWORKS_MAX_FIREWORKS", "0")
		t.Setenv("FIREWORKS_AUDIO", "true")
		t.Setenv("FIREWORKS_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() failed: %v", err)
		}

		if cfg.Simulation.Seed != 77 {
			t.Errorf("Seed = %d", cfg.Simulation.Seed)
		}
		if cfg.Display.Renderer != RendererHeadless {
			t.Errorf("Renderer = %q", cfg.Display.Renderer)
		}
		if cfg.Display.Width != 640 || cfg.Display.Height != 480 {
			t.Errorf("size = %dx%d", cfg.Display.Width, cfg.Display.Height)
		}
		if cfg.Simulation.MaxFireworks != 0 {
			t.Errorf("MaxFireworks = %d", cfg.Simulation.MaxFireworks)
		}
		if !cfg.Audio.Enabled {
			t.Error("Audio should be enabled")
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q", cfg.LogLevel)
		}
	})

	t.Run("empty_values_ignored", func(t *testing.T) {
		t.Setenv("FIREWORKS_WIDTH", "  ")
		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() failed: %v", err)
		}
		if cfg.Display.Width != 1280 {
			t.Errorf("Width = %d, expected default", cfg.Display.Width)
		}
	})

	errorCases := map[string]string{
		"FIREWORKS_SEED":   "-1",
		"FIREWORKS_WIDTH":  "wide",
		"FIREWORKS_AUDIO":  "maybe",
		"FIREWORKS_HEIGHT": "1.5",
	}
	for key, value := range errorCases {
		t.Run("invalid_"+key, func(t *testing.T) {
			t.Setenv(key, value)
			if err := DefaultConfig().ApplyEnv(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative_stars", func(c *Config) { c.Simulation.StarCount = -1 }},
		{"zero_stars", func(c *Config) { c.Simulation.StarCount = 0 }},
		{"zero_sparks", func(c *Config) { c.Simulation.SparkCount = 0 }},
		{"spawn_chance_above_one", func(c *Config) { c.Simulation.SpawnChance = 1.5 }},
		{"spawn_chance_negative", func(c *Config) { c.Simulation.SpawnChance = -0.1 }},
		{"zero_decay", func(c *Config) { c.Simulation.SparkDecay = 0 }},
		{"trail_alpha_too_large", func(c *Config) { c.Simulation.TrailAlpha = 256 }},
		{"negative_cap", func(c *Config) { c.Simulation.MaxFireworks = -3 }},
		{"negative_header", func(c *Config) { c.Simulation.HeaderBand = -1 }},
		{"zero_width", func(c *Config) { c.Display.Width = 0 }},
		{"zero_tps", func(c *Config) { c.Display.TPS = 0 }},
		{"unknown_renderer", func(c *Config) { c.Display.Renderer = "canvas" }},
		{"audio_without_rate", func(c *Config) { c.Audio.Enabled = true; c.Audio.SampleRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
