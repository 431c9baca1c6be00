package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("malformed"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded defaults drifted from DefaultRunnerConfig():\n got  %+v\n want %+v", cfg, DefaultRunnerConfig())
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Terrain.MaxSpacing != 100 {
		t.Errorf("embedded default should apply, got max_spacing=%g", cfg.Terrain.MaxSpacing)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join("configs", "malformed.yaml"), "terrain:\n  max_spacing: 90\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Terrain.MaxSpacing != 90 {
		t.Errorf("local config should apply, got max_spacing=%g", cfg.Terrain.MaxSpacing)
	}
	if cfg.Player.JumpHeight != 200 {
		t.Errorf("partial file should keep other defaults, got jump_height=%g", cfg.Player.JumpHeight)
	}

	userDir := filepath.Join(home, ".malformed", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(userDir, "malformed.yaml"), "terrain:\n  max_spacing: 80\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Terrain.MaxSpacing != 80 {
		t.Errorf("user config should win over local, got max_spacing=%g", cfg.Terrain.MaxSpacing)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "terrain:\n  max_spacing: 70\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom) failed: %v", err)
	}
	if cfg.Terrain.MaxSpacing != 70 {
		t.Errorf("custom path should win, got max_spacing=%g", cfg.Terrain.MaxSpacing)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "world: [\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalidPath := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalidPath, "terrain:\n  min_spacing: 120\n  max_spacing: 60\n")
	_, err := Load(invalidPath)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("inverted spacing should fail validation, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero mass", func(c *RunnerConfig) { c.Player.Mass = 0 }},
		{"upward gravity", func(c *RunnerConfig) { c.World.Gravity = 10 }},
		{"no platforms", func(c *RunnerConfig) { c.World.MaxPlatforms = 0 }},
		{"positive cull", func(c *RunnerConfig) { c.World.CullBoundary = 10 }},
		{"inverted y band", func(c *RunnerConfig) { c.Terrain.MaxY = c.Terrain.MinY - 1 }},
		{"band above jump", func(c *RunnerConfig) { c.Terrain.MaxY = c.Terrain.MinY + c.Player.JumpHeight + 1 }},
		{"inverted segments", func(c *RunnerConfig) { c.Terrain.MaxSegments = -1 }},
		{"bump over cap", func(c *RunnerConfig) { c.Player.MaxVelocityX = 100 }},
		{"unknown resource", func(c *RunnerConfig) { c.Resource.Kind = "mana" }},
		{"death above terrain", func(c *RunnerConfig) { c.World.DeathY = 0 }},
		{"spawn rate above one", func(c *RunnerConfig) { c.Bytes.SpawnRate = 2 }},
		{"inverted float band", func(c *RunnerConfig) { c.Bytes.FloatMax = 0 }},
		{"cap culls ground ahead", func(c *RunnerConfig) {
			c.World.MaxPlatforms = 5
			c.World.CullBoundary = -8000
		}},
		{"lookahead beyond the cap", func(c *RunnerConfig) { c.Terrain.Lookahead = 10000 }},
		{"first roof shorter than the walk", func(c *RunnerConfig) { c.Terrain.InitialSegments = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Player.Mass = 0
	cfg.World.MaxPlatforms = 0

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected a joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("expected 2 failures, got %d", n)
	}
}

func TestPresets(t *testing.T) {
	base := DefaultRunnerConfig()

	tests := []struct {
		preset DifficultyPreset
		check  func(RunnerConfig) bool
	}{
		{DifficultyNormal, func(c RunnerConfig) bool { return reflect.DeepEqual(c, base) }},
		{DifficultyEasy, func(c RunnerConfig) bool {
			return c.Player.MaxVelocityX < base.Player.MaxVelocityX && c.Terrain.MaxSpacing < base.Terrain.MaxSpacing
		}},
		{DifficultyHard, func(c RunnerConfig) bool {
			return c.Player.MaxVelocityX > base.Player.MaxVelocityX && c.Player.InitAccelerationX > base.Player.InitAccelerationX
		}},
		{DifficultyFixed, func(c RunnerConfig) bool { return c.Player.InitAccelerationX == 0 }},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tt.preset)
			if !tt.check(cfg) {
				t.Errorf("preset %s produced unexpected config %+v", tt.preset, cfg.Player)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s should stay valid: %v", tt.preset, err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(Hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("empty preset should be accepted, got %q, %v", p, err)
	}
	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("unknown preset should fail")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyEasy) {
		t.Error("IsFixedPreset mismatch")
	}
}

func TestApplyVariant(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyVariant(&cfg, ResourceMemory)

	if cfg.Resource.Kind != ResourceMemory {
		t.Errorf("kind = %q, expected memory", cfg.Resource.Kind)
	}
	if cfg.Resource.PassiveDrain <= 0 || cfg.Resource.DrainInterval <= 0 {
		t.Error("memory variant needs a passive drain")
	}

	stamina := DefaultRunnerConfig()
	ApplyVariant(&stamina, ResourceStamina)
	if stamina.Resource.PassiveDrain != 0 {
		t.Error("stamina variant should not drain passively")
	}
}

func TestJumpSpeed(t *testing.T) {
	cfg := DefaultRunnerConfig()
	v := cfg.JumpSpeed()
	// v^2 / 2g recovers the apex height
	if h := v * v / (2 * 981); h < 199.99 || h > 200.01 {
		t.Errorf("apex height = %g, expected 200", h)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
