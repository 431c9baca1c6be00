package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// An empty string selects the config file as-is.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables acceleration.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxVelocityX *= 0.7
		cfg.Terrain.MinSpacing *= 0.8
		cfg.Terrain.MaxSpacing *= 0.8
	case DifficultyHard:
		cfg.Player.MaxVelocityX *= 1.3
		cfg.Player.InitAccelerationX *= 1.3
	case DifficultyFixed:
		cfg.Player.InitAccelerationX = 0
	}

	// Keep the revival speed reachable after scaling the cap down.
	if floor := cfg.Player.InitVelocityX + cfg.Player.VelocityBump; cfg.Player.MaxVelocityX < floor {
		cfg.Player.MaxVelocityX = floor
	}
}
