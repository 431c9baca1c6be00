package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the runner configuration and validates it.
// Search order: customPath -> ~/.malformed/configs/malformed.yaml -> ./configs/malformed.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func Load(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("malformed.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultRunnerConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "malformed.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultRunnerConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".malformed", "configs", filename)
}

// ApplyVariant switches the resource gauge to the given kind.
// The memory gauge drains on its own and refills from bytes, so it gets
// a slower recovery and a passive drain when the file did not set one.
func ApplyVariant(cfg *RunnerConfig, kind ResourceKind) {
	cfg.Resource.Kind = kind
	if kind != ResourceMemory {
		return
	}
	if cfg.Resource.PassiveDrain <= 0 {
		cfg.Resource.PassiveDrain = 5
	}
	if cfg.Resource.DrainInterval <= 0 {
		cfg.Resource.DrainInterval = 1
	}
	cfg.Resource.RecoveryRate = cfg.Resource.RecoveryRate / 2
}
