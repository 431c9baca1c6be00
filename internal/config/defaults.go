package config

import (
	_ "embed"
)

//go:embed defaults/malformed.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			Mass:              100,
			ColliderWidth:     48,
			ColliderHeight:    68,
			SpawnX:            0,
			SpawnY:            -200,
			RiseGravity:       1.0,
			FallGravity:       1.8,
			CoyoteTime:        0.35,
			JumpBuffering:     0.3,
			JumpHeight:        200,
			JumpWindow:        0.3,
			ShortHopDecay:     0.8,
			WalkingTimer:      12,
			InitVelocityX:     80,
			InitAccelerationX: 65,
			VelocityBump:      150,
			MaxVelocityX:      1000,
		},
		Resource: ResourceConfig{
			Kind:            ResourceStamina,
			Max:             100,
			RecoveryRate:    25,
			RiseDrainFactor: 1.1,
		},
		World: WorldConfig{
			Gravity:        -981,
			MaxPlatforms:   12,
			CullBoundary:   -1000,
			DeathY:         -800,
			UnitWidth:      64,
			SpriteScale:    2,
			BuildingHeight: 1000,
			WallWidth:      200,
			ScrollFactor:   2,
			ColumnWidth:    24,
		},
		Terrain: TerrainConfig{
			MinSpacing:      50,
			MaxSpacing:      100,
			MinY:            -768,
			MaxY:            -640,
			MinSegments:     0,
			MaxSegments:     10,
			SegmentPad:      2,
			InitialSegments: 16,
			AnchorX:         0,
			AnchorWidth:     2000,
			Lookahead:       1920,
		},
		Environment: EnvironmentConfig{
			CabinetX:      -60,
			CabinetY:      -268,
			CabinetWidth:  40,
			CabinetHeight: 64,
			DoorOffsetX:   40,
			DoorOffsetY:   0,
			DoorWidth:     16,
			DoorHeight:    80,
			BoardOffsetX:  200,
			BoardOffsetY:  40,
		},
		Bytes: BytesConfig{
			SpawnRate:  0.02,
			EdgeMargin: 120,
			FloatMin:   20,
			FloatMax:   30,
			FloatSpeed: 14,
			Size:       16,
			Gain:       20,
		},
		Restart: RestartConfig{
			Cooldown: 1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "malformed", "malformed_memory":
		return defaultRunnerYAML
	default:
		return nil
	}
}
