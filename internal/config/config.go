// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the runner.
package config

import "math"

// RunnerConfig contains every tunable of the runner simulation.
type RunnerConfig struct {
	Player      PlayerConfig      `yaml:"player"`
	Resource    ResourceConfig    `yaml:"resource"`
	World       WorldConfig       `yaml:"world"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Environment EnvironmentConfig `yaml:"environment"`
	Bytes       BytesConfig       `yaml:"bytes"`
	Restart     RestartConfig     `yaml:"restart"`
}

// PlayerConfig defines the body and locomotion parameters of the player.
// Times are in seconds, distances in world units.
type PlayerConfig struct {
	Mass           float64 `yaml:"mass"`
	ColliderWidth  float64 `yaml:"collider_width"`
	ColliderHeight float64 `yaml:"collider_height"`
	SpawnX         float64 `yaml:"spawn_x"`
	SpawnY         float64 `yaml:"spawn_y"`

	RiseGravity float64 `yaml:"rise_gravity"` // gravity scale while ascending
	FallGravity float64 `yaml:"fall_gravity"` // gravity scale while descending

	CoyoteTime    float64 `yaml:"coyote_time"`
	JumpBuffering float64 `yaml:"jump_buffering"`
	JumpHeight    float64 `yaml:"jump_height"`
	JumpWindow    float64 `yaml:"jump_window"`     // short-hop release window
	ShortHopDecay float64 `yaml:"short_hop_decay"` // counter impulse is exp(-decay) of the jump impulse

	WalkingTimer      float64 `yaml:"walking_timer"`
	InitVelocityX     float64 `yaml:"init_velocity_x"`
	InitAccelerationX float64 `yaml:"init_acceleration_x"`
	VelocityBump      float64 `yaml:"velocity_bump"`
	MaxVelocityX      float64 `yaml:"max_velocity_x"`
}

// ResourceKind names the gauge variant.
type ResourceKind string

const (
	ResourceStamina ResourceKind = "stamina"
	ResourceMemory  ResourceKind = "memory"
)

// ResourceConfig defines the stamina/memory gauge.
type ResourceConfig struct {
	Kind            ResourceKind `yaml:"kind"`
	Max             float64      `yaml:"max"`
	RecoveryRate    float64      `yaml:"recovery_rate"`     // per second while grounded
	RiseDrainFactor float64      `yaml:"rise_drain_factor"` // drain while rising = factor * recovery
	PassiveDrain    float64      `yaml:"passive_drain"`     // memory only, per interval
	DrainInterval   float64      `yaml:"drain_interval"`    // memory only, seconds
}

// WorldConfig defines global physics and culling parameters.
type WorldConfig struct {
	Gravity        float64 `yaml:"gravity"` // vertical acceleration, negative is down
	MaxPlatforms   int     `yaml:"max_platforms"`
	CullBoundary   float64 `yaml:"cull_boundary"`
	DeathY         float64 `yaml:"death_y"`
	UnitWidth      float64 `yaml:"unit_width"` // width of one building segment sprite
	SpriteScale    float64 `yaml:"sprite_scale"`
	BuildingHeight float64 `yaml:"building_height"`
	WallWidth      float64 `yaml:"wall_width"`
	ScrollFactor   float64 `yaml:"scroll_factor"`
	ColumnWidth    float64 `yaml:"column_width"` // world units per terminal column
}

// TerrainConfig defines the procedural building generator.
type TerrainConfig struct {
	MinSpacing  float64 `yaml:"min_spacing"`
	MaxSpacing  float64 `yaml:"max_spacing"`
	MinY        float64 `yaml:"min_y"`
	MaxY        float64 `yaml:"max_y"`
	MinSegments int     `yaml:"min_segments"`
	MaxSegments int     `yaml:"max_segments"`
	SegmentPad  int     `yaml:"segment_pad"` // end caps added to every building

	InitialSegments int     `yaml:"initial_segments"`
	AnchorX         float64 `yaml:"anchor_x"`
	AnchorWidth     float64 `yaml:"anchor_width"`
	Lookahead       float64 `yaml:"lookahead"` // ground always kept ahead of the spawn point
}

// EnvironmentConfig places the rooftop exit cabinet and the street board.
type EnvironmentConfig struct {
	CabinetX      float64 `yaml:"cabinet_x"`
	CabinetY      float64 `yaml:"cabinet_y"`
	CabinetWidth  float64 `yaml:"cabinet_width"`
	CabinetHeight float64 `yaml:"cabinet_height"`
	DoorOffsetX   float64 `yaml:"door_offset_x"`
	DoorOffsetY   float64 `yaml:"door_offset_y"`
	DoorWidth     float64 `yaml:"door_width"`
	DoorHeight    float64 `yaml:"door_height"`
	BoardOffsetX  float64 `yaml:"board_offset_x"`
	BoardOffsetY  float64 `yaml:"board_offset_y"`
}

// BytesConfig defines the floating pickups.
type BytesConfig struct {
	SpawnRate  float64 `yaml:"spawn_rate"`  // per-tick spawn probability at zero speed
	EdgeMargin float64 `yaml:"edge_margin"` // keep-out width at the building edges
	FloatMin   float64 `yaml:"float_min"`   // lowest hover height above the roof
	FloatMax   float64 `yaml:"float_max"`   // highest hover height above the roof
	FloatSpeed float64 `yaml:"float_speed"` // divisor of the hover step
	Size       float64 `yaml:"size"`
	Gain       float64 `yaml:"gain"` // resource restored per pickup
}

// RestartConfig defines the revival rules.
type RestartConfig struct {
	Cooldown float64 `yaml:"cooldown"` // minimum seconds dead before restart is accepted
}

// SegmentWidth returns the world width of one building segment.
func (c RunnerConfig) SegmentWidth() float64 {
	return c.World.UnitWidth * c.World.SpriteScale
}

// JumpSpeed returns the vertical take-off speed needed to reach the
// configured jump height under the world gravity.
func (c RunnerConfig) JumpSpeed() float64 {
	return math.Sqrt(2 * c.Player.JumpHeight * math.Abs(c.World.Gravity))
}
