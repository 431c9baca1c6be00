// Package components holds the plain data attached to runner entities.
// Components carry no behavior beyond small helpers; systems own the rules.
package components

import (
	"math"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
)

// Collider is an axis-aligned box centered on the entity position.
// Sensors report overlaps but never block bodies.
type Collider struct {
	HalfW  float64
	HalfH  float64
	Sensor bool
}

// Body makes an entity dynamic: the physics step integrates it under gravity.
type Body struct {
	Vel          core.Vec2
	Mass         float64
	GravityScale float64
}

// Timer counts elapsed seconds toward a duration.
// A repeating timer wraps around instead of staying finished.
type Timer struct {
	Duration  float64
	Elapsed   float64
	Repeating bool
	finished  bool
}

// NewTimer creates a timer that fires once after d seconds.
func NewTimer(d float64) Timer {
	return Timer{Duration: d}
}

// NewRepeatingTimer creates a timer that fires every d seconds.
func NewRepeatingTimer(d float64) Timer {
	return Timer{Duration: d, Repeating: true}
}

// Tick advances the timer and reports how many times it fired during dt.
func (t *Timer) Tick(dt float64) int {
	if t.finished && !t.Repeating {
		return 0
	}
	t.Elapsed += dt
	if t.Duration <= 0 {
		t.finished = true
		return 1
	}
	if t.Elapsed < t.Duration {
		return 0
	}
	if !t.Repeating {
		t.finished = true
		return 1
	}
	n := int(t.Elapsed / t.Duration)
	t.Elapsed = math.Mod(t.Elapsed, t.Duration)
	return n
}

// Finished reports whether a one-shot timer has fired.
func (t Timer) Finished() bool {
	return t.finished
}

// Reset rewinds the timer.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
}

// Jump tracks the coyote, buffering and short-hop windows.
type Jump struct {
	Coyote    float64
	Buffering float64
	Press     float64 // seconds since the jump fired, for the short-hop window
	Rising    bool
}

// Locomotion is the horizontal speed model of the player.
// The player never moves horizontally; the world scrolls by VelocityX.
type Locomotion struct {
	VelocityX     float64
	AccelerationX float64
	Jump          Jump
	Warmup        Timer
}

// Resource is the stamina or memory gauge.
type Resource struct {
	Kind       config.ResourceKind
	Value      float64
	Max        float64
	DrainTimer Timer
}

// Add changes the gauge by d, clamped to [0, Max].
func (r *Resource) Add(d float64) {
	r.Value = math.Max(0, math.Min(r.Max, r.Value+d))
}

// Ratio returns the fill level in [0, 1].
func (r Resource) Ratio() float64 {
	if r.Max <= 0 {
		return 0
	}
	return r.Value / r.Max
}

// Empty reports whether the gauge is exhausted.
func (r Resource) Empty() bool {
	return r.Value <= 0
}

// Grounded is written by the grounded detector on every ground checker.
type Grounded struct {
	Value bool
}

// HeightClass buckets building heights for rendering.
type HeightClass int

const (
	HeightLow HeightClass = iota
	HeightMid
	HeightHigh
)

// ClassifyHeight splits the [minY, maxY] band into thirds.
func ClassifyHeight(y, minY, maxY float64) HeightClass {
	span := maxY - minY
	if span <= 0 {
		return HeightMid
	}
	switch f := (y - minY) / span; {
	case f < 1.0/3:
		return HeightLow
	case f < 2.0/3:
		return HeightMid
	default:
		return HeightHigh
	}
}

// Platform is one generated building.
type Platform struct {
	Width       float64
	Segments    int
	HeightClass HeightClass
}

// Byte is a floating pickup attached to a platform.
// Offset is the local position relative to the platform center.
type Byte struct {
	Offset    core.Vec2
	Direction float64
}

// Score accumulates distance-based points and collected bytes.
type Score struct {
	Value float64
	Bytes int
}

// Rounded returns the score as reported to the player.
func (s Score) Rounded() int {
	return int(math.Round(s.Value))
}

// Pose is the player's animation state.
type Pose int

const (
	PoseIdle Pose = iota
	PoseWalking
	PoseRunning
	PoseRising
	PoseFalling
)

func (p Pose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PoseWalking:
		return "walking"
	case PoseRunning:
		return "running"
	case PoseRising:
		return "rising"
	case PoseFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Sprite selects a frame of a multi-frame prop such as the cabinet door.
type Sprite struct {
	Frame int
}
