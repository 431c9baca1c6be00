// Package systems implements the runner simulation as an ordered list of
// systems over the entity world.
//
// Phase state lives in Context, which every system receives and returns.
// Entity state lives in the world. Systems that need a singleton (the
// player, its ground sensor, the cabinet door) skip the tick when it is
// missing.
package systems

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// LifeState tracks whether the player is in play.
type LifeState int

const (
	Alive LifeState = iota
	Dead
)

func (s LifeState) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// MovementPhase is the one-way warm-up progression.
type MovementPhase int

const (
	Walking MovementPhase = iota
	Running
)

func (m MovementPhase) String() string {
	if m == Running {
		return "running"
	}
	return "walking"
}

// AssetReadiness gates world setup. The terminal build has nothing to load,
// so the simulation flips to AssetsReady on its first tick and runs setup
// exactly once on that transition.
type AssetReadiness int

const (
	AssetsLoading AssetReadiness = iota
	AssetsReady
)

// Death causes reported in Context.Cause.
const (
	CauseFell   = "fell"
	CauseMemory = "memory"
)

// Context is the per-tick phase state passed through every system.
type Context struct {
	Dt       float64
	Input    core.InputFrame
	Life     LifeState
	Movement MovementPhase
	Assets   AssetReadiness
	DeadFor  float64 // seconds since the last death
	Cause    string  // why the player last died
	Paused   bool
	Tick     uint64
}

// Running reports whether the locomotion rules are active.
func (c Context) Running() bool {
	return c.Life == Alive && c.Movement == Running
}

// Physics is the collision and impulse collaborator.
type Physics interface {
	Overlaps(a, b ecs.EntityID) bool
	ApplyImpulse(id ecs.EntityID, impulse core.Vec2)
	Mass(id ecs.EntityID) float64
	Gravity() core.Vec2
	Step(dt float64)
}

// Env bundles what systems share.
type Env struct {
	World   *ecs.World
	Physics Physics
	Config  config.RunnerConfig
	Screen  core.RuntimeConfig
	Rand    *rand.Rand
	Log     *log.Logger
}

// System is one stage of the tick.
type System interface {
	Run(ctx Context) Context
}

// SystemFunc adapts a function to System.
type SystemFunc func(ctx Context) Context

// Run calls f.
func (f SystemFunc) Run(ctx Context) Context {
	return f(ctx)
}

// player returns the player entity and its locomotion, if present.
func (e *Env) player() (*ecs.Entity, bool) {
	p, ok := e.World.Single(ecs.TagPlayer)
	if !ok || p.Locomotion == nil {
		return nil, false
	}
	return p, true
}

// groundSensor returns the player's foot sensor.
func (e *Env) groundSensor(player ecs.EntityID) (*ecs.Entity, bool) {
	s, ok := e.World.ChildWith(player, ecs.TagGroundChecker)
	if !ok || s.Grounded == nil {
		return nil, false
	}
	return s, true
}
