package systems

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
	"github.com/vovakirdan/malformed/internal/physics"
)

// RunStats summarizes the current (or last) run. It survives the player's
// death so the platform can report it.
type RunStats struct {
	Score    int
	Bytes    int
	Distance float64
	Cause    string
}

// Simulation owns a world and steps its systems in a fixed order.
type Simulation struct {
	env     *Env
	ctx     Context
	systems []System
	stats   RunStats
}

// Option customizes a simulation.
type Option func(*Env)

// WithLogger routes simulation events to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) { e.Log = l }
}

// NewSimulation creates a simulation. The world is built on the first Step.
func NewSimulation(cfg config.RunnerConfig, rc core.RuntimeConfig, opts ...Option) *Simulation {
	w := ecs.NewWorld()
	env := &Env{
		World:   w,
		Config:  cfg,
		Screen:  rc,
		Rand:    rand.New(rand.NewSource(rc.Seed)),
		Physics: physics.New(w, cfg.World.Gravity, ecs.TagGround),
		Log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(env)
	}

	s := &Simulation{
		env: env,
		ctx: Context{Dt: rc.Dt()},
	}
	s.systems = []System{
		NewGroundedDetector(env, ecs.TagGroundChecker, ecs.TagGround),
		NewGroundedDetector(env, ecs.TagByte, ecs.TagPlayer),
		NewWarmup(env),
		NewRunningVelocity(env),
		NewJumpController(env),
		NewResourceDrain(env),
		NewPoseSelector(env),
		NewPhysicsStep(env),
		NewScroll(env),
		NewTerrainGenerator(env),
		NewByteSpawner(env),
		NewByteFloat(env),
		NewByteCollector(env),
		NewCabinetDoor(env),
		NewDespawn(env),
		NewSurvivalMonitor(env),
		NewRestart(env),
		NewScoreAccrual(env),
	}
	return s
}

// Step advances the simulation by one tick with the given input edges.
func (s *Simulation) Step(input core.InputFrame) Context {
	ctx := s.ctx
	ctx.Input = input

	if input.Pressed(core.ActionPause) && ctx.Life == Alive {
		ctx.Paused = !ctx.Paused
	}
	if ctx.Paused {
		ctx.Input = core.InputFrame{}
		s.ctx = ctx
		return ctx
	}

	if ctx.Assets == AssetsLoading {
		ctx.Assets = AssetsReady
		ctx = Rebuild(s.env, ctx)
		s.stats = RunStats{}
	}

	wasDead := ctx.Life == Dead
	for _, sys := range s.systems {
		ctx = sys.Run(ctx)
	}
	ctx.Tick++

	if wasDead && ctx.Life == Alive {
		s.stats = RunStats{}
	}
	s.track(ctx)

	ctx.Input = core.InputFrame{}
	s.ctx = ctx
	return ctx
}

func (s *Simulation) track(ctx Context) {
	if ctx.Life == Dead {
		s.stats.Cause = ctx.Cause
		return
	}
	p, ok := s.env.player()
	if !ok {
		return
	}
	if p.Score != nil {
		s.stats.Score = p.Score.Rounded()
		s.stats.Bytes = p.Score.Bytes
	}
	s.stats.Distance += s.env.Config.World.ScrollFactor * p.Locomotion.VelocityX * ctx.Dt
}

// Context returns the phase state after the last tick.
func (s *Simulation) Context() Context {
	return s.ctx
}

// Stats returns the current run summary.
func (s *Simulation) Stats() RunStats {
	return s.stats
}

// World exposes the entity table for rendering and tests.
func (s *Simulation) World() *ecs.World {
	return s.env.World
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() config.RunnerConfig {
	return s.env.Config
}

// Player returns the live player entity.
func (s *Simulation) Player() (*ecs.Entity, bool) {
	return s.env.player()
}

// Grounded reports whether the player's ground sensor touches terrain.
func (s *Simulation) Grounded() bool {
	p, ok := s.env.player()
	if !ok {
		return false
	}
	sensor, ok := s.env.groundSensor(p.ID)
	return ok && sensor.Grounded.Value
}

// Resource returns the player's gauge, or a zero gauge when dead.
func (s *Simulation) Resource() components.Resource {
	p, ok := s.env.player()
	if !ok || p.Resource == nil {
		return components.Resource{Kind: s.env.Config.Resource.Kind, Max: s.env.Config.Resource.Max}
	}
	return *p.Resource
}
