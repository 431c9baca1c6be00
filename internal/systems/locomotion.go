package systems

import "math"

// Warmup drives the Walking phase: the warm-up timer ticks once per tick,
// and once it completes the phase becomes Running and the speed is bumped.
type Warmup struct {
	env *Env
}

// NewWarmup creates the warm-up system.
func NewWarmup(env *Env) *Warmup {
	return &Warmup{env: env}
}

func (s *Warmup) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	loco := p.Locomotion

	if ctx.Movement == Walking && loco.Warmup.Tick(ctx.Dt) > 0 {
		ctx.Movement = Running
		s.env.Log.Debug("warm-up finished", "velocity", loco.VelocityX)
	}

	bump := s.env.Config.Player.VelocityBump
	if ctx.Movement == Running && loco.VelocityX < bump {
		loco.VelocityX += (bump - loco.VelocityX) * (1 - math.Pow(ctx.Dt, 12))
	}
	return ctx
}

// RunningVelocity integrates the horizontal speed while running.
// Acceleration falls off linearly so the speed approaches the cap
// without ever crossing it.
type RunningVelocity struct {
	env *Env
}

// NewRunningVelocity creates the running speed system.
func NewRunningVelocity(env *Env) *RunningVelocity {
	return &RunningVelocity{env: env}
}

func (s *RunningVelocity) Run(ctx Context) Context {
	if !ctx.Running() {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	loco := p.Locomotion
	pc := s.env.Config.Player

	loco.VelocityX += loco.AccelerationX * ctx.Dt
	loco.VelocityX = math.Max(0, math.Min(pc.MaxVelocityX, loco.VelocityX))
	loco.AccelerationX = pc.InitAccelerationX * (1 - loco.VelocityX/pc.MaxVelocityX)
	return ctx
}
