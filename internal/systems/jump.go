package systems

import (
	"math"

	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
)

// JumpController turns jump edges into impulses.
//
// A press arms the buffer and clears coyote time, so a press is honored on
// a later tick in which the player is (or has recently been) grounded while
// the buffer is still open. Releasing early inside the jump window applies
// a counter impulse for a short hop.
type JumpController struct {
	env *Env
}

// NewJumpController creates the jump system.
func NewJumpController(env *Env) *JumpController {
	return &JumpController{env: env}
}

// Impulse returns the magnitude of a full jump impulse for the given body mass.
func (s *JumpController) Impulse(mass float64) float64 {
	g := math.Abs(s.env.Physics.Gravity().Y)
	return mass * math.Sqrt(2*s.env.Config.Player.JumpHeight*g)
}

func (s *JumpController) Run(ctx Context) Context {
	if !ctx.Running() {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	sensor, ok := s.env.groundSensor(p.ID)
	if !ok {
		return ctx
	}

	pc := s.env.Config.Player
	rc := s.env.Config.Resource
	jump := &p.Locomotion.Jump
	res := p.Resource

	if sensor.Grounded.Value {
		jump.Coyote = pc.CoyoteTime
		if res != nil {
			res.Add(rc.RecoveryRate * ctx.Dt)
		}
	} else {
		jump.Coyote -= ctx.Dt
	}

	if ctx.Input.Pressed(core.ActionJump) {
		jump.Coyote = 0
		jump.Press = 0
		jump.Buffering = pc.JumpBuffering
	} else {
		jump.Buffering -= ctx.Dt
	}

	impulse := s.Impulse(s.env.Physics.Mass(p.ID))
	if jump.Buffering > 0 && jump.Coyote > 0 && (res == nil || res.Value > 0) {
		s.env.Physics.ApplyImpulse(p.ID, core.V2(0, impulse))
		jump.Buffering = 0
		jump.Rising = true
	}

	if jump.Rising {
		jump.Press += ctx.Dt
		if res != nil {
			res.Add(-rc.RecoveryRate * rc.RiseDrainFactor * ctx.Dt)
		}

		if jump.Press < pc.JumpWindow && ctx.Input.Released(core.ActionJump) {
			jump.Press = 0
			s.env.Physics.ApplyImpulse(p.ID, core.V2(0, -math.Exp(-pc.ShortHopDecay)*impulse))
		}

		if p.Body != nil && p.Body.Vel.Y < 0 {
			p.Body.GravityScale = pc.FallGravity
			jump.Rising = false
		}
	}
	return ctx
}

// ResourceDrain applies the memory gauge's passive drain while running.
// The stamina gauge has no passive drain.
type ResourceDrain struct {
	env *Env
}

// NewResourceDrain creates the passive drain system.
func NewResourceDrain(env *Env) *ResourceDrain {
	return &ResourceDrain{env: env}
}

func (s *ResourceDrain) Run(ctx Context) Context {
	if !ctx.Running() {
		return ctx
	}
	p, ok := s.env.player()
	if !ok || p.Resource == nil || p.Resource.Kind != config.ResourceMemory {
		return ctx
	}
	if n := p.Resource.DrainTimer.Tick(ctx.Dt); n > 0 {
		p.Resource.Add(-float64(n) * s.env.Config.Resource.PassiveDrain)
	}
	return ctx
}
