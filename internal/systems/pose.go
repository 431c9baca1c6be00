package systems

import "github.com/vovakirdan/malformed/internal/components"

// verticalDeadband keeps tiny resting jitter from flipping the pose.
const verticalDeadband = 0.01

// PoseSelector picks the player pose from the ground sensor and velocity,
// and switches the gravity scale between rising and falling.
type PoseSelector struct {
	env *Env
}

// NewPoseSelector creates the pose system.
func NewPoseSelector(env *Env) *PoseSelector {
	return &PoseSelector{env: env}
}

func (s *PoseSelector) Run(ctx Context) Context {
	p, ok := s.env.player()
	if !ok || p.Body == nil || p.Pose == nil {
		return ctx
	}
	sensor, ok := s.env.groundSensor(p.ID)
	if !ok {
		return ctx
	}
	pc := s.env.Config.Player
	vx := p.Locomotion.VelocityX
	vy := p.Body.Vel.Y

	switch {
	case sensor.Grounded.Value && vx == 0:
		*p.Pose = components.PoseIdle
	case sensor.Grounded.Value && vx < pc.InitVelocityX+pc.VelocityBump:
		*p.Pose = components.PoseWalking
	case sensor.Grounded.Value:
		*p.Pose = components.PoseRunning
	case vy < -verticalDeadband:
		*p.Pose = components.PoseFalling
		p.Body.GravityScale = pc.FallGravity
	case vy > verticalDeadband:
		*p.Pose = components.PoseRising
		p.Body.GravityScale = pc.RiseGravity
	}
	return ctx
}

// PhysicsStep advances the physics collaborator. Paused and dead ticks
// never reach it.
type PhysicsStep struct {
	env *Env
}

// NewPhysicsStep creates the physics stage.
func NewPhysicsStep(env *Env) *PhysicsStep {
	return &PhysicsStep{env: env}
}

func (s *PhysicsStep) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	s.env.Physics.Step(ctx.Dt)
	return ctx
}
