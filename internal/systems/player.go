package systems

import (
	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// footGap is the gap between the player's feet and the bottom of the
// ground sensor.
const footGap = 2.0

// SetupPlayer spawns the player body with its ground sensor child.
// The player starts walking at the initial speed with a full gauge.
func SetupPlayer(env *Env) *ecs.Entity {
	pc := env.Config.Player
	rc := env.Config.Resource

	p := env.World.Spawn(ecs.TagPlayer, core.V2(pc.SpawnX, pc.SpawnY))
	p.Collider = &components.Collider{HalfW: pc.ColliderWidth / 2, HalfH: pc.ColliderHeight / 2}
	p.Body = &components.Body{Mass: pc.Mass, GravityScale: pc.RiseGravity}
	p.Locomotion = &components.Locomotion{
		VelocityX:     pc.InitVelocityX,
		AccelerationX: pc.InitAccelerationX,
		Warmup:        components.NewTimer(pc.WalkingTimer),
	}
	p.Resource = &components.Resource{
		Kind:       rc.Kind,
		Value:      rc.Max,
		Max:        rc.Max,
		DrainTimer: components.NewRepeatingTimer(rc.DrainInterval),
	}
	p.Score = &components.Score{}
	pose := components.PoseWalking
	p.Pose = &pose

	sensor := env.World.SpawnChild(p.ID, ecs.TagGroundChecker|ecs.TagSensor,
		core.V2(0, -(pc.ColliderHeight/2 + footGap)))
	sensor.Collider = &components.Collider{HalfW: pc.ColliderWidth / 2, HalfH: footGap, Sensor: true}
	sensor.Grounded = &components.Grounded{}
	return p
}

// RestartPlayer puts a freshly spawned player straight into the running
// phase at the revival speed.
func RestartPlayer(env *Env, ctx Context) Context {
	p, ok := env.player()
	if !ok {
		return ctx
	}
	pc := env.Config.Player
	p.Locomotion.VelocityX = pc.InitVelocityX + pc.VelocityBump
	*p.Pose = components.PoseRunning
	ctx.Movement = Running
	return ctx
}
