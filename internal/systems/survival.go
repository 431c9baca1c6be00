package systems

import (
	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// SurvivalMonitor kills the player when it falls below the death line or,
// with the memory gauge, when memory runs out. Death removes the player
// and its children; the rest of the world stays frozen until restart.
type SurvivalMonitor struct {
	env *Env
}

// NewSurvivalMonitor creates the survival system.
func NewSurvivalMonitor(env *Env) *SurvivalMonitor {
	return &SurvivalMonitor{env: env}
}

func (s *SurvivalMonitor) Run(ctx Context) Context {
	if ctx.Life != Alive {
		ctx.DeadFor += ctx.Dt
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}

	cause := ""
	switch {
	case s.env.World.WorldPosition(p.ID).Y <= s.env.Config.World.DeathY:
		cause = CauseFell
	case p.Resource != nil && p.Resource.Kind == config.ResourceMemory && p.Resource.Empty():
		cause = CauseMemory
	}
	if cause == "" {
		return ctx
	}

	score := 0
	if p.Score != nil {
		score = p.Score.Rounded()
	}
	s.env.World.Despawn(p.ID)
	ctx.Life = Dead
	ctx.DeadFor = 0
	ctx.Cause = cause
	s.env.Log.Info("player died", "cause", cause, "score", score, "tick", ctx.Tick)
	return ctx
}

// Restart revives the player once the restart key is pressed after the
// cooldown. The world is rebuilt in a fixed order: terrain, environment,
// player, then the running-phase reset.
type Restart struct {
	env *Env
}

// NewRestart creates the restart orchestrator.
func NewRestart(env *Env) *Restart {
	return &Restart{env: env}
}

func (s *Restart) Run(ctx Context) Context {
	if ctx.Life != Dead || ctx.DeadFor < s.env.Config.Restart.Cooldown {
		return ctx
	}
	if !ctx.Input.Pressed(core.ActionRestart) {
		return ctx
	}

	w := s.env.World
	for _, tag := range []ecs.Tag{ecs.TagPlatform, ecs.TagPlayer, ecs.TagCabinet, ecs.TagBoard} {
		for _, id := range w.Query(tag) {
			w.Despawn(id)
		}
	}

	ctx = Rebuild(s.env, ctx)
	ctx = RestartPlayer(s.env, ctx)
	ctx.Life = Alive
	ctx.DeadFor = 0
	ctx.Cause = ""
	s.env.Log.Info("player revived", "tick", ctx.Tick)
	return ctx
}

// Rebuild runs the setup stages in order.
func Rebuild(env *Env, ctx Context) Context {
	SetupTerrain(env)
	SetupEnvironment(env)
	SetupPlayer(env)
	return ctx
}
