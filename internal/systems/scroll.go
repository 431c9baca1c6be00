package systems

import "github.com/vovakirdan/malformed/internal/ecs"

// Scroll moves every root scrollable left by scroll_factor·velocity·dt.
// Children follow their parents through local offsets.
type Scroll struct {
	env *Env
}

// NewScroll creates the scroll system.
func NewScroll(env *Env) *Scroll {
	return &Scroll{env: env}
}

func (s *Scroll) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	dx := s.env.Config.World.ScrollFactor * p.Locomotion.VelocityX * ctx.Dt
	if dx == 0 {
		return ctx
	}
	for _, id := range s.env.World.QueryRoots(ecs.TagScrollable) {
		e, _ := s.env.World.Get(id)
		e.Local.X -= dx
	}
	return ctx
}

// Despawn removes scrolled-out roots at or behind the cull boundary,
// together with their children. It is the only removal path for terrain.
type Despawn struct {
	env *Env
}

// NewDespawn creates the despawn system.
func NewDespawn(env *Env) *Despawn {
	return &Despawn{env: env}
}

func (s *Despawn) Run(ctx Context) Context {
	w := s.env.World
	cull := s.env.Config.World.CullBoundary
	for _, id := range w.QueryRoots(ecs.TagScrollable) {
		e, _ := w.Get(id)
		if e.Local.X > cull {
			continue
		}
		n := w.Despawn(id)
		s.env.Log.Debug("despawned", "id", id, "x", e.Local.X, "entities", n)
	}
	return ctx
}
