// Package physics integrates dynamic bodies over the entity world and
// resolves them against solid ground colliders.
package physics

import (
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// landingSlack is how far below a top surface a body may have been on the
// previous step and still be treated as landing on it.
const landingSlack = 1.0

// Engine is a minimal AABB rigid-body stepper.
// Only root entities with a Body are integrated; everything else is kinematic
// and moved directly by systems.
type Engine struct {
	world   *ecs.World
	gravity core.Vec2
	solids  ecs.Tag
}

// New creates an engine over w. Solid bodies are entities carrying the
// solids tag and a non-sensor collider.
func New(w *ecs.World, gravity float64, solids ecs.Tag) *Engine {
	return &Engine{
		world:   w,
		gravity: core.V2(0, gravity),
		solids:  solids,
	}
}

// Gravity returns the world gravity vector.
func (e *Engine) Gravity() core.Vec2 {
	return e.gravity
}

// Mass returns the mass of a body, or zero for kinematic entities.
func (e *Engine) Mass(id ecs.EntityID) float64 {
	ent, ok := e.world.Get(id)
	if !ok || ent.Body == nil {
		return 0
	}
	return ent.Body.Mass
}

// ApplyImpulse changes the velocity of a body by impulse/mass.
func (e *Engine) ApplyImpulse(id ecs.EntityID, impulse core.Vec2) {
	ent, ok := e.world.Get(id)
	if !ok || ent.Body == nil || ent.Body.Mass <= 0 {
		return
	}
	ent.Body.Vel = ent.Body.Vel.Add(impulse.Scale(1 / ent.Body.Mass))
}

// Overlaps reports whether the colliders of a and b intersect.
func (e *Engine) Overlaps(a, b ecs.EntityID) bool {
	ba, ok := e.world.Bounds(a)
	if !ok {
		return false
	}
	bb, ok := e.world.Bounds(b)
	if !ok {
		return false
	}
	return ba.Overlaps(bb)
}

// Step integrates every body by dt and resolves collisions with solids.
func (e *Engine) Step(dt float64) {
	if dt <= 0 {
		return
	}
	solids := e.world.Query(e.solids)

	for _, id := range e.world.QueryRoots(0) {
		ent, _ := e.world.Get(id)
		if ent.Body == nil || ent.Collider == nil {
			continue
		}
		body := ent.Body
		body.Vel = body.Vel.Add(e.gravity.Scale(body.GravityScale * dt))

		prev, _ := e.world.Bounds(id)
		ent.Local = ent.Local.Add(body.Vel.Scale(dt))

		for _, sid := range solids {
			if sid == id {
				continue
			}
			other, _ := e.world.Get(sid)
			if other.Collider == nil || other.Collider.Sensor {
				continue
			}
			e.resolve(ent, prev, sid)
		}
	}
}

// resolve pushes ent out of the solid sid, choosing the face it came through.
func (e *Engine) resolve(ent *ecs.Entity, prev core.AABB, sid ecs.EntityID) {
	cur, _ := e.world.Bounds(ent.ID)
	wall, _ := e.world.Bounds(sid)
	if !cur.Overlaps(wall) {
		return
	}

	halfW, halfH := ent.Collider.HalfW, ent.Collider.HalfH
	switch {
	case prev.Bottom() >= wall.Top()-landingSlack && ent.Body.Vel.Y <= 0:
		ent.Local.Y = wall.Top() + halfH
		ent.Body.Vel.Y = 0
	case prev.Top() <= wall.Bottom()+landingSlack && ent.Body.Vel.Y > 0:
		ent.Local.Y = wall.Bottom() - halfH
		ent.Body.Vel.Y = 0
	case cur.Center().X < wall.Center().X:
		ent.Local.X = wall.Left() - halfW
		ent.Body.Vel.X = 0
	default:
		ent.Local.X = wall.Right() + halfW
		ent.Body.Vel.X = 0
	}
}
