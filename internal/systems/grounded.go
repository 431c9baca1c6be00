package systems

import "github.com/vovakirdan/malformed/internal/ecs"

// GroundedDetector sets Grounded on every checker entity that overlaps any
// entity of the ground set. The ground set is a tag chosen at construction,
// so the same detector serves the player's foot sensor (against terrain) and
// the byte pickups (against the player).
type GroundedDetector struct {
	env     *Env
	checker ecs.Tag
	ground  ecs.Tag
}

// NewGroundedDetector creates a detector for checkers against ground.
func NewGroundedDetector(env *Env, checker, ground ecs.Tag) *GroundedDetector {
	return &GroundedDetector{env: env, checker: checker, ground: ground}
}

// Run recomputes every checker from scratch, so running it twice in a tick
// changes nothing.
func (d *GroundedDetector) Run(ctx Context) Context {
	w := d.env.World
	grounds := w.Query(d.ground)

	for _, id := range w.Query(d.checker) {
		e, _ := w.Get(id)
		if e.Grounded == nil {
			continue
		}
		root := w.Root(id)
		e.Grounded.Value = false
		for _, gid := range grounds {
			if gid == id || w.Root(gid) == root {
				continue
			}
			if d.env.Physics.Overlaps(id, gid) {
				e.Grounded.Value = true
				break
			}
		}
	}
	return ctx
}
