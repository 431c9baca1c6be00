package systems

import (
	"math"
	"slices"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// Growth scales gaps with speed: 1 at rest, 2 at the velocity cap.
func Growth(velocityX, maxVelocityX float64) float64 {
	if maxVelocityX <= 0 {
		return 1
	}
	return core.ClampF(1+velocityX/maxVelocityX, 1, 2)
}

// platformRef is the part of a platform the generator reads.
type platformRef struct {
	x, y, width float64
}

// TerrainGenerator appends one building past the rightmost one per tick
// while fewer than max_platforms exist. It never removes anything.
type TerrainGenerator struct {
	env *Env
}

// NewTerrainGenerator creates the generator.
func NewTerrainGenerator(env *Env) *TerrainGenerator {
	return &TerrainGenerator{env: env}
}

func (s *TerrainGenerator) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	s.Generate(p.Locomotion.VelocityX)
	return ctx
}

// Generate spawns at most one platform and reports whether it did.
func (s *TerrainGenerator) Generate(velocityX float64) (*ecs.Entity, bool) {
	cfg := s.env.Config
	tc := cfg.Terrain
	w := s.env.World

	prev, count := s.rightmost()
	if count >= cfg.World.MaxPlatforms {
		return nil, false
	}

	rng := s.env.Rand
	segments := tc.MinSegments + rng.Intn(tc.MaxSegments-tc.MinSegments+1)
	width := s.segmentWidth(segments)
	growth := Growth(velocityX, cfg.Player.MaxVelocityX)
	spacing := uniform(rng.Float64(), tc.MinSpacing, tc.MaxSpacing) * growth

	x := prev.x + (prev.width+width)/2 + spacing
	y := uniform(rng.Float64(), tc.MinY, tc.MaxY)

	e := SpawnPlatform(w, cfg.World.BuildingHeight, core.V2(x, y), components.Platform{
		Width:       width,
		Segments:    segments,
		HeightClass: components.ClassifyHeight(y, tc.MinY, tc.MaxY),
	})
	s.env.Log.Debug("platform generated", "id", e.ID, "x", x, "y", y, "width", width, "spacing", spacing)
	return e, true
}

// rightmost snapshots the live platforms and returns the one furthest
// right, or the configured anchor when none exist.
func (s *TerrainGenerator) rightmost() (platformRef, int) {
	w := s.env.World
	tc := s.env.Config.Terrain

	ids := w.Query(ecs.TagPlatform)
	refs := make([]platformRef, 0, len(ids))
	for _, id := range ids {
		e, _ := w.Get(id)
		if e.Platform == nil {
			continue
		}
		pos := w.WorldPosition(id)
		refs = append(refs, platformRef{x: pos.X, y: pos.Y, width: e.Platform.Width})
	}
	if len(refs) == 0 {
		return platformRef{x: tc.AnchorX, y: tc.MinY, width: tc.AnchorWidth}, 0
	}
	slices.SortStableFunc(refs, func(a, b platformRef) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		}
		return 0
	})
	return refs[len(refs)-1], len(refs)
}

// segmentWidth is the world width of a building with n middle segments.
func (s *TerrainGenerator) segmentWidth(n int) float64 {
	return float64(n+s.env.Config.Terrain.SegmentPad) * s.env.Config.SegmentWidth()
}

// SetupTerrain spawns the initial building under the player, starting one
// segment behind the spawn point. It is born without a byte slot.
func SetupTerrain(env *Env) *ecs.Entity {
	cfg := env.Config
	tc := cfg.Terrain

	width := float64(tc.InitialSegments+tc.SegmentPad) * cfg.SegmentWidth()
	pos := core.V2(cfg.Player.SpawnX-cfg.SegmentWidth()+width/2, tc.MinY)
	e := SpawnPlatform(env.World, cfg.World.BuildingHeight, pos, components.Platform{
		Width:       width,
		Segments:    tc.InitialSegments,
		HeightClass: components.ClassifyHeight(pos.Y, tc.MinY, tc.MaxY),
	})
	e.Tags |= ecs.TagPreventByte
	return e
}

// SpawnPlatform creates a static, scrollable building centered at pos.
func SpawnPlatform(w *ecs.World, height float64, pos core.Vec2, p components.Platform) *ecs.Entity {
	e := w.Spawn(ecs.TagPlatform|ecs.TagGround|ecs.TagScrollable, pos)
	e.Collider = &components.Collider{HalfW: p.Width / 2, HalfH: height / 2}
	e.Platform = &p
	return e
}

// RoofY returns the world y of a platform's roof.
func RoofY(w *ecs.World, id ecs.EntityID) (float64, bool) {
	b, ok := w.Bounds(id)
	if !ok {
		return math.NaN(), false
	}
	return b.Top(), true
}

func uniform(f, lo, hi float64) float64 {
	return lo + f*(hi-lo)
}
