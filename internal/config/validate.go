package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the cross-field constraints the simulation relies on.
// All failures are reported together.
func (c RunnerConfig) Validate() error {
	var errs []error

	p := c.Player
	if p.Mass <= 0 {
		errs = append(errs, invalid("player.mass must be positive"))
	}
	if p.ColliderWidth <= 0 || p.ColliderHeight <= 0 {
		errs = append(errs, invalid("player collider must have a positive size"))
	}
	if p.JumpHeight <= 0 {
		errs = append(errs, invalid("player.jump_height must be positive"))
	}
	if p.MaxVelocityX <= 0 {
		errs = append(errs, invalid("player.max_velocity_x must be positive"))
	}
	if p.InitVelocityX+p.VelocityBump > p.MaxVelocityX {
		errs = append(errs, invalid("init_velocity_x + velocity_bump (%g) exceeds max_velocity_x (%g)",
			p.InitVelocityX+p.VelocityBump, p.MaxVelocityX))
	}
	if p.CoyoteTime < 0 || p.JumpBuffering < 0 || p.JumpWindow < 0 || p.WalkingTimer < 0 {
		errs = append(errs, invalid("player timers must not be negative"))
	}

	r := c.Resource
	if r.Kind != ResourceStamina && r.Kind != ResourceMemory {
		errs = append(errs, invalid("resource.kind %q is unknown", r.Kind))
	}
	if r.Max <= 0 {
		errs = append(errs, invalid("resource.max must be positive"))
	}
	if r.Kind == ResourceMemory && r.DrainInterval <= 0 {
		errs = append(errs, invalid("resource.drain_interval must be positive for the memory gauge"))
	}

	w := c.World
	if w.Gravity >= 0 {
		errs = append(errs, invalid("world.gravity must point down (negative)"))
	}
	if w.MaxPlatforms < 1 {
		errs = append(errs, invalid("world.max_platforms must be at least 1"))
	}
	if w.CullBoundary >= 0 {
		errs = append(errs, invalid("world.cull_boundary must be negative"))
	}
	if w.UnitWidth <= 0 || w.SpriteScale <= 0 || w.ColumnWidth <= 0 {
		errs = append(errs, invalid("world unit, sprite and column sizes must be positive"))
	}

	t := c.Terrain
	if t.MinSpacing <= 0 || t.MaxSpacing < t.MinSpacing {
		errs = append(errs, invalid("terrain spacing [%g, %g] is not a valid range", t.MinSpacing, t.MaxSpacing))
	}
	if t.MaxY < t.MinY {
		errs = append(errs, invalid("terrain.max_y (%g) is below terrain.min_y (%g)", t.MaxY, t.MinY))
	}
	if band := t.MaxY - t.MinY; band > p.JumpHeight {
		errs = append(errs, invalid("terrain height band (%g) exceeds the jump height (%g)", band, p.JumpHeight))
	}
	if t.MinSegments < 0 || t.MaxSegments < t.MinSegments {
		errs = append(errs, invalid("terrain segments [%d, %d] is not a valid range", t.MinSegments, t.MaxSegments))
	}
	if w.DeathY >= t.MinY {
		errs = append(errs, invalid("world.death_y (%g) must be below terrain.min_y (%g)", w.DeathY, t.MinY))
	}

	if w.MaxPlatforms >= 1 && c.SegmentWidth() > 0 {
		// With the cap reached, the leftmost building still sits right of
		// the cull boundary; the narrowest possible chain from it must reach
		// past the lookahead.
		n := float64(w.MaxPlatforms)
		narrowest := float64(t.MinSegments+t.SegmentPad) * c.SegmentWidth()
		reach := w.CullBoundary + (n-0.5)*narrowest + (n-1)*t.MinSpacing
		if ahead := p.SpawnX + t.Lookahead; reach < ahead {
			errs = append(errs, invalid("%d platforms reach x=%g from the cull boundary, short of the lookahead x=%g",
				w.MaxPlatforms, reach, ahead))
		}

		// Jumps are locked during the warm-up walk, so the first roof has to
		// outlast it.
		first := float64(t.InitialSegments+t.SegmentPad-1) * c.SegmentWidth()
		if walk := w.ScrollFactor * p.InitVelocityX * p.WalkingTimer; first < walk {
			errs = append(errs, invalid("initial building ends %g past the spawn, before the warm-up walk of %g", first, walk))
		}
	}

	b := c.Bytes
	if b.SpawnRate < 0 || b.SpawnRate > 1 {
		errs = append(errs, invalid("bytes.spawn_rate must be within [0, 1]"))
	}
	if b.FloatMax < b.FloatMin {
		errs = append(errs, invalid("bytes.float_max is below bytes.float_min"))
	}

	if c.Restart.Cooldown < 0 {
		errs = append(errs, invalid("restart.cooldown must not be negative"))
	}

	return errors.Join(errs...)
}
