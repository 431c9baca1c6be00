package systems

import (
	"math"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// ByteSpawner gives each platform one chance per tick to grow a byte.
// Faster runs spawn fewer bytes. A platform that got a byte is marked
// PreventByte and never rolls again.
type ByteSpawner struct {
	env *Env
}

// NewByteSpawner creates the byte spawner.
func NewByteSpawner(env *Env) *ByteSpawner {
	return &ByteSpawner{env: env}
}

func (s *ByteSpawner) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	cfg := s.env.Config
	w := s.env.World
	chance := cfg.Bytes.SpawnRate * (1 - p.Locomotion.VelocityX/cfg.Player.MaxVelocityX)

	for _, id := range w.Query(ecs.TagPlatform) {
		e, _ := w.Get(id)
		if e.Tags.Has(ecs.TagPreventByte) || e.Platform == nil {
			continue
		}
		if s.env.Rand.Float64() >= chance {
			continue
		}
		e.Tags |= ecs.TagPreventByte

		mid := (e.Platform.Width - cfg.Bytes.EdgeMargin) / 2
		if mid <= 0 {
			continue
		}
		x := uniform(s.env.Rand.Float64(), -mid, mid)
		b := s.spawnByte(e, x)
		s.env.Log.Debug("byte spawned", "platform", id, "byte", b.ID, "x", x)
	}
	return ctx
}

func (s *ByteSpawner) spawnByte(platform *ecs.Entity, x float64) *ecs.Entity {
	bc := s.env.Config.Bytes
	roof := platform.Collider.HalfH
	offset := core.V2(x, roof+(bc.FloatMin+bc.FloatMax)/2)

	b := s.env.World.SpawnChild(platform.ID, ecs.TagByte|ecs.TagSensor, offset)
	b.Collider = &components.Collider{HalfW: bc.Size / 2, HalfH: bc.Size / 2, Sensor: true}
	b.Grounded = &components.Grounded{}
	b.Byte = &components.Byte{Offset: offset, Direction: 1}
	return b
}

// ByteFloat bobs every byte between float_min and float_max above its roof.
type ByteFloat struct {
	env *Env
}

// NewByteFloat creates the hover system.
func NewByteFloat(env *Env) *ByteFloat {
	return &ByteFloat{env: env}
}

func (s *ByteFloat) Run(ctx Context) Context {
	bc := s.env.Config.Bytes
	w := s.env.World
	step := (math.Sin(ctx.Dt) + 1) / bc.FloatSpeed

	for _, id := range w.Query(ecs.TagByte) {
		e, _ := w.Get(id)
		parent, ok := w.Get(e.Parent)
		if e.Byte == nil || !ok || parent.Collider == nil {
			continue
		}
		roof := parent.Collider.HalfH
		b := e.Byte
		b.Offset.Y += b.Direction * step

		if b.Offset.Y >= roof+bc.FloatMax {
			b.Direction = -1
		} else if b.Offset.Y <= roof+bc.FloatMin {
			b.Direction = 1
		}
		e.Local.Y = b.Offset.Y
	}
	return ctx
}

// ByteCollector removes bytes the player touched and refills the gauge.
// Contact comes from the byte's Grounded flag, written by a grounded
// detector whose ground set is the player.
type ByteCollector struct {
	env *Env
}

// NewByteCollector creates the pickup system.
func NewByteCollector(env *Env) *ByteCollector {
	return &ByteCollector{env: env}
}

func (s *ByteCollector) Run(ctx Context) Context {
	if ctx.Life != Alive {
		return ctx
	}
	p, ok := s.env.player()
	if !ok {
		return ctx
	}
	w := s.env.World
	for _, id := range w.Query(ecs.TagByte) {
		e, _ := w.Get(id)
		if e.Grounded == nil || !e.Grounded.Value {
			continue
		}
		w.Despawn(id)
		if p.Resource != nil {
			p.Resource.Add(s.env.Config.Bytes.Gain)
		}
		if p.Score != nil {
			p.Score.Bytes++
		}
		s.env.Log.Debug("byte collected", "byte", id)
	}
	return ctx
}
