package systems

import (
	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

// Cabinet frames.
const (
	CabinetClosed = 0
	CabinetOpen   = 1
)

// SetupEnvironment spawns the rooftop exit cabinet with its door sensor,
// the street board beside it and the left boundary wall.
func SetupEnvironment(env *Env) {
	ec := env.Config.Environment
	wc := env.Config.World
	w := env.World

	// Cabinet sits on the roof, so its center is half a height up.
	cabinetPos := core.V2(ec.CabinetX, ec.CabinetY+ec.CabinetHeight/2)
	cabinet := w.Spawn(ecs.TagCabinet|ecs.TagScrollable, cabinetPos)
	cabinet.Collider = &components.Collider{HalfW: ec.CabinetWidth / 2, HalfH: ec.CabinetHeight / 2, Sensor: true}
	cabinet.Sprite = &components.Sprite{Frame: CabinetClosed}

	door := w.SpawnChild(cabinet.ID, ecs.TagDoor|ecs.TagSensor, core.V2(ec.DoorOffsetX, ec.DoorOffsetY))
	door.Collider = &components.Collider{HalfW: ec.DoorWidth / 2, HalfH: ec.DoorHeight / 2, Sensor: true}

	w.Spawn(ecs.TagBoard|ecs.TagScrollable, core.V2(ec.CabinetX+ec.BoardOffsetX, ec.CabinetY+ec.BoardOffsetY))

	if _, ok := w.Single(ecs.TagWall); !ok {
		viewW := float64(env.Screen.ScreenW) * wc.ColumnWidth
		wall := w.Spawn(ecs.TagWall|ecs.TagGround, core.V2(viewW/-2-wc.WallWidth/2, 0))
		wall.Collider = &components.Collider{HalfW: wc.WallWidth / 2, HalfH: -wc.DeathY * 2}
	}
}

// CabinetDoor opens the cabinet while the player stands in its doorway.
type CabinetDoor struct {
	env *Env
}

// NewCabinetDoor creates the door system.
func NewCabinetDoor(env *Env) *CabinetDoor {
	return &CabinetDoor{env: env}
}

func (s *CabinetDoor) Run(ctx Context) Context {
	w := s.env.World
	cabinet, ok := w.Single(ecs.TagCabinet)
	if !ok || cabinet.Sprite == nil {
		return ctx
	}
	door, ok := w.ChildWith(cabinet.ID, ecs.TagDoor)
	if !ok {
		return ctx
	}

	cabinet.Sprite.Frame = CabinetClosed
	if p, ok := s.env.player(); ok && s.env.Physics.Overlaps(p.ID, door.ID) {
		cabinet.Sprite.Frame = CabinetOpen
	}
	return ctx
}
