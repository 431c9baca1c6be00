// Package ecs is a small flat entity table for the runner.
//
// Entities are plain structs with optional component pointers and a tag
// bitmask. Children hold a position local to their parent and are removed
// together with it. Queries return ids in ascending order so every system
// sees the same iteration order for the same world.
package ecs

import (
	"slices"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/core"
)

// EntityID identifies an entity. Zero is never issued.
type EntityID uint64

// Tag is a bitmask of entity markers.
type Tag uint32

const (
	TagPlayer Tag = 1 << iota
	TagPlatform
	TagScrollable
	TagGround
	TagGroundChecker
	TagSensor
	TagCabinet
	TagDoor
	TagBoard
	TagByte
	TagPreventByte
	TagWall
)

// Has reports whether every bit of o is set.
func (t Tag) Has(o Tag) bool {
	return t&o == o
}

// Entity is one row of the world table.
type Entity struct {
	ID     EntityID
	Tags   Tag
	Parent EntityID
	Local  core.Vec2 // relative to Parent, or world position for roots

	Collider   *components.Collider
	Body       *components.Body
	Locomotion *components.Locomotion
	Resource   *components.Resource
	Grounded   *components.Grounded
	Platform   *components.Platform
	Byte       *components.Byte
	Score      *components.Score
	Pose       *components.Pose
	Sprite     *components.Sprite

	children []EntityID
}

// Children returns a copy of the direct child ids.
func (e *Entity) Children() []EntityID {
	return slices.Clone(e.children)
}

// World owns every live entity.
type World struct {
	nextID   EntityID
	entities map[EntityID]*Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		nextID:   1,
		entities: make(map[EntityID]*Entity),
	}
}

// Spawn creates a root entity at pos.
func (w *World) Spawn(tags Tag, pos core.Vec2) *Entity {
	e := &Entity{ID: w.nextID, Tags: tags, Local: pos}
	w.nextID++
	w.entities[e.ID] = e
	return e
}

// SpawnChild creates an entity attached to parent at the given local offset.
// It returns nil if the parent does not exist.
func (w *World) SpawnChild(parent EntityID, tags Tag, offset core.Vec2) *Entity {
	p, ok := w.entities[parent]
	if !ok {
		return nil
	}
	e := w.Spawn(tags, offset)
	e.Parent = parent
	p.children = append(p.children, e.ID)
	return e
}

// Get looks up an entity.
func (w *World) Get(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Despawn removes an entity and all of its descendants.
// It returns the number of entities removed.
func (w *World) Despawn(id EntityID) int {
	e, ok := w.entities[id]
	if !ok {
		return 0
	}
	if p, ok := w.entities[e.Parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c EntityID) bool { return c == id })
	}
	return w.despawnTree(e)
}

func (w *World) despawnTree(e *Entity) int {
	n := 1
	for _, c := range e.children {
		if child, ok := w.entities[c]; ok {
			n += w.despawnTree(child)
		}
	}
	delete(w.entities, e.ID)
	return n
}

// Query returns the ids of all entities carrying every bit of tags,
// in ascending id order. A zero tag matches everything.
func (w *World) Query(tags Tag) []EntityID {
	ids := make([]EntityID, 0, len(w.entities))
	for id, e := range w.entities {
		if e.Tags.Has(tags) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// QueryRoots is Query restricted to entities without a parent.
func (w *World) QueryRoots(tags Tag) []EntityID {
	return slices.DeleteFunc(w.Query(tags), func(id EntityID) bool {
		return w.entities[id].Parent != 0
	})
}

// Single returns the only entity carrying tags.
// It fails when there are none or more than one.
func (w *World) Single(tags Tag) (*Entity, bool) {
	var found *Entity
	for _, e := range w.entities {
		if !e.Tags.Has(tags) {
			continue
		}
		if found != nil {
			return nil, false
		}
		found = e
	}
	return found, found != nil
}

// Count returns the number of entities carrying tags.
func (w *World) Count(tags Tag) int {
	n := 0
	for _, e := range w.entities {
		if e.Tags.Has(tags) {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// ChildWith returns the first child of parent carrying tags.
func (w *World) ChildWith(parent EntityID, tags Tag) (*Entity, bool) {
	p, ok := w.entities[parent]
	if !ok {
		return nil, false
	}
	for _, c := range p.children {
		if e, ok := w.entities[c]; ok && e.Tags.Has(tags) {
			return e, true
		}
	}
	return nil, false
}

// Root walks up the parent chain.
func (w *World) Root(id EntityID) EntityID {
	for {
		e, ok := w.entities[id]
		if !ok || e.Parent == 0 {
			return id
		}
		id = e.Parent
	}
}

// WorldPosition sums local offsets up the parent chain.
func (w *World) WorldPosition(id EntityID) core.Vec2 {
	var pos core.Vec2
	for {
		e, ok := w.entities[id]
		if !ok {
			return pos
		}
		pos = pos.Add(e.Local)
		if e.Parent == 0 {
			return pos
		}
		id = e.Parent
	}
}

// Bounds returns the world-space collider box of an entity.
func (w *World) Bounds(id EntityID) (core.AABB, bool) {
	e, ok := w.entities[id]
	if !ok || e.Collider == nil {
		return core.AABB{}, false
	}
	return core.BoxAt(w.WorldPosition(id), e.Collider.HalfW, e.Collider.HalfH), true
}
