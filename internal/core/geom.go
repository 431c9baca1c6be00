// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Vec2 is a point or displacement in world space. Y grows upwards.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for constructing a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// AABB is an axis-aligned box in world space used for overlap queries.
type AABB struct {
	Min, Max Vec2
}

// BoxAt builds a box centered on c with the given half extents.
func BoxAt(c Vec2, halfW, halfH float64) AABB {
	return AABB{
		Min: Vec2{X: c.X - halfW, Y: c.Y - halfH},
		Max: Vec2{X: c.X + halfW, Y: c.Y + halfH},
	}
}

// Left returns the x-coordinate of the left edge.
func (b AABB) Left() float64 { return b.Min.X }

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 { return b.Max.X }

// Top returns the y-coordinate of the upper edge.
func (b AABB) Top() float64 { return b.Max.Y }

// Bottom returns the y-coordinate of the lower edge.
func (b AABB) Bottom() float64 { return b.Min.Y }

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	if b.Min.X >= o.Max.X || o.Min.X >= b.Max.X {
		return false
	}
	if b.Min.Y >= o.Max.Y || o.Min.Y >= b.Max.Y {
		return false
	}
	return true
}

// Rect is an integer rectangle in screen cells. Y grows downwards.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
