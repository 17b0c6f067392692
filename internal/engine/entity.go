// Package engine holds the loop toolkit shared by the real-time games:
// tagged entities, a single collision dispatch, spawn policies, an entity
// store with deferred removal, the lifecycle controller and an owned
// scheduler handle. Games are free not to use it.
package engine

import "github.com/vovakirdan/minigame-arcade/internal/core"

// Kind tags what role an entity plays in a game.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstacle
	KindCollectible
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Shape selects which collision formula applies to an entity.
type Shape int

const (
	ShapeBox    Shape = iota // X, Y is the top-left corner, W x H
	ShapeCircle              // X, Y is the center, R is the radius
)

// Status is a bit set of actor flags.
type Status uint8

const (
	StatusJumping Status = 1 << iota
	StatusSticky
	StatusPhasing
)

// Entity is a mutable game object with a position and a size.
type Entity struct {
	ID    int
	Kind  Kind
	Shape Shape

	X, Y  float64
	W, H  float64
	R     float64
	DX    float64 // Velocity in cells per tick
	DY    float64
	Speed float64 // Per-entity speed used by spawners and AI

	Tag    core.Color // Color/type tag for matching rules
	Value  int        // Points awarded or damage dealt
	Status Status
	Dead   bool
}

// NewBox creates a box-shaped entity.
func NewBox(kind Kind, x, y, w, h float64) Entity {
	return Entity{Kind: kind, Shape: ShapeBox, X: x, Y: y, W: w, H: h}
}

// NewCircle creates a circle-shaped entity centered at (x, y).
func NewCircle(kind Kind, x, y, r float64) Entity {
	return Entity{Kind: kind, Shape: ShapeCircle, X: x, Y: y, R: r}
}

// Has reports whether all the given status flags are set.
func (e *Entity) Has(s Status) bool {
	return e.Status&s == s
}

// SetStatus turns flags on or off.
func (e *Entity) SetStatus(s Status, on bool) {
	if on {
		e.Status |= s
	} else {
		e.Status &^= s
	}
}

// Move advances the entity by its velocity scaled by dt (Euler step).
func (e *Entity) Move(dt float64) {
	e.X += e.DX * dt
	e.Y += e.DY * dt
}

// Left, Top, Right and Bottom return the bounding box edges for either shape.
func (e *Entity) Left() float64 {
	if e.Shape == ShapeCircle {
		return e.X - e.R
	}
	return e.X
}

func (e *Entity) Top() float64 {
	if e.Shape == ShapeCircle {
		return e.Y - e.R
	}
	return e.Y
}

func (e *Entity) Right() float64 {
	if e.Shape == ShapeCircle {
		return e.X + e.R
	}
	return e.X + e.W
}

func (e *Entity) Bottom() float64 {
	if e.Shape == ShapeCircle {
		return e.Y + e.R
	}
	return e.Y + e.H
}

// Center returns the center point of the entity.
func (e *Entity) Center() (float64, float64) {
	if e.Shape == ShapeCircle {
		return e.X, e.Y
	}
	return e.X + e.W/2, e.Y + e.H/2
}

// Bounds returns the bounding box snapped to screen cells.
func (e *Entity) Bounds() core.Rect {
	x := int(e.Left())
	y := int(e.Top())
	w := int(e.Right()+0.999) - x
	h := int(e.Bottom()+0.999) - y
	return core.NewRect(x, y, core.Max(w, 1), core.Max(h, 1))
}

// Cell returns the screen cell the entity's anchor sits on.
func (e *Entity) Cell() (int, int) {
	return int(e.X), int(e.Y)
}
