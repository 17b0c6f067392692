package engine

import "math"

// BoxesOverlap is the axis-aligned bounding-box test.
// Touching edges are not an overlap.
func BoxesOverlap(a, b *Entity) bool {
	return a.Left() < b.Right() && a.Right() > b.Left() &&
		a.Top() < b.Bottom() && a.Bottom() > b.Top()
}

// CirclesOverlap is the circle-distance test: sqrt(dx²+dy²) < r1+r2.
func CirclesOverlap(a, b *Entity) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy) < a.R+b.R
}

// CircleBoxOverlap tests a circle against a box using the closest point
// of the box to the circle center.
func CircleBoxOverlap(c, b *Entity) bool {
	nx := math.Max(b.X, math.Min(c.X, b.X+b.W))
	ny := math.Max(b.Y, math.Min(c.Y, b.Y+b.H))
	return math.Hypot(c.X-nx, c.Y-ny) < c.R
}

// Collides dispatches to the formula matching the two shapes.
// The result does not depend on argument order.
func Collides(a, b *Entity) bool {
	switch {
	case a.Shape == ShapeBox && b.Shape == ShapeBox:
		return BoxesOverlap(a, b)
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return CirclesOverlap(a, b)
	case a.Shape == ShapeCircle:
		return CircleBoxOverlap(a, b)
	default:
		return CircleBoxOverlap(b, a)
	}
}

// FirstHit returns the index of the first live entity in others that
// collides with e, or -1. Iteration order decides ties.
func FirstHit(e *Entity, others []Entity) int {
	for i := range others {
		o := &others[i]
		if o.Dead || o == e {
			continue
		}
		if Collides(e, o) {
			return i
		}
	}
	return -1
}

// ClampToBounds keeps an entity inside a w x h play area.
// Boxes satisfy 0 <= x <= w-W; circles keep their center in [r, w-r].
func ClampToBounds(e *Entity, w, h float64) {
	if e.Shape == ShapeCircle {
		e.X = clampF(e.X, e.R, w-e.R)
		e.Y = clampF(e.Y, e.R, h-e.R)
		return
	}
	e.X = clampF(e.X, 0, w-e.W)
	e.Y = clampF(e.Y, 0, h-e.H)
}

// Offscreen reports whether the entity lies fully outside a w x h area.
func Offscreen(e *Entity, w, h float64) bool {
	return e.Right() <= 0 || e.Left() >= w || e.Bottom() <= 0 || e.Top() >= h
}

func clampF(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
