package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollidesSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b Entity
		want bool
	}{
		{"boxes overlap", NewBox(KindPlayer, 0, 0, 4, 4), NewBox(KindObstacle, 2, 2, 4, 4), true},
		{"boxes touching edge", NewBox(KindPlayer, 0, 0, 4, 4), NewBox(KindObstacle, 4, 0, 4, 4), false},
		{"boxes apart", NewBox(KindPlayer, 0, 0, 2, 2), NewBox(KindObstacle, 10, 10, 2, 2), false},
		{"box inside box", NewBox(KindPlayer, 0, 0, 10, 10), NewBox(KindCollectible, 3, 3, 1, 1), true},
		{"circles overlap", NewCircle(KindPlayer, 0, 0, 2), NewCircle(KindCollectible, 3, 0, 2), true},
		{"circles touching", NewCircle(KindPlayer, 0, 0, 2), NewCircle(KindCollectible, 4, 0, 2), false},
		{"circles apart", NewCircle(KindPlayer, 0, 0, 1), NewCircle(KindCollectible, 5, 5, 1), false},
		{"circle over box", NewCircle(KindCollectible, 5, 1, 1.5), NewBox(KindPlayer, 0, 2, 10, 1), true},
		{"circle near box corner", NewCircle(KindCollectible, 0, 0, 1), NewBox(KindPlayer, 1, 1, 4, 4), false},
		{"circle center inside box", NewCircle(KindProjectile, 2, 2, 0.5), NewBox(KindObstacle, 0, 0, 4, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a, tt.b
			assert.Equal(t, tt.want, Collides(&a, &b), "Collides(a, b)")
			assert.Equal(t, tt.want, Collides(&b, &a), "Collides(b, a)")
		})
	}
}

func TestFirstHitOrder(t *testing.T) {
	player := NewBox(KindPlayer, 0, 0, 3, 3)
	others := []Entity{
		NewBox(KindObstacle, 10, 10, 1, 1),
		NewBox(KindObstacle, 1, 1, 1, 1),
		NewBox(KindObstacle, 2, 2, 1, 1),
	}
	assert.Equal(t, 1, FirstHit(&player, others))

	others[1].Dead = true
	assert.Equal(t, 2, FirstHit(&player, others), "dead entities are skipped")

	others[2].Dead = true
	assert.Equal(t, -1, FirstHit(&player, others))
}

func TestClampToBounds(t *testing.T) {
	const w, h = 40.0, 20.0

	for _, x := range []float64{-100, -1, 0, 5, 35, 36, 100} {
		e := NewBox(KindPlayer, x, 0, 5, 2)
		ClampToBounds(&e, w, h)
		assert.GreaterOrEqual(t, e.X, 0.0)
		assert.LessOrEqual(t, e.X, w-e.W)
	}

	c := NewCircle(KindPlayer, -3, 50, 2)
	ClampToBounds(&c, w, h)
	assert.Equal(t, 2.0, c.X)
	assert.Equal(t, h-2, c.Y)
}

func TestOffscreen(t *testing.T) {
	assert.True(t, Offscreen(&Entity{Shape: ShapeBox, X: -5, Y: 0, W: 5, H: 1}, 10, 10))
	assert.False(t, Offscreen(&Entity{Shape: ShapeBox, X: -4, Y: 0, W: 5, H: 1}, 10, 10))
	assert.True(t, Offscreen(&Entity{Shape: ShapeCircle, X: 5, Y: 12, R: 1}, 10, 10))
}

func TestEntityBoundsAndMove(t *testing.T) {
	e := NewBox(KindProjectile, 2, 3, 1, 2)
	e.DX, e.DY = 1, -0.5
	e.Move(2)
	assert.Equal(t, 4.0, e.X)
	assert.Equal(t, 2.0, e.Y)

	r := e.Bounds()
	assert.Equal(t, 4, r.X)
	assert.Equal(t, 2, r.Y)
	assert.Equal(t, 1, r.W)
	assert.Equal(t, 2, r.H)

	e.SetStatus(StatusJumping|StatusPhasing, true)
	assert.True(t, e.Has(StatusJumping))
	e.SetStatus(StatusJumping, false)
	assert.False(t, e.Has(StatusJumping))
	assert.True(t, e.Has(StatusPhasing))
}
