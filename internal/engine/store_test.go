package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSweepDuringIteration(t *testing.T) {
	s := NewStore()
	for i := 0; i < 6; i++ {
		s.Spawn(NewBox(KindObstacle, float64(i), 0, 1, 1))
	}

	visited := 0
	s.Each(func(e *Entity) {
		visited++
		if int(e.X)%2 == 0 {
			e.Dead = true
		}
	})
	require.Equal(t, 6, visited, "marking dead must not skip entities")

	assert.Equal(t, 3, s.Sweep())
	require.Equal(t, 3, s.Len())
	for i, e := range s.All() {
		assert.Equal(t, float64(2*i+1), e.X, "sweep preserves order")
	}
}

func TestStoreSpawnDuringEach(t *testing.T) {
	s := NewStore()
	s.Spawn(NewBox(KindPlayer, 0, 0, 1, 1))

	calls := 0
	s.Each(func(e *Entity) {
		calls++
		s.Spawn(NewBox(KindProjectile, 0, 0, 1, 1))
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count(KindProjectile))
}

func TestStoreRemoveOffscreenAndReset(t *testing.T) {
	s := NewStore()
	s.Spawn(NewBox(KindObstacle, -3, 0, 2, 1))
	id := s.Spawn(NewBox(KindObstacle, 3, 0, 2, 1))

	assert.Equal(t, 1, s.RemoveOffscreen(20, 10))
	s.Sweep()
	require.NotNil(t, s.Get(id))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Spawn(Entity{}), "IDs restart after reset")
}

func TestStoreFirstHitByKind(t *testing.T) {
	s := NewStore()
	pid := s.Spawn(NewBox(KindPlayer, 0, 0, 2, 2))
	s.Spawn(NewBox(KindCollectible, 1, 1, 1, 1))
	oid := s.Spawn(NewBox(KindObstacle, 1, 0, 1, 1))

	hit := s.FirstHit(s.Get(pid), KindObstacle)
	require.NotNil(t, hit)
	assert.Equal(t, oid, hit.ID)
	assert.Nil(t, s.FirstHit(s.Get(pid), KindProjectile))
}

func TestSpawnersDeterministic(t *testing.T) {
	run := func(seed int64) []int {
		rng := rand.New(rand.NewSource(seed))
		iv := NewIntervalSpawner(5, 3)
		bs := &BernoulliSpawner{P: 0.2}
		var fired []int
		for tick := 0; tick < 200; tick++ {
			if iv.Tick(rng) {
				fired = append(fired, tick)
			}
			if bs.Tick(rng) {
				fired = append(fired, -tick)
			}
		}
		return fired
	}

	assert.Equal(t, run(42), run(42))
	assert.NotEqual(t, run(42), run(43))
}

func TestIntervalSpawnerFixed(t *testing.T) {
	iv := NewIntervalSpawner(3, 0)
	var fired []int
	for tick := 1; tick <= 9; tick++ {
		if iv.Tick(nil) {
			fired = append(fired, tick)
		}
	}
	assert.Equal(t, []int{3, 6, 9}, fired)
}

func TestBernoulliSpawnerBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	never := &BernoulliSpawner{P: 0}
	always := &BernoulliSpawner{P: 1}
	for i := 0; i < 50; i++ {
		assert.False(t, never.Tick(rng))
		assert.True(t, always.Tick(rng))
	}
}
