package engine

import "math/rand"

// Spawner decides, once per tick, whether a new entity should appear.
type Spawner interface {
	Tick(rng *rand.Rand) bool
	Reset()
}

// IntervalSpawner fires once every Every ticks.
// When Jitter is positive the next gap is drawn from [Every, Every+Jitter].
type IntervalSpawner struct {
	Every  int
	Jitter int

	countdown int
}

// NewIntervalSpawner creates a spawner that fires every n ticks.
func NewIntervalSpawner(every, jitter int) *IntervalSpawner {
	s := &IntervalSpawner{Every: every, Jitter: jitter}
	s.Reset()
	return s
}

// Tick advances the countdown and reports whether to spawn this tick.
func (s *IntervalSpawner) Tick(rng *rand.Rand) bool {
	s.countdown--
	if s.countdown > 0 {
		return false
	}
	s.countdown = s.next(rng)
	return true
}

// Reset restarts the countdown from a full interval.
func (s *IntervalSpawner) Reset() {
	s.countdown = max(s.Every, 1)
}

// Remaining returns the number of ticks until the next spawn.
func (s *IntervalSpawner) Remaining() int {
	return s.countdown
}

func (s *IntervalSpawner) next(rng *rand.Rand) int {
	n := max(s.Every, 1)
	if s.Jitter > 0 && rng != nil {
		n += rng.Intn(s.Jitter + 1)
	}
	return n
}

// BernoulliSpawner fires with probability P on each tick.
type BernoulliSpawner struct {
	P float64
}

// Tick draws once from rng and reports whether to spawn.
func (s *BernoulliSpawner) Tick(rng *rand.Rand) bool {
	if rng == nil || s.P <= 0 {
		return false
	}
	return rng.Float64() < s.P
}

// Reset is a no-op; Bernoulli trials carry no state.
func (s *BernoulliSpawner) Reset() {}
