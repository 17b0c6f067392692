package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidTick is returned when a scheduler is started with a non-positive interval.
var ErrInvalidTick = errors.New("engine: tick interval must be positive")

// Scheduler owns at most one ticker goroutine at a time.
// Starting it again cancels the previous ticker first, so a restarted game
// can never end up with two loops driving it.
type Scheduler struct {
	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	generation int
}

// Start runs fn every interval until ctx is cancelled or Stop is called.
// fn receives the generation of the ticker that invoked it. fn must not
// call Start or Stop; cancel ctx to end the loop from inside a tick.
// The previous ticker, if any, is stopped and waited for before returning.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration, fn func(gen int)) error {
	if interval <= 0 {
		return ErrInvalidTick
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	s.generation++
	gen := s.generation
	tctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-tctx.Done():
				return
			case <-ticker.C:
				fn(gen)
			}
		}
	}()

	return nil
}

// Stop cancels the running ticker and waits for its goroutine to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Running reports whether a ticker goroutine is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Generation returns how many times Start has succeeded.
func (s *Scheduler) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Done returns a channel closed when the current ticker exits, or nil.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
