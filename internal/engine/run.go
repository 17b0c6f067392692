package engine

import (
	"context"
	"fmt"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// InputSource yields the input for a given tick number (0-based).
type InputSource func(tick int) core.InputFrame

// NoInput is an InputSource that never presses anything.
func NoInput(int) core.InputFrame { return core.NewInputFrame() }

// Script replays a fixed map of tick -> actions.
func Script(script map[int][]core.Action) InputSource {
	return func(tick int) core.InputFrame {
		f := core.NewInputFrame()
		for _, a := range script[tick] {
			f.Set(a)
		}
		return f
	}
}

// Result summarizes a headless run.
type Result struct {
	Ticks int
	State core.GameState
}

// Run steps g without a terminal until it is over or ticks run out.
// g must already be Reset. A cancelled ctx aborts between ticks.
func Run(ctx context.Context, g registry.Game, inputs InputSource, ticks int) (Result, error) {
	if inputs == nil {
		inputs = NoInput
	}
	var res Result
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("engine: run %s: %w", g.ID(), err)
		}
		step := g.Step(inputs(i))
		res.Ticks = i + 1
		res.State = step.State
		if step.State.GameOver {
			break
		}
	}
	res.State = g.State()
	return res, nil
}

// RunSeeded creates a fresh game by id, resets it with seed and runs it.
// Two calls with the same arguments produce the same Result.
func RunSeeded(ctx context.Context, id string, seed int64, inputs InputSource, ticks int) (Result, error) {
	g, err := registry.Create(id)
	if err != nil {
		return Result{}, err
	}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return Run(ctx, g, inputs, ticks)
}
