package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// countdown is a trivial game: every Jump scores, the game ends after N ticks.
type countdown struct {
	left  int
	state core.GameState
}

func (c *countdown) ID() string    { return "engine-countdown" }
func (c *countdown) Title() string { return "Countdown" }
func (c *countdown) Reset(cfg core.RuntimeConfig) {
	c.left = 10 + int(cfg.Seed%5)
	c.state = core.GameState{Lives: 1}
}
func (c *countdown) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionJump) {
		c.state.Score++
	}
	c.left--
	if c.left <= 0 {
		c.state.GameOver = true
	}
	return core.StepResult{State: c.state}
}
func (c *countdown) Render(*core.Screen)   {}
func (c *countdown) State() core.GameState { return c.state }

func init() {
	registry.Register("engine-countdown", func() registry.Game { return &countdown{} })
}

func TestRunStopsAtGameOver(t *testing.T) {
	g := &countdown{}
	g.Reset(core.RuntimeConfig{})

	res, err := Run(context.Background(), g, Script(map[int][]core.Action{
		0: {core.ActionJump},
		4: {core.ActionJump},
	}), 100)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Ticks)
	assert.Equal(t, 2, res.State.Score)
	assert.True(t, res.State.GameOver)
}

func TestRunSeededDeterministic(t *testing.T) {
	a, err := RunSeeded(context.Background(), "engine-countdown", 3, nil, 100)
	require.NoError(t, err)
	b, err := RunSeeded(context.Background(), "engine-countdown", 3, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 13, a.Ticks)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &countdown{}
	g.Reset(core.RuntimeConfig{})
	_, err := Run(ctx, g, nil, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSeededUnknownGame(t *testing.T) {
	_, err := RunSeeded(context.Background(), "no-such-game", 1, nil, 1)
	assert.ErrorIs(t, err, registry.ErrUnknownGame)
}
