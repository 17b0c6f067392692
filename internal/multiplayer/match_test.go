package multiplayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func TestOnlineMatchRunsToCompletion(t *testing.T) {
	p1 := NewChannelSession(NewSessionID(), 512)
	p2 := NewChannelSession(NewSessionID(), 512)
	game := &stubGame{endAt: 4}
	m := NewOnlineMatch(NewMatchID(), "ABCDEF", "stub", game, p1, p2, 500)

	results := make(chan MatchResult, 1)
	err := m.Run(context.Background(), func(r MatchResult) { results <- r })
	require.NoError(t, err)

	select {
	case r := <-results:
		assert.Equal(t, MatchEndReasonCompleted, r.Reason)
		assert.Equal(t, uint64(4), r.Ticks)
	default:
		t.Fatal("onComplete was not called")
	}

	select {
	case <-m.Done():
	default:
		t.Fatal("Done should be closed after Run returns")
	}
}

func TestOnlineMatchMergesInputs(t *testing.T) {
	p1 := NewChannelSession(NewSessionID(), 512)
	p2 := NewChannelSession(NewSessionID(), 512)
	game := &stubGame{}
	m := NewOnlineMatch(NewMatchID(), "ABCDEF", "stub", game, p1, p2, 200)

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	m.SendInput(Player1, in)
	m.SendInput(Player1, in)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = m.Run(ctx, nil)
	}()

	require.Eventually(t, func() bool {
		game.mu.Lock()
		defer game.mu.Unlock()
		return game.steps >= 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-m.Done()

	game.mu.Lock()
	defer game.mu.Unlock()
	// Both presses land in one tick and are consumed by it
	assert.Equal(t, 1, game.presses)
}

func TestOnlineMatchStopBeforeRun(t *testing.T) {
	p1 := NewChannelSession(NewSessionID(), 8)
	p2 := NewChannelSession(NewSessionID(), 8)
	m := NewOnlineMatch(NewMatchID(), "ABCDEF", "stub", &stubGame{}, p1, p2, 60)

	m.Stop()
	called := false
	require.NoError(t, m.Run(context.Background(), func(MatchResult) { called = true }))
	assert.False(t, called)
}

func TestOnlineMatchDisconnect(t *testing.T) {
	p1 := NewChannelSession(NewSessionID(), 512)
	p2 := NewChannelSession(NewSessionID(), 512)
	m := NewOnlineMatch(NewMatchID(), "ABCDEF", "stub", &stubGame{}, p1, p2, 200)

	m.PlayerDisconnected(p1.ID())
	var got MatchResult
	require.NoError(t, m.Run(context.Background(), func(r MatchResult) { got = r }))
	assert.Equal(t, MatchEndReasonDisconnect, got.Reason)
	assert.Equal(t, Player2, got.Winner)
}

func TestIDs(t *testing.T) {
	a, b := NewMatchID(), NewMatchID()
	assert.NotEqual(t, a, b)
	assert.Len(t, NewSessionID().Short(), 8)

	m := NewMatch(MatchModeOnlinePvP, "s1", "s2")
	assert.NotEmpty(t, m.ID())
	assert.Equal(t, []SessionID{"s1", "s2"}, m.Sessions())
}
