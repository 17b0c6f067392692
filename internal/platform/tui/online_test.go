package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/multiplayer"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

func TestNewOnlineGame(t *testing.T) {
	assert.True(t, HasOnlineMode("connect4"))
	assert.False(t, HasOnlineMode("runner"))

	g, err := NewOnlineGame("connect4", testConfig())
	require.NoError(t, err)
	assert.False(t, g.IsGameOver())

	_, err = NewOnlineGame("runner", testConfig())
	assert.True(t, errors.Is(err, registry.ErrUnknownGame))
}

// nextEvent reads events from s until one of type T arrives.
func nextEvent[T multiplayer.SessionEvent](t *testing.T, s *multiplayer.ChannelSession) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if want, ok := evt.(T); ok {
				return want
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestLobbyHostAndJoinStartMatch(t *testing.T) {
	sessions := multiplayer.NewSessionRegistry()
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), NewOnlineGame, sessions)
	coord.Start()
	defer coord.Stop()

	host := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 0)
	guest := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 0)
	sessions.Register(host)
	sessions.Register(guest)

	hostLobby := tea.Model(NewOnlineLobbyModel("connect4", host.ID(), coord, 80, 24))
	hostLobby = press(t, hostLobby, runeKey('h'))
	hostLobby, _ = hostLobby.Update(nextEvent[multiplayer.LobbyCreatedEvent](t, host))
	require.Equal(t, OnlineStateHostWaiting, hostLobby.(OnlineLobbyModel).State())
	code := hostLobby.(OnlineLobbyModel).LobbyCode()
	require.Len(t, code, joinCodeLen)

	guestLobby := tea.Model(NewOnlineLobbyModel("connect4", guest.ID(), coord, 80, 24))
	guestLobby = press(t, guestLobby, runeKey('j'))
	for _, r := range code {
		guestLobby = press(t, guestLobby, runeKey(r))
	}
	guestLobby = press(t, guestLobby, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, OnlineStateJoinWaiting, guestLobby.(OnlineLobbyModel).State())

	hostLobby, _ = hostLobby.Update(nextEvent[multiplayer.MatchStartedEvent](t, host))
	guestLobby, _ = guestLobby.Update(nextEvent[multiplayer.MatchStartedEvent](t, guest))

	hl, gl := hostLobby.(OnlineLobbyModel), guestLobby.(OnlineLobbyModel)
	require.Equal(t, OnlineStateInMatch, hl.State())
	require.Equal(t, OnlineStateInMatch, gl.State())
	assert.Equal(t, hl.MatchID(), gl.MatchID())
	assert.NotEqual(t, hl.Side(), gl.Side())

	match, err := NewOnlineMatchModel("connect4", hl, testConfig())
	require.NoError(t, err)

	next, _ := match.Update(nextEvent[multiplayer.SnapshotEvent](t, host))
	assert.NotEmpty(t, next.(OnlineMatchModel).View())
	assert.Nil(t, next.(OnlineMatchModel).Ended())
}

func TestJoinCodeEntryRequiresFullCode(t *testing.T) {
	m := tea.Model(NewOnlineLobbyModel("connect4", multiplayer.NewSessionID(), nil, 80, 24))
	m = press(t, m, runeKey('j'), runeKey('a'), runeKey('b'), runeKey('-'), tea.KeyMsg{Type: tea.KeyEnter})

	lobby := m.(OnlineLobbyModel)
	assert.Equal(t, OnlineStateJoinEnterCode, lobby.State())
	assert.Equal(t, "AB", lobby.joinCodeInput)
	assert.NotEmpty(t, lobby.joinError)
}

func TestModeModelSelection(t *testing.T) {
	m := tea.Model(NewModeModel("Connect Four", 80, 24))
	assert.Equal(t, multiplayer.MatchMode(-1), m.(ModeModel).Selected())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, multiplayer.MatchModeOnlinePvP, m.(ModeModel).Selected())
}

func TestSessionModelDropsStrayEvents(t *testing.T) {
	m := NewSessionModel(SessionConfig{Runtime: testConfig()})

	next, _ := m.Update(multiplayer.LobbyErrorEvent{Message: "late"})
	assert.Equal(t, screenMenu, next.(SessionModel).screen)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, next.(SessionModel).screen)
}
