package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"wasd left", runeKey('a'), core.ActionLeft, false},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"flag", runeKey('f'), core.ActionFlag, false},
		{"hint", runeKey('h'), core.ActionHint, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('k'), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestTextModeTypesLetters(t *testing.T) {
	km := NewTextKeyMapper()

	frame := core.NewInputFrame()
	assert.False(t, km.MapKeyToFrame(runeKey('q'), &frame), "q is a letter in text mode")
	assert.False(t, km.MapKeyToFrame(runeKey('r'), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyBackspace}, &frame))
	assert.Equal(t, []rune{'q', 'r', Backspace}, frame.Runes)
	assert.False(t, frame.Has(core.ActionRestart))

	frame = core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlR}, &frame)
	assert.True(t, frame.Has(core.ActionRestart))
	assert.Empty(t, frame.Runes)

	assert.True(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEsc}, &frame))
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	km.MapMouse(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if assert.NotNil(t, frame.Click) {
		assert.Equal(t, core.Click{X: 4, Y: 7, Secondary: true}, *frame.Click)
	}

	frame = core.NewInputFrame()
	km.MapMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, &frame)
	assert.Nil(t, frame.Click)
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(runeKey('j')))
}
