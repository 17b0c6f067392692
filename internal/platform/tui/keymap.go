package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Backspace is the rune sent to text-entry games for the backspace key.
const Backspace = '\b'

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
//
// In text mode letters and digits are typed into the game instead of
// triggering actions, so restart, pause and quit move to control keys.
type KeyMapper struct {
	text bool
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// NewTextKeyMapper creates a key mapper for games that read typed text.
func NewTextKeyMapper() *KeyMapper {
	return &KeyMapper{text: true}
}

// TextMode reports whether printable keys are typed.
func (km *KeyMapper) TextMode() bool {
	return km.text
}

// MapKey translates a key message to actions for Player1.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return core.ActionQuit, true
	}

	// Keys shared by both modes
	switch key {
	case "up":
		return core.ActionUp, false
	case "down":
		return core.ActionDown, false
	case "left":
		return core.ActionLeft, false
	case "right":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "ctrl+r":
		return core.ActionRestart, false
	case "ctrl+p":
		return core.ActionPause, false
	}

	if km.text {
		if key == "esc" {
			return core.ActionQuit, true
		}
		return core.ActionNone, false
	}

	switch key {
	case "q":
		return core.ActionQuit, true
	case "w":
		return core.ActionUp, false
	case "s":
		return core.ActionDown, false
	case "a":
		return core.ActionLeft, false
	case "d":
		return core.ActionRight, false
	case " ":
		return core.ActionJump, false
	case "x", "z":
		return core.ActionDuck, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "f":
		return core.ActionFlag, false
	case "h":
		return core.ActionHint, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if km.text {
		if r, ok := typedRune(msg); ok {
			frame.Type(r)
			return false
		}
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// typedRune returns the character a key types, if any.
func typedRune(msg tea.KeyMsg) (rune, bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		return Backspace, true
	case tea.KeySpace:
		return ' ', true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt && unicode.IsPrint(msg.Runes[0]) {
			return msg.Runes[0], true
		}
	}
	return 0, false
}

// MapMouse records a button press as a click. Wheel and motion events are
// ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Press(msg.X, msg.Y, false)
	case tea.MouseButtonRight:
		frame.Press(msg.X, msg.Y, true)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
