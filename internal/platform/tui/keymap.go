package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skunk-squad/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an intent.
// Returns the intent (may be IntentNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (intent core.Intent, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.IntentNone, true
	case "left", "a":
		return core.IntentMoveLeft, false
	case "right", "d":
		return core.IntentMoveRight, false
	case " ", "w", "up":
		return core.IntentJump, false
	case "x", "j":
		return core.IntentAttack, false
	case "p", "esc":
		return core.IntentPause, false
	case "enter":
		return core.IntentStart, false
	case "r":
		return core.IntentRestart, false
	}
	return core.IntentNone, false
}

// Hold emulation windows. Terminals report key presses but never releases;
// a direction stays held for holdInitial after the first press, which
// covers the keyboard's auto-repeat delay, and each repeat extends it by
// holdRepeat.
const (
	holdInitial = 450 * time.Millisecond
	holdRepeat  = 120 * time.Millisecond
)

// HoldTracker turns discrete direction presses into a held direction.
type HoldTracker struct {
	dir   core.Intent // IntentMoveLeft, IntentMoveRight or IntentNone
	until time.Time
}

// Press records a direction press at now. Pressing the opposite direction
// releases the current one.
func (h *HoldTracker) Press(dir core.Intent, now time.Time) {
	if dir != core.IntentMoveLeft && dir != core.IntentMoveRight {
		return
	}
	if h.dir == dir && now.Before(h.until) {
		if ext := now.Add(holdRepeat); ext.After(h.until) {
			h.until = ext
		}
		return
	}
	h.dir = dir
	h.until = now.Add(holdInitial)
}

// Release drops any held direction.
func (h *HoldTracker) Release() {
	h.dir = core.IntentNone
}

// Held returns the direction held at now, or IntentNone.
func (h *HoldTracker) Held(now time.Time) core.Intent {
	if h.dir == core.IntentNone || !now.Before(h.until) {
		return core.IntentNone
	}
	return h.dir
}
