// Package sim runs the game: a four-state machine around a fixed-step clock
// that drives physics, enemy AI and animation one atomic tick at a time.
package sim

import (
	"errors"
	"fmt"
)

// State is the top-level game state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ErrInvalidTransition is returned when a transition is not allowed from the
// current state. The state is left unchanged.
var ErrInvalidTransition = errors.New("sim: invalid transition")

// Machine is the state machine. The zero value is in MENU.
type Machine struct {
	state State

	// hidden is set when a visibility loss paused the game, so regaining
	// visibility resumes only that pause.
	hidden bool
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

func (m *Machine) move(name string, from, to State) error {
	if m.state != from {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, name, m.state)
	}
	m.state = to
	return nil
}

// Start begins a run: MENU -> PLAYING.
func (m *Machine) Start() error {
	return m.move("start", StateMenu, StatePlaying)
}

// Pause suspends the run: PLAYING -> PAUSED.
func (m *Machine) Pause() error {
	if err := m.move("pause", StatePlaying, StatePaused); err != nil {
		return err
	}
	m.hidden = false
	return nil
}

// Resume continues the run: PAUSED -> PLAYING.
func (m *Machine) Resume() error {
	if err := m.move("resume", StatePaused, StatePlaying); err != nil {
		return err
	}
	m.hidden = false
	return nil
}

// PlayerDeathResolved ends the run once the death animation has finished:
// PLAYING -> GAME_OVER. Clearing the final level takes the same edge.
func (m *Machine) PlayerDeathResolved() error {
	return m.move("playerDeathResolved", StatePlaying, StateGameOver)
}

// Restart returns to the menu: GAME_OVER -> MENU.
func (m *Machine) Restart() error {
	return m.move("restart", StateGameOver, StateMenu)
}

// SetVisible reports host visibility. Losing visibility while PLAYING pauses;
// regaining it resumes only a pause that visibility loss caused. It reports
// whether the state changed.
func (m *Machine) SetVisible(visible bool) bool {
	switch {
	case !visible && m.state == StatePlaying:
		m.state = StatePaused
		m.hidden = true
		return true
	case visible && m.state == StatePaused && m.hidden:
		m.state = StatePlaying
		m.hidden = false
		return true
	}
	return false
}
