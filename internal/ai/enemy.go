// Package ai drives enemies: a per-enemy behavior state machine bound to the
// level geometry, and the spawner that feeds enemies into a level.
package ai

import (
	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/physics"
	"github.com/vovakirdan/skunk-squad/internal/sprite"
)

// State is an enemy behavior state.
type State int

const (
	StatePatrol State = iota
	StateChase
	StateAttack
	StateHurt
	StateDead
)

func (s State) String() string {
	switch s {
	case StatePatrol:
		return "PATROL"
	case StateChase:
		return "CHASE"
	case StateAttack:
		return "ATTACK"
	case StateHurt:
		return "HURT"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Enemy is one live enemy. All kinds share the state machine; Stats differ.
type Enemy struct {
	ID    int
	Kind  string
	Stats config.EnemyTypeConfig

	Body        physics.Body
	Health      int
	State       State
	FacingRight bool

	PatrolAnchor float64
	PatrolRange  float64

	Anim *sprite.Animator

	// Removed is set once a dead enemy may be dropped from the world.
	Removed bool

	resume   State   // state to return to after HURT
	hurt     float64 // remaining stagger
	cooldown float64 // remaining attack cooldown
}

// NewEnemy creates an enemy standing at (x, y), patrolling around x.
func NewEnemy(id int, kind string, stats config.EnemyTypeConfig, x, y float64, anim *sprite.Animator) *Enemy {
	return &Enemy{
		ID:           id,
		Kind:         kind,
		Stats:        stats,
		Body:         physics.NewBody(x, y, stats.Width, stats.Height),
		Health:       stats.Health,
		State:        StatePatrol,
		PatrolAnchor: x,
		PatrolRange:  stats.PatrolRange,
		Anim:         anim,
	}
}

// Alive reports whether the enemy still takes part in combat.
func (e *Enemy) Alive() bool {
	return e.State != StateDead
}

// Cooldown returns the remaining attack cooldown.
func (e *Enemy) Cooldown() float64 {
	return e.cooldown
}

// AdvanceAnim advances the enemy's animation and marks a dead enemy for
// removal once its death clip has played out.
func (e *Enemy) AdvanceAnim(dt float64) {
	if e.Anim == nil {
		if e.State == StateDead {
			e.Removed = true
		}
		return
	}
	done := e.Anim.Advance(dt)
	if e.State != StateDead {
		return
	}
	// Without a death clip there is nothing to wait for.
	if done || e.Anim.Done() || !e.Anim.Has(sprite.StateDeath) {
		e.Removed = true
	}
}

// syncAnim picks the clip for the current behavior.
func (e *Enemy) syncAnim() {
	if e.Anim == nil {
		return
	}
	switch e.State {
	case StateDead:
		e.Anim.SetState(sprite.StateDeath)
	case StateHurt:
		e.Anim.SetState(sprite.StateHit)
	case StateAttack:
		e.Anim.SetState(sprite.StateAttack)
	default:
		if e.Body.VX != 0 {
			e.Anim.SetState(sprite.StateWalk)
		} else {
			e.Anim.SetState(sprite.StateIdle)
		}
	}
}
