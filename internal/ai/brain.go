package ai

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/physics"
	"github.com/vovakirdan/skunk-squad/internal/sprite"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// meleeHeight is the largest vertical gap between feet that still allows a hit.
const meleeHeight = 50

// LevelContext is the geometry an enemy patrols against.
type LevelContext struct {
	Width float64
	World *physics.World
}

// Target is what enemies react to.
type Target struct {
	Box   core.Box
	Alive bool
}

// Context is everything Brain.Update reads besides the enemy itself.
type Context struct {
	Level      *LevelContext
	Player     Target
	Aggression float64 // level aggression, 0..1
}

// Brain runs the enemy state machine. It holds no per-enemy state.
type Brain struct {
	counters *telemetry.Counters

	// OnDiagnostic, when set, is called for every recoverable fault.
	OnDiagnostic func(name string, e *Enemy)
}

// NewBrain creates a brain. counters may be nil.
func NewBrain(counters *telemetry.Counters) *Brain {
	return &Brain{counters: counters}
}

// DetectRadius is the distance at which e notices the player.
func DetectRadius(e *Enemy, aggression float64) float64 {
	return e.Stats.DetectRange * e.Stats.AggressionMult * (0.5 + aggression)
}

// AttackCooldown is the pause between strikes; higher aggression shortens it.
func AttackCooldown(e *Enemy, aggression float64) float64 {
	return e.Stats.AttackCooldown * (1.5 - aggression)
}

// Update advances e's behavior by dt and returns the damage e deals to the
// player this tick (zero when it does not strike). It only sets velocities;
// the physics step moves the body.
func (b *Brain) Update(e *Enemy, ctx Context, dt float64) int {
	defer e.syncAnim()

	switch e.State {
	case StateDead:
		e.Body.VX = 0
		return 0
	case StateHurt:
		e.Body.VX = 0
		e.hurt -= dt
		if e.hurt <= 0 {
			e.hurt = 0
			e.State = e.resume
		}
		return 0
	}

	if e.cooldown > 0 {
		e.cooldown = math.Max(0, e.cooldown-dt)
	}

	if !ctx.Player.Alive {
		e.State = StatePatrol
		b.Patrol(e, ctx, dt)
		return 0
	}

	eb := e.Body.Box()
	dx := ctx.Player.Box.CenterX() - eb.CenterX()
	dy := ctx.Player.Box.Bottom() - eb.Bottom()
	dist := math.Abs(dx)
	detect := DetectRadius(e, ctx.Aggression)
	disengage := 1.5 * detect
	melee := dist <= e.Stats.AttackRange && math.Abs(dy) < meleeHeight

	switch e.State {
	case StatePatrol:
		if dist <= detect {
			e.State = StateChase
		}
	case StateChase:
		if melee {
			return b.strike(e, ctx, dx)
		}
		if dist > disengage {
			e.State = StatePatrol
		}
	case StateAttack:
		e.Body.VX = 0
		if e.cooldown > 0 {
			return 0
		}
		if melee {
			return b.strike(e, ctx, dx)
		}
		if dist <= disengage {
			e.State = StateChase
		} else {
			e.State = StatePatrol
		}
	}

	switch e.State {
	case StatePatrol:
		b.Patrol(e, ctx, dt)
	case StateChase:
		b.chase(e, dx)
	}
	return 0
}

// strike starts an attack toward the player and returns its damage.
func (b *Brain) strike(e *Enemy, ctx Context, dx float64) int {
	e.State = StateAttack
	e.Body.VX = 0
	e.FacingRight = dx >= 0
	e.cooldown = AttackCooldown(e, ctx.Aggression)
	if e.Anim != nil && e.Anim.State() == sprite.StateAttack {
		e.Anim.Current().Reset()
	}
	return e.Stats.Damage
}

// chase runs toward the player.
func (b *Brain) chase(e *Enemy, dx float64) {
	speed := e.Stats.Speed * e.Stats.ChaseMultiplier
	switch {
	case dx > 0:
		e.Body.VX = speed
		e.FacingRight = true
	case dx < 0:
		e.Body.VX = -speed
		e.FacingRight = false
	default:
		e.Body.VX = 0
	}
}

// Patrol walks e back and forth within [anchor-range, anchor+range],
// narrowed to the platform it stands on and the level bounds.
// Without a level context it records a diagnostic and stands still.
func (b *Brain) Patrol(e *Enemy, ctx Context, dt float64) {
	if ctx.Level == nil {
		b.counters.Inc(telemetry.PatrolMissingLevel)
		if b.OnDiagnostic != nil {
			b.OnDiagnostic(telemetry.PatrolMissingLevel, e)
		}
		e.Body.VX = 0
		return
	}

	lo, hi := PatrolBounds(e, ctx.Level)
	if hi <= lo {
		e.Body.VX = 0
		return
	}

	x := e.Body.X
	switch {
	case x <= lo:
		e.FacingRight = true
	case x >= hi:
		e.FacingRight = false
	}
	if e.FacingRight {
		e.Body.VX = e.Stats.Speed
	} else {
		e.Body.VX = -e.Stats.Speed
	}
}

// PatrolBounds returns the range of x positions e may patrol over.
func PatrolBounds(e *Enemy, lc *LevelContext) (lo, hi float64) {
	lo = e.PatrolAnchor - e.PatrolRange
	hi = e.PatrolAnchor + e.PatrolRange

	if lc.World != nil {
		if p := lc.World.Supporting(e.Body); p != nil {
			lo = math.Max(lo, p.Box.Left())
			hi = math.Min(hi, p.Box.Right()-e.Body.W)
		}
	}
	lo = math.Max(lo, 0)
	hi = math.Min(hi, lc.Width-e.Body.W)
	return lo, hi
}

// Damage applies a hit. Damage during HURT still lowers health but does not
// restart the stagger. It returns true when the hit killed e.
func (b *Brain) Damage(e *Enemy, amount int) bool {
	if e.State == StateDead || amount <= 0 {
		return false
	}
	defer e.syncAnim()

	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.State = StateDead
		e.Body.VX = 0
		return true
	}
	if e.State != StateHurt {
		e.resume = e.State
		e.State = StateHurt
		e.hurt = e.Stats.HurtDuration
	}
	return false
}

// Kill marks e dead without an animation, e.g. after falling out of the level.
func (b *Brain) Kill(e *Enemy) {
	e.Health = 0
	e.State = StateDead
	e.Removed = true
}
