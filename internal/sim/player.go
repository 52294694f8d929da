package sim

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/physics"
	"github.com/vovakirdan/skunk-squad/internal/sprite"
)

const (
	// maxCombo is the length of the attack chain.
	maxCombo = 3
	// finisherMultiplier scales the damage of the last swing in a chain.
	finisherMultiplier = 1.5
	// hitboxOffsetY places the attack hitbox below the top of the body.
	hitboxOffsetY = 20
	// hitStun is how long the hit animation holds after taking damage.
	hitStun = 0.3
	// deathTimeout resolves a death whose animation never completes.
	deathTimeout = 3.0
)

// Player is the player character.
type Player struct {
	Body        physics.Body
	Health      int
	MaxHealth   int
	FacingRight bool
	Anim        *sprite.Animator

	cfg config.PlayerConfig

	combo      int     // current swing, 1..maxCombo, 0 when idle
	swing      float64 // remaining active time of the current swing
	swingHit   bool    // the current swing has already been applied
	chain      float64 // remaining window to chain the next swing
	cooldown   float64
	invuln     float64
	stun       float64
	dying      bool
	dyingFor   float64
	deathFinal bool
}

// NewPlayer creates a player at the configured start position.
func NewPlayer(cfg config.PlayerConfig, anim *sprite.Animator) *Player {
	p := &Player{
		MaxHealth:   cfg.MaxHealth,
		Health:      cfg.MaxHealth,
		FacingRight: true,
		Anim:        anim,
		cfg:         cfg,
	}
	p.Place(cfg.StartX, cfg.StartY)
	return p
}

// Place moves the player to (x, y) at rest, clearing combat timers.
// Health is kept.
func (p *Player) Place(x, y float64) {
	p.Body = physics.NewBody(x, y, p.cfg.Width, p.cfg.Height)
	p.FacingRight = true
	p.combo, p.swing, p.chain, p.cooldown = 0, 0, 0, 0
	p.swingHit = false
	p.invuln, p.stun = 0, 0
}

// Alive reports whether the player can act.
func (p *Player) Alive() bool {
	return !p.dying
}

// Dying reports whether the death animation is playing.
func (p *Player) Dying() bool {
	return p.dying
}

// Attacking reports whether a swing is active.
func (p *Player) Attacking() bool {
	return p.swing > 0
}

// Combo returns the current swing number in the chain.
func (p *Player) Combo() int {
	return p.combo
}

// Invulnerable reports whether hits are currently ignored.
func (p *Player) Invulnerable() bool {
	return p.invuln > 0
}

// Hitbox returns the area the current swing covers, in front of the player.
func (p *Player) Hitbox() core.Box {
	b := p.Body.Box()
	x := b.Right()
	if !p.FacingRight {
		x = b.Left() - p.cfg.AttackReach
	}
	return core.NewBox(x, b.Top()+hitboxOffsetY, p.cfg.AttackReach, p.cfg.AttackHeight)
}

// SwingDamage returns the damage of the current swing.
func (p *Player) SwingDamage() int {
	if p.combo == maxCombo {
		return int(math.Round(float64(p.cfg.AttackDamage) * finisherMultiplier))
	}
	return p.cfg.AttackDamage
}

// control applies held direction and edge-triggered jump and attack. It
// returns the sounds the input produced.
func (p *Player) control(dir int, jump, attack bool, dt float64) []string {
	var sounds []string

	p.tickTimers(dt)

	if p.dying {
		p.Body.VX = 0
		return nil
	}

	switch {
	case dir < 0:
		p.FacingRight = false
	case dir > 0:
		p.FacingRight = true
	}
	p.Body.VX = float64(dir) * p.cfg.Speed
	if p.swing > 0 && p.Body.Grounded {
		p.Body.VX = 0
	}

	if jump && p.Body.Grounded {
		p.Body.VY = -p.cfg.JumpForce
		sounds = append(sounds, SoundJump)
	}

	if attack && p.swing <= 0 && p.cooldown <= 0 {
		if p.chain > 0 && p.combo < maxCombo {
			p.combo++
		} else {
			p.combo = 1
		}
		p.swing = p.cfg.AttackDuration
		p.swingHit = false
		p.chain = 0
		sounds = append(sounds, attackSound(p.combo))
		if p.combo == maxCombo {
			sounds = append(sounds, SoundCombo)
		}
		if p.Anim != nil && p.Anim.State() == swingClip(p.combo) {
			p.Anim.Current().Reset()
		}
	}
	return sounds
}

func (p *Player) tickTimers(dt float64) {
	if p.swing > 0 {
		p.swing -= dt
		if p.swing <= 0 {
			p.swing = 0
			p.chain = p.cfg.ComboWindow
			p.cooldown = p.cfg.AttackCooldown
		}
	} else if p.chain > 0 {
		p.chain -= dt
		if p.chain <= 0 {
			p.chain = 0
			p.combo = 0
		}
	}
	if p.cooldown > 0 && p.swing <= 0 {
		p.cooldown = math.Max(0, p.cooldown-dt)
	}
	if p.invuln > 0 {
		p.invuln = math.Max(0, p.invuln-dt)
	}
	if p.stun > 0 {
		p.stun = math.Max(0, p.stun-dt)
	}
	if p.dying {
		p.dyingFor += dt
	}
}

// hurt applies enemy damage. It returns false when the hit was ignored.
func (p *Player) hurt(amount int) bool {
	if p.dying || p.invuln > 0 || amount <= 0 {
		return false
	}
	p.Health -= amount
	p.invuln = p.cfg.Invulnerability
	p.stun = hitStun
	if p.Health <= 0 {
		p.die()
	}
	return true
}

// die starts the death animation.
func (p *Player) die() {
	if p.dying {
		return
	}
	p.Health = 0
	p.dying = true
	p.dyingFor = 0
	p.swing, p.combo, p.chain = 0, 0, 0
	p.Body.VX = 0
	if p.Anim != nil {
		p.Anim.SetState(sprite.StateDeath)
	}
}

// fall kills the player outright after dropping out of the level.
func (p *Player) fall() {
	p.die()
	p.deathFinal = true
}

// deathResolved reports whether the death sequence is over.
func (p *Player) deathResolved() bool {
	if !p.dying {
		return false
	}
	if p.deathFinal || p.dyingFor >= deathTimeout || p.Anim == nil {
		return true
	}
	if !p.Anim.Has(sprite.StateDeath) {
		return true
	}
	return p.Anim.State() == sprite.StateDeath && p.Anim.Done()
}

// advanceAnim picks the clip for the current state and advances it.
func (p *Player) advanceAnim(dt float64) {
	if p.Anim == nil {
		return
	}
	switch {
	case p.dying:
		p.Anim.SetState(sprite.StateDeath)
	case p.stun > 0:
		p.Anim.SetState(sprite.StateHit)
	case p.swing > 0:
		p.Anim.SetState(swingClip(p.combo))
	case !p.Body.Grounded && p.Body.VY < 0:
		p.Anim.SetState(sprite.StateJump)
	case !p.Body.Grounded:
		p.Anim.SetState(sprite.StateFall)
	case p.Body.VX != 0:
		p.Anim.SetState(sprite.StateWalk)
	default:
		p.Anim.SetState(sprite.StateIdle)
	}
	p.Anim.Advance(dt)
}

func swingClip(combo int) string {
	switch combo {
	case 2:
		return sprite.StateAttack2
	case 3:
		return sprite.StateAttack3
	default:
		return sprite.StateAttack1
	}
}

func attackSound(combo int) string {
	switch combo {
	case 2:
		return SoundAttack2
	case 3:
		return SoundAttack3
	default:
		return SoundAttack1
	}
}
