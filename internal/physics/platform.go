// Package physics integrates axis-aligned bodies against static and moving
// platforms under gravity.
package physics

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/level"
)

// Platform is the runtime state of a level platform.
type Platform struct {
	Def level.PlatformDef
	Box core.Box

	// DX, DY is the displacement applied by the most recent Advance.
	DX, DY float64

	phase float64 // [0,2): 0..1 outbound, 1..2 returning
}

// NewPlatform places a platform at its anchor.
func NewPlatform(def level.PlatformDef) *Platform {
	return &Platform{
		Def: def,
		Box: core.NewBox(def.X, def.Y, def.Width, def.Height),
	}
}

// Phase returns the oscillation phase in [0,2).
func (p *Platform) Phase() float64 {
	return p.phase
}

// Offset returns the current distance from the anchor along the axis,
// always within [0, Range].
func (p *Platform) Offset() float64 {
	return p.Def.Range * tri(p.phase)
}

// Advance moves a moving platform by dt seconds and records its displacement.
// Static platforms and non-positive dt leave DX, DY at zero.
func (p *Platform) Advance(dt float64) {
	p.DX, p.DY = 0, 0
	if !p.Def.Moving() || p.Def.Range <= 0 || !(dt > 0) {
		return
	}

	p.phase = math.Mod(p.phase+p.Def.Speed*dt/p.Def.Range, 2)
	if p.phase < 0 {
		p.phase += 2
	}

	off := p.Offset()
	prevX, prevY := p.Box.X, p.Box.Y
	switch p.Def.Axis {
	case level.AxisX:
		p.Box.X = p.Def.X + off
	case level.AxisY:
		p.Box.Y = p.Def.Y + off
	}
	p.DX = p.Box.X - prevX
	p.DY = p.Box.Y - prevY
}

// PrevBox returns where the platform was before the last Advance.
func (p *Platform) PrevBox() core.Box {
	b := p.Box
	b.X -= p.DX
	b.Y -= p.DY
	return b
}

// tri maps phase [0,2) onto a triangle wave in [0,1].
func tri(phase float64) float64 {
	if phase <= 1 {
		return phase
	}
	return 2 - phase
}
