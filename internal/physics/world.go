package physics

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/level"
)

const (
	// maxPasses bounds how many overlaps are resolved per axis per step.
	maxPasses = 4
	// contactTolerance absorbs float drift when deciding which side a body came from.
	contactTolerance = 0.5
)

// Body is a simulated axis-aligned rectangle. Y grows downward.
type Body struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	Grounded  bool
	Ground    int // index of the supporting platform, -1 when airborne
	WallLeft  bool
	WallRight bool
}

// NewBody creates an airborne body.
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: w, H: h, Ground: -1}
}

// Box returns the body's rectangle.
func (b Body) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// Contact summarizes what happened to a body during one step.
type Contact struct {
	Landed     bool // became grounded this step
	HitCeiling bool
	HitWall    bool
	Fell       bool // passed the death plane
}

// World is the collision geometry of the active level.
type World struct {
	Platforms []*Platform
	Width     float64
	Gravity   float64
	MaxFall   float64
	DeathY    float64
}

// NewWorld builds runtime platforms for a level.
func NewWorld(l level.Level, phys config.PhysicsConfig) *World {
	w := &World{
		Width:   l.Width,
		Gravity: phys.Gravity,
		MaxFall: phys.MaxFallSpeed,
		DeathY:  phys.DeathPlaneY,
	}
	for _, def := range l.Platforms {
		w.Platforms = append(w.Platforms, NewPlatform(def))
	}
	return w
}

// AdvancePlatforms moves every moving platform. It runs once per tick,
// before any body is stepped.
func (w *World) AdvancePlatforms(dt float64) {
	for _, p := range w.Platforms {
		p.Advance(dt)
	}
}

// Platform returns platform i, or nil when out of range.
func (w *World) Platform(i int) *Platform {
	if i < 0 || i >= len(w.Platforms) {
		return nil
	}
	return w.Platforms[i]
}

// Step advances one body by dt: carry by its supporting platform, integrate
// gravity and velocity, resolve vertical then horizontal overlaps, clamp to
// the level bounds and test the death plane.
func (w *World) Step(b *Body, dt float64) Contact {
	var c Contact
	wasGrounded := b.Grounded

	// Carry
	if b.Grounded {
		if p := w.Platform(b.Ground); p != nil {
			b.X += p.DX
			b.Y += p.DY
		}
	}
	prev := b.Box()

	b.Grounded = false
	b.Ground = -1
	b.WallLeft = false
	b.WallRight = false

	// Semi-implicit Euler
	b.VY += w.Gravity * dt
	if b.VY > w.MaxFall {
		b.VY = w.MaxFall
	}
	b.X += b.VX * dt
	b.Y += b.VY * dt

	w.resolveVertical(b, prev, &c)
	w.resolveHorizontal(b, prev, &c)

	// Level bounds
	if maxX := w.Width - b.W; b.X > maxX {
		b.X = maxX
		if b.VX > 0 {
			b.VX = 0
		}
		b.WallRight = true
		c.HitWall = true
	}
	if b.X < 0 {
		b.X = 0
		if b.VX < 0 {
			b.VX = 0
		}
		b.WallLeft = true
		c.HitWall = true
	}

	c.Landed = b.Grounded && !wasGrounded
	c.Fell = b.Y > w.DeathY
	return c
}

// resolveVertical pushes the body out of platforms it entered from above or
// below, smallest correction first.
func (w *World) resolveVertical(b *Body, prev core.Box, c *Contact) {
	for pass := 0; pass < maxPasses; pass++ {
		best, bestDY := -1, 0.0
		landing := false

		box := b.Box()
		for i, p := range w.Platforms {
			if !box.Intersects(p.Box) {
				continue
			}
			pb := p.PrevBox()

			var dy float64
			var down bool
			switch {
			case b.VY >= 0 && prev.Bottom() <= math.Max(pb.Top(), p.Box.Top())+contactTolerance:
				dy, down = p.Box.Top()-box.Bottom(), true
			case b.VY < 0 && prev.Top() >= math.Min(pb.Bottom(), p.Box.Bottom())-contactTolerance:
				dy = p.Box.Bottom() - box.Top()
			default:
				continue
			}
			if best < 0 || math.Abs(dy) < math.Abs(bestDY) {
				best, bestDY, landing = i, dy, down
			}
		}
		if best < 0 {
			return
		}

		b.Y += bestDY
		if landing {
			b.Grounded = true
			b.Ground = best
			if b.VY > 0 {
				b.VY = 0
			}
		} else {
			c.HitCeiling = true
			if b.VY < 0 {
				b.VY = 0
			}
		}
	}
}

// resolveHorizontal pushes the body sideways out of any remaining overlap.
// The side the body came from decides the direction; otherwise the shorter
// push wins. Grounded is never changed here.
func (w *World) resolveHorizontal(b *Body, prev core.Box, c *Contact) {
	for pass := 0; pass < maxPasses; pass++ {
		best, bestDX := -1, 0.0

		box := b.Box()
		for i, p := range w.Platforms {
			if !box.Intersects(p.Box) {
				continue
			}
			pb := p.PrevBox()

			left := p.Box.Left() - box.Right()  // <= 0
			right := p.Box.Right() - box.Left() // >= 0
			var dx float64
			switch {
			case prev.Right() <= math.Min(pb.Left(), p.Box.Left())+contactTolerance:
				dx = left
			case prev.Left() >= math.Max(pb.Right(), p.Box.Right())-contactTolerance:
				dx = right
			case -left < right:
				dx = left
			default:
				dx = right
			}
			if best < 0 || math.Abs(dx) < math.Abs(bestDX) {
				best, bestDX = i, dx
			}
		}
		if best < 0 {
			return
		}

		b.X += bestDX
		c.HitWall = true
		if bestDX < 0 {
			b.WallRight = true
			if b.VX > 0 {
				b.VX = 0
			}
		} else {
			b.WallLeft = true
			if b.VX < 0 {
				b.VX = 0
			}
		}
	}
}

// Supporting returns the platform the body stands on, or nil.
func (w *World) Supporting(b Body) *Platform {
	if !b.Grounded {
		return nil
	}
	return w.Platform(b.Ground)
}
