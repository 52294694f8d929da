package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skunk-squad/internal/level"
)

const dt = 1.0 / 60

func testWorld(platforms ...level.PlatformDef) *World {
	w := &World{Width: 2000, Gravity: 1500, MaxFall: 800, DeathY: 900}
	for _, def := range platforms {
		w.Platforms = append(w.Platforms, NewPlatform(def))
	}
	return w
}

func ground() level.PlatformDef {
	return level.PlatformDef{X: 0, Y: 700, Width: 2000, Height: 40, Kind: level.KindStatic}
}

func TestFallAndLand(t *testing.T) {
	w := testWorld(ground())
	b := NewBody(100, 500, 50, 80)

	landed := false
	for i := 0; i < 120; i++ {
		w.AdvancePlatforms(dt)
		c := w.Step(&b, dt)
		if c.Landed {
			landed = true
		}
	}

	require.True(t, landed)
	assert.True(t, b.Grounded)
	assert.Equal(t, 0, b.Ground)
	assert.InDelta(t, 700, b.Y+b.H, 1e-9)
	assert.Zero(t, b.VY)
}

func TestMaxFallSpeed(t *testing.T) {
	w := testWorld()
	w.DeathY = 1e9
	b := NewBody(100, 0, 10, 10)
	for i := 0; i < 120; i++ {
		w.Step(&b, dt)
	}
	assert.Equal(t, 800.0, b.VY)
}

func TestCeilingHit(t *testing.T) {
	w := testWorld(ground(), level.PlatformDef{X: 0, Y: 500, Width: 400, Height: 24, Kind: level.KindStatic})
	b := NewBody(100, 540, 50, 80)
	b.VY = -600

	hit := false
	for i := 0; i < 10 && !hit; i++ {
		c := w.Step(&b, dt)
		hit = c.HitCeiling
	}
	require.True(t, hit)
	assert.GreaterOrEqual(t, b.Y, 524.0-1e-9)
	assert.GreaterOrEqual(t, b.VY, 0.0)
}

func TestWallStopsHorizontal(t *testing.T) {
	wall := level.PlatformDef{X: 300, Y: 400, Width: 50, Height: 300, Kind: level.KindStatic}
	w := testWorld(ground(), wall)
	b := NewBody(200, 620, 50, 80)
	b.Grounded, b.Ground = true, 0

	for i := 0; i < 60; i++ {
		b.VX = 300
		w.Step(&b, dt)
	}

	assert.InDelta(t, 250, b.X, 1e-9)
	assert.True(t, b.WallRight)
	assert.True(t, b.Grounded, "wall contact must not unground the body")
	assert.Equal(t, 0, b.Ground)
}

func TestLevelBoundsClamp(t *testing.T) {
	w := testWorld(ground())
	b := NewBody(3, 620, 50, 80)
	b.Grounded, b.Ground = true, 0
	b.VX = -300

	c := w.Step(&b, dt)
	assert.Zero(t, b.X)
	assert.Zero(t, b.VX)
	assert.True(t, c.HitWall)

	b.X = w.Width - b.W - 1
	b.VX = 300
	w.Step(&b, dt)
	assert.Equal(t, w.Width-b.W, b.X)
}

func TestDeathPlane(t *testing.T) {
	w := testWorld()
	b := NewBody(100, 850, 50, 80)
	var c Contact
	for i := 0; i < 30 && !c.Fell; i++ {
		c = w.Step(&b, dt)
	}
	assert.True(t, c.Fell)
}

func TestSmallestCorrectionWins(t *testing.T) {
	// Two overlapping platforms. The first pass snaps onto the lower top
	// (smaller correction), the second lifts the body onto the higher one.
	low := level.PlatformDef{X: 0, Y: 710, Width: 400, Height: 40, Kind: level.KindStatic}
	high := level.PlatformDef{X: 0, Y: 700, Width: 400, Height: 40, Kind: level.KindStatic}
	w := testWorld(low, high)
	b := NewBody(100, 619, 50, 80)
	b.VY = 800

	w.Step(&b, dt)
	assert.True(t, b.Grounded)
	assert.Equal(t, 1, b.Ground)
	assert.InDelta(t, 700, b.Y+b.H, 1e-9)
}

func TestPlatformOscillation(t *testing.T) {
	def := level.PlatformDef{X: 800, Y: 400, Width: 120, Height: 24, Kind: level.KindMoving, Axis: level.AxisY, Range: 100, Speed: 90}
	p := NewPlatform(def)

	minY, maxY := p.Box.Y, p.Box.Y
	for i := 0; i < 600; i++ {
		p.Advance(dt)
		assert.GreaterOrEqual(t, p.Phase(), 0.0)
		assert.Less(t, p.Phase(), 2.0)
		minY = min(minY, p.Box.Y)
		maxY = max(maxY, p.Box.Y)
	}
	assert.GreaterOrEqual(t, minY, 400.0)
	assert.LessOrEqual(t, maxY, 500.0)
	assert.InDelta(t, 500, maxY, 2, "platform should reach the far end")
}

func TestPlatformIgnoresBadDelta(t *testing.T) {
	p := NewPlatform(level.PlatformDef{X: 0, Y: 0, Width: 10, Height: 10, Kind: level.KindMoving, Axis: level.AxisX, Range: 50, Speed: 10})
	p.Advance(-1)
	p.Advance(0)
	assert.Zero(t, p.Phase())
	assert.Zero(t, p.DX)
}

func TestRiderStaysOnMovingPlatform(t *testing.T) {
	for _, speed := range []float64{1.5, 90, 150} {
		def := level.PlatformDef{X: 800, Y: 400, Width: 120, Height: 24, Kind: level.KindMoving, Axis: level.AxisY, Range: 100, Speed: speed}
		w := testWorld(def)
		b := NewBody(830, 320, 50, 80)
		b.Grounded, b.Ground = true, 0

		steps := int(2 * 100 / speed * 60 * 1.5)
		for i := 0; i < steps; i++ {
			w.AdvancePlatforms(dt)
			w.Step(&b, dt)

			require.True(t, b.Grounded, "speed %v step %d: rider lost the platform", speed, i)
			bottom := b.Y + b.H
			assert.GreaterOrEqual(t, bottom, 400.0-1e-6)
			assert.LessOrEqual(t, bottom, 500.0+1e-6)
			assert.InDelta(t, w.Platforms[0].Box.Top(), bottom, 1e-6)
		}
	}
}

func TestRiderCarriedHorizontally(t *testing.T) {
	def := level.PlatformDef{X: 600, Y: 450, Width: 100, Height: 24, Kind: level.KindMoving, Axis: level.AxisX, Range: 100, Speed: 120}
	w := testWorld(def)
	b := NewBody(625, 370, 50, 80)
	b.Grounded, b.Ground = true, 0

	for i := 0; i < 30; i++ {
		w.AdvancePlatforms(dt)
		w.Step(&b, dt)
	}
	p := w.Platforms[0]
	assert.InDelta(t, p.Box.X+25, b.X, 1e-6)
	assert.True(t, b.Grounded)
}

func TestDeterministicSteps(t *testing.T) {
	run := func() Body {
		w := testWorld(ground(), level.PlatformDef{X: 400, Y: 500, Width: 100, Height: 24, Kind: level.KindMoving, Axis: level.AxisX, Range: 100, Speed: 120})
		b := NewBody(100, 300, 50, 80)
		for i := 0; i < 300; i++ {
			b.VX = 200
			if i%40 == 0 && b.Grounded {
				b.VY = -600
			}
			w.AdvancePlatforms(dt)
			w.Step(&b, dt)
		}
		return b
	}
	assert.Equal(t, run(), run())
}
