package sprite

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

func newTestEngine(m Manifest) (*Engine, *telemetry.Counters) {
	c := telemetry.NewCounters(nil)
	return NewEngine(m, c), c
}

func TestCreateUnevenSheet(t *testing.T) {
	e, c := newTestEngine(Manifest{"ninja_walk": {Width: 640, Height: 128}})

	var d *Descriptor
	require.NotPanics(t, func() { d = e.Create("ninja_walk", 6, 12, true) })

	assert.Equal(t, 106, d.FrameWidth)
	assert.Equal(t, 106, d.FrameStride)
	assert.Equal(t, 0, d.FrameOffset)
	assert.Equal(t, 128, d.FrameHeight)
	assert.Equal(t, 4, d.Remainder)
	assert.True(t, d.Mismatch)
	assert.LessOrEqual(t, d.FrameStride*d.FrameCount, d.SourceWidth)
	assert.Equal(t, 1, c.Get(telemetry.SpriteMismatch))

	// Playback still cycles all six frames.
	seen := map[int]bool{}
	for i := 0; i < 12; i++ {
		d.Advance(1.0 / 12)
		seen[d.Current()] = true
	}
	assert.Len(t, seen, 6)
}

func TestCreateEvenSheet(t *testing.T) {
	e, c := newTestEngine(DefaultManifest())

	d := e.Create("ninja_idle", 4, 8, true)
	assert.Equal(t, 128, d.FrameWidth)
	assert.False(t, d.Mismatch)
	assert.Zero(t, d.Remainder)
	assert.Equal(t, 0, c.Get(telemetry.SpriteMismatch))

	r := d.Frame(3)
	assert.Equal(t, 384, r.X)
	assert.Equal(t, 128, r.W)

	// Out of range indices clamp.
	assert.Equal(t, d.Frame(3), d.Frame(99))
}

func TestCreatePaddedSheet(t *testing.T) {
	e, _ := newTestEngine(DefaultManifest())

	d := e.Create("boss_walk", 4, 6, true)
	assert.Equal(t, 192, d.FrameWidth)
	assert.Equal(t, 194, d.FrameStride)
	assert.False(t, d.Mismatch)

	last := d.Frame(3)
	assert.Equal(t, d.SourceWidth, last.X+last.W)
}

func TestCreateMissingSheet(t *testing.T) {
	e, c := newTestEngine(Manifest{})

	d := e.Create("nope", 4, 10, true)
	assert.True(t, d.Missing)
	assert.Equal(t, 1, d.FrameCount)
	assert.Equal(t, 0, d.FrameWidth)
	assert.Equal(t, 1, c.Get(telemetry.SpriteMissing))

	require.NotPanics(t, func() { d.Advance(1) })
	assert.Equal(t, 0, d.Current())
}

func TestCreateCorruptDescriptor(t *testing.T) {
	e, c := newTestEngine(Manifest{"s": {Width: 100, Height: 10}})

	tests := []struct {
		name   string
		frames int
		fps    float64
	}{
		{"zero frames", 0, 10},
		{"negative frames", -3, 10},
		{"zero fps", 4, 0},
		{"nan fps", 4, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Create("s", tt.frames, tt.fps, true)
			assert.True(t, d.Corrupt)
			assert.Greater(t, d.SecondsPerFrame, 0.0)
			assert.GreaterOrEqual(t, d.FrameCount, 1)
		})
	}
	assert.Equal(t, len(tests), c.Get(telemetry.SpriteCorrupt))
}

func TestAdvanceNeverSpinsOnZeroRate(t *testing.T) {
	d := &Descriptor{FrameCount: 4, SecondsPerFrame: 0, Loop: true}
	assert.False(t, d.Advance(10))
	assert.Equal(t, 0, d.Current())
}

func TestAdvanceNonLoopingCompletesOnce(t *testing.T) {
	e, _ := newTestEngine(Manifest{"death": {Width: 400, Height: 100}})
	d := e.Create("death", 4, 10, false)

	completions := 0
	for i := 0; i < 20; i++ {
		if d.Advance(0.1) {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
	assert.Equal(t, 3, d.Current())
	assert.True(t, d.Done())

	d.Reset()
	assert.False(t, d.Done())
	assert.Equal(t, 0, d.Current())
}

func TestAdvanceIgnoresBadDelta(t *testing.T) {
	d := &Descriptor{FrameCount: 4, SecondsPerFrame: 0.1, Loop: true}
	d.Advance(-1)
	d.Advance(math.NaN())
	d.Advance(math.Inf(1))
	assert.Equal(t, 0, d.Current())
}

func TestAnimatorSetState(t *testing.T) {
	e, c := newTestEngine(DefaultManifest())
	cfg := config.DefaultGameConfig()
	a := NewAnimator(e, ClipsFromConfig(cfg.Clips("player")))

	assert.Equal(t, StateIdle, a.State())

	a.SetState(StateWalk)
	a.Advance(1.0 / 12)
	a.Advance(1.0 / 12)
	frame := a.Current().Current()
	require.Equal(t, 2, frame)

	// Same key keeps playback position.
	a.SetState(StateWalk)
	assert.Equal(t, frame, a.Current().Current())

	// Switching resets.
	a.SetState(StateJump)
	a.SetState(StateWalk)
	assert.Equal(t, 0, a.Current().Current())

	// Unknown keys fall back to idle and are counted.
	a.SetState("moonwalk")
	assert.Equal(t, StateIdle, a.State())
	assert.Equal(t, 1, c.Get(telemetry.AnimUnknownState))
}

func TestAnimatorWithoutIdle(t *testing.T) {
	e, _ := newTestEngine(Manifest{})
	a := NewAnimator(e, map[string]Clip{})
	require.NotNil(t, a.Current())
	assert.True(t, a.Current().Missing)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 640, 32))))
	require.NoError(t, f.Close())

	src := Chain{DirSource{Root: dir}, Manifest{"other": {Width: 10, Height: 10}}}

	size, ok := src.SpriteSize("sheet")
	require.True(t, ok)
	assert.Equal(t, Size{Width: 640, Height: 32}, size)

	_, ok = src.SpriteSize("other")
	assert.True(t, ok)

	_, ok = src.SpriteSize("missing")
	assert.False(t, ok)
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte("sprites:\n  a: { width: 10, height: 5, pad: 1 }\n"))
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 10, Height: 5, Pad: 1}, m["a"])

	_, err = ParseManifest([]byte("sprites: ["))
	assert.Error(t, err)
}
