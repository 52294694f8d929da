package sprite

import (
	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// State keys shared by actors.
const (
	StateIdle    = "idle"
	StateWalk    = "walk"
	StateJump    = "jump"
	StateFall    = "fall"
	StateAttack  = "attack"
	StateAttack1 = "attack1"
	StateAttack2 = "attack2"
	StateAttack3 = "attack3"
	StateHit     = "hit"
	StateDeath   = "death"
)

// Clip binds an animation state to a sheet.
type Clip struct {
	Sprite string
	Frames int
	FPS    float64
	Loop   bool
}

// ClipsFromConfig converts a configured clip table.
func ClipsFromConfig(in map[string]config.ClipConfig) map[string]Clip {
	out := make(map[string]Clip, len(in))
	for k, c := range in {
		out[k] = Clip{Sprite: c.Sprite, Frames: c.Frames, FPS: c.FPS, Loop: c.Loop}
	}
	return out
}

// Animator plays one clip at a time from a clip table.
type Animator struct {
	engine   *Engine
	clips    map[string]Clip
	cache    map[string]*Descriptor
	state    string
	current  *Descriptor
	counters *telemetry.Counters
}

// NewAnimator creates an animator showing the idle clip.
func NewAnimator(engine *Engine, clips map[string]Clip) *Animator {
	a := &Animator{
		engine:   engine,
		clips:    clips,
		cache:    make(map[string]*Descriptor, len(clips)),
		counters: engine.counters,
	}
	a.state = StateIdle
	a.current = a.descriptor(StateIdle)
	return a
}

// State returns the active state key.
func (a *Animator) State() string {
	return a.state
}

// Current returns the active descriptor.
func (a *Animator) Current() *Descriptor {
	return a.current
}

// Has reports whether the table defines key.
func (a *Animator) Has(key string) bool {
	_, ok := a.clips[key]
	return ok
}

// SetState switches clips and restarts playback. Setting the active state
// again is a no-op. Unknown keys fall back to idle.
func (a *Animator) SetState(key string) {
	if _, ok := a.clips[key]; !ok && key != StateIdle {
		a.counters.Inc(telemetry.AnimUnknownState)
		key = StateIdle
	}
	if key == a.state {
		return
	}
	a.state = key
	a.current = a.descriptor(key)
	a.current.Reset()
}

// Advance moves the active clip forward; true when a non-looping clip completes.
func (a *Animator) Advance(dt float64) bool {
	return a.current.Advance(dt)
}

// Done reports whether the active non-looping clip has finished.
func (a *Animator) Done() bool {
	return a.current.Done()
}

func (a *Animator) descriptor(key string) *Descriptor {
	if d, ok := a.cache[key]; ok {
		return d
	}
	clip, ok := a.clips[key]
	var d *Descriptor
	if ok {
		d = a.engine.Create(clip.Sprite, clip.Frames, clip.FPS, clip.Loop)
	} else {
		// No idle clip either: a placeholder keeps rendering and timing alive.
		d = a.engine.Create("", 1, DefaultFPS, true)
	}
	a.cache[key] = d
	return d
}
