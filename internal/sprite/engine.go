package sprite

import (
	"math"

	"github.com/vovakirdan/skunk-squad/internal/core"
	"github.com/vovakirdan/skunk-squad/internal/telemetry"
)

// DefaultFPS is used when a clip declares a non-positive frame rate.
const DefaultFPS = 10

// Descriptor is one playable animation over a spritesheet.
//
// Frame i occupies [FrameOffset + i*FrameStride, +FrameWidth) horizontally
// and the full sheet height. The last frame never extends past SourceWidth.
type Descriptor struct {
	Key             string
	SourceWidth     int
	SourceHeight    int
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameStride     int
	FrameOffset     int
	Remainder       int  // pixels at the right edge that belong to no frame
	Mismatch        bool // sheet width did not divide evenly into frames
	Missing         bool // sheet unknown; a single empty frame stands in
	Corrupt         bool // frame count or rate was unusable and replaced
	SecondsPerFrame float64
	Loop            bool

	frame   int
	elapsed float64
	done    bool
}

// Current returns the index of the frame being shown.
func (d *Descriptor) Current() int {
	return d.frame
}

// Done reports whether a non-looping play has completed.
func (d *Descriptor) Done() bool {
	return d.done
}

// Frame returns the source rectangle of frame i, clamped to the valid range.
func (d *Descriptor) Frame(i int) core.Rect {
	if d.FrameCount <= 0 {
		return core.Rect{}
	}
	i = core.Clamp(i, 0, d.FrameCount-1)
	return core.NewRect(d.FrameOffset+i*d.FrameStride, 0, d.FrameWidth, d.FrameHeight)
}

// CurrentFrame returns the source rectangle of the frame being shown.
func (d *Descriptor) CurrentFrame() core.Rect {
	return d.Frame(d.frame)
}

// Advance moves playback forward by dt seconds. It returns true exactly once
// per play, when a non-looping animation tries to step past its last frame.
func (d *Descriptor) Advance(dt float64) bool {
	if d.SecondsPerFrame <= 0 || d.done || d.FrameCount <= 0 {
		return false
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return false
	}

	d.elapsed += dt
	for d.elapsed >= d.SecondsPerFrame {
		d.elapsed -= d.SecondsPerFrame
		switch {
		case d.frame < d.FrameCount-1:
			d.frame++
		case d.Loop:
			d.frame = 0
		default:
			d.done = true
			d.elapsed = 0
			return true
		}
	}
	return false
}

// Reset restarts the play from the first frame.
func (d *Descriptor) Reset() {
	d.frame = 0
	d.elapsed = 0
	d.done = false
}

// Engine builds descriptors from sheet sizes.
type Engine struct {
	sizes    SizeSource
	counters *telemetry.Counters
}

// NewEngine creates an engine. counters may be nil.
func NewEngine(sizes SizeSource, counters *telemetry.Counters) *Engine {
	if sizes == nil {
		sizes = Manifest{}
	}
	return &Engine{sizes: sizes, counters: counters}
}

// Create slices the sheet for key into frameCount uniform frames.
// It never fails: a missing sheet yields a placeholder descriptor, unusable
// counts or rates are replaced, and uneven widths are flagged and counted.
func (e *Engine) Create(key string, frameCount int, fps float64, loop bool) *Descriptor {
	d := &Descriptor{Key: key, Loop: loop}

	if frameCount <= 0 || !(fps > 0) || math.IsInf(fps, 0) {
		d.Corrupt = true
		e.counters.Inc(telemetry.SpriteCorrupt)
		if frameCount <= 0 {
			frameCount = 1
		}
		if !(fps > 0) || math.IsInf(fps, 0) {
			fps = DefaultFPS
		}
	}
	d.SecondsPerFrame = 1 / fps

	size, ok := e.sizes.SpriteSize(key)
	if !ok || size.Width <= 0 || size.Height <= 0 {
		d.Missing = true
		d.FrameCount = 1
		e.counters.Inc(telemetry.SpriteMissing)
		return d
	}

	d.SourceWidth = size.Width
	d.SourceHeight = size.Height
	d.FrameCount = frameCount
	d.FrameHeight = size.Height

	pad := size.Pad
	if pad < 0 || pad*(frameCount-1) >= size.Width {
		pad = 0
	}
	usable := size.Width - pad*(frameCount-1)
	d.FrameWidth = usable / frameCount
	d.FrameStride = d.FrameWidth + pad
	d.FrameOffset = 0
	d.Remainder = usable % frameCount
	if d.Remainder != 0 {
		d.Mismatch = true
		e.counters.Inc(telemetry.SpriteMismatch)
	}
	return d
}
