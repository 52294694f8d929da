// Package core provides fundamental types shared by the simulation and its hosts.
// It has no external dependencies (especially no Bubble Tea) so the game logic
// stays pure and testable.
package core

// Rect is an integer rectangle in screen cells, used by the terminal renderer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Epsilon is the penetration depth below which two world boxes are considered
// touching rather than overlapping. Resting contact produces sub-epsilon
// overlaps from float rounding.
const Epsilon = 1e-6

// Box is an axis-aligned rectangle in world pixels. Y grows downward.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a world box.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Intersects reports whether the boxes overlap by more than Epsilon on both axes.
func (b Box) Intersects(o Box) bool {
	ox, oy := b.Overlap(o)
	return ox > Epsilon && oy > Epsilon
}

// Overlap returns the penetration depth on each axis. Non-positive values mean
// the boxes are separated on that axis.
func (b Box) Overlap(o Box) (x, y float64) {
	x = min(b.Right(), o.Right()) - max(b.Left(), o.Left())
	y = min(b.Bottom(), o.Bottom()) - max(b.Top(), o.Top())
	return x, y
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	left := min(b.Left(), o.Left())
	top := min(b.Top(), o.Top())
	return Box{
		X: left,
		Y: top,
		W: max(b.Right(), o.Right()) - left,
		H: max(b.Bottom(), o.Bottom()) - top,
	}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// AbsF returns the absolute value of a float64 without going through math.
func AbsF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
