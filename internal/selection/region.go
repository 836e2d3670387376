package selection

import "math"

// Bound selects which values a Region setter accepts.
type Bound int

const (
	// Inclusive accepts zero. It is used while a selection is dragged out
	// from its origin, where a zero width or height is a legal intermediate.
	Inclusive Bound = iota
	// Exclusive rejects zero. It is used for the dimming overlay bands drawn
	// around the selection.
	Exclusive
)

func (b Bound) String() string {
	switch b {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

func (b Bound) accepts(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if b == Exclusive {
		return v > 0
	}
	return v >= 0
}

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Region is a mutable selection rectangle in canvas units. Setters that
// would violate the region's Bound are ignored and the field keeps its
// previous value.
type Region struct {
	bound  Bound
	left   float64
	top    float64
	width  float64
	height float64
}

// New returns an empty region using the provided clamp policy.
func New(b Bound) *Region {
	return &Region{bound: b}
}

// Empty returns an all-zero region with the Inclusive policy.
func Empty() *Region {
	return New(Inclusive)
}

// Bound reports the clamp policy of r.
func (r *Region) Bound() Bound { return r.bound }

func (r *Region) Left() float64   { return r.left }
func (r *Region) Top() float64    { return r.top }
func (r *Region) Width() float64  { return r.width }
func (r *Region) Height() float64 { return r.height }

func (r *Region) SetLeft(v float64) {
	if r.bound.accepts(v) {
		r.left = v
	}
}

func (r *Region) SetTop(v float64) {
	if r.bound.accepts(v) {
		r.top = v
	}
}

func (r *Region) SetWidth(v float64) {
	if r.bound.accepts(v) {
		r.width = v
	}
}

func (r *Region) SetHeight(v float64) {
	if r.bound.accepts(v) {
		r.height = v
	}
}

// Set applies all four setters in order. Each field is checked on its own,
// so a rejected value leaves only that field unchanged.
func (r *Region) Set(t Transform) {
	r.SetLeft(t.Left)
	r.SetTop(t.Top)
	r.SetWidth(t.Width)
	r.SetHeight(t.Height)
}

// Clear resets every field to zero. It bypasses the clamp policy so it
// always succeeds, even for Exclusive regions.
func (r *Region) Clear() {
	r.left, r.top, r.width, r.height = 0, 0, 0, 0
}

// Transform returns a value snapshot of the region.
func (r *Region) Transform() Transform {
	return Transform{Left: r.left, Top: r.top, Width: r.width, Height: r.height}
}

// IsClear reports whether every field is zero.
func (r *Region) IsClear() bool { return r.Transform().IsClear() }

// HasInvalidSize reports whether the region has no area.
func (r *Region) HasInvalidSize() bool { return r.Transform().HasInvalidSize() }

// Contains reports whether p lies inside r, edges included.
func (r *Region) Contains(p Point) bool { return r.Transform().Contains(p) }

// Transform is an immutable snapshot of a Region. Two regions are
// interchangeable when their transforms are equal.
type Transform struct {
	Left, Top, Width, Height float64
}

func (t Transform) IsClear() bool {
	return t.Left == 0 && t.Top == 0 && t.Width == 0 && t.Height == 0
}

func (t Transform) HasInvalidSize() bool {
	return t.Width <= 0 || t.Height <= 0
}

func (t Transform) Contains(p Point) bool {
	return p.X >= t.Left && p.X <= t.Left+t.Width &&
		p.Y >= t.Top && p.Y <= t.Top+t.Height
}

// Right returns the x coordinate of the right edge.
func (t Transform) Right() float64 { return t.Left + t.Width }

// Bottom returns the y coordinate of the bottom edge.
func (t Transform) Bottom() float64 { return t.Top + t.Height }
