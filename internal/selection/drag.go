package selection

import "math"

// HandleSize is the side of the square grab handles, in canvas units.
const HandleSize = 8

// Handle identifies what part of the selection a drag gesture moves.
type Handle int

const (
	HandleNone Handle = iota
	HandleNew
	HandleMove
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// handleOrder matches the order of HandleRects.
var handleOrder = []Handle{
	HandleTopLeft,
	HandleTop,
	HandleTopRight,
	HandleRight,
	HandleBottomRight,
	HandleBottom,
	HandleBottomLeft,
	HandleLeft,
}

// HandleRects returns the grab squares of t, in handleOrder.
func HandleRects(t Transform) []Transform {
	hs := float64(HandleSize) / 2
	cx := t.Left + t.Width/2
	cy := t.Top + t.Height/2
	sq := func(x, y float64) Transform {
		return Transform{Left: x - hs, Top: y - hs, Width: HandleSize, Height: HandleSize}
	}
	return []Transform{
		sq(t.Left, t.Top),
		sq(cx, t.Top),
		sq(t.Right(), t.Top),
		sq(t.Right(), cy),
		sq(t.Right(), t.Bottom()),
		sq(cx, t.Bottom()),
		sq(t.Left, t.Bottom()),
		sq(t.Left, cy),
	}
}

// HandleAt reports which handle of t lies under p. A clear selection has
// no handles.
func HandleAt(t Transform, p Point) Handle {
	if t.IsClear() {
		return HandleNone
	}
	for i, hr := range HandleRects(t) {
		if hr.Contains(p) {
			return handleOrder[i]
		}
	}
	return HandleNone
}

// Drag translates pointer gestures into Region mutations. Every update is
// applied through the region setters, so the clamp policy still holds.
type Drag struct {
	region *Region
	// Limit, when non-zero, is the canvas size the selection is kept within.
	Limit Point

	handle Handle
	start  Point
	origin Transform
}

// NewDrag returns a controller mutating r.
func NewDrag(r *Region, limit Point) *Drag {
	return &Drag{region: r, Limit: limit}
}

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool { return d.handle != HandleNone }

// Handle reports the handle grabbed by the current gesture.
func (d *Drag) Handle() Handle { return d.handle }

// Begin starts a gesture at p. Pressing a handle resizes, pressing inside
// the selection moves it and pressing anywhere else starts a new selection
// anchored at p.
func (d *Drag) Begin(p Point) Handle {
	p = d.clamp(p)
	t := d.region.Transform()
	h := HandleAt(t, p)
	if h == HandleNone {
		if !t.IsClear() && t.Contains(p) {
			h = HandleMove
		} else {
			h = HandleNew
			d.region.Clear()
			d.region.Set(Transform{Left: p.X, Top: p.Y})
			t = d.region.Transform()
		}
	}
	d.handle = h
	d.start = p
	d.origin = t
	return h
}

// Update moves the grabbed handle to p. Dragging a handle past the opposite
// edge flips the rectangle so the opposite corner stays fixed and the size
// never goes negative.
func (d *Drag) Update(p Point) {
	if d.handle == HandleNone {
		return
	}
	p = d.clamp(p)
	dx := p.X - d.start.X
	dy := p.Y - d.start.Y
	o := d.origin
	x0, y0, x1, y1 := o.Left, o.Top, o.Right(), o.Bottom()
	switch d.handle {
	case HandleNew:
		x0, y0, x1, y1 = d.start.X, d.start.Y, p.X, p.Y
	case HandleMove:
		dx = d.clampShift(dx, x0, x1, d.Limit.X)
		dy = d.clampShift(dy, y0, y1, d.Limit.Y)
		x0, x1 = x0+dx, x1+dx
		y0, y1 = y0+dy, y1+dy
	case HandleTopLeft:
		x0, y0 = x0+dx, y0+dy
	case HandleTop:
		y0 += dy
	case HandleTopRight:
		y0, x1 = y0+dy, x1+dx
	case HandleRight:
		x1 += dx
	case HandleBottomRight:
		x1, y1 = x1+dx, y1+dy
	case HandleBottom:
		y1 += dy
	case HandleBottomLeft:
		x0, y1 = x0+dx, y1+dy
	case HandleLeft:
		x0 += dx
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	d.region.Set(Transform{Left: x0, Top: y0, Width: x1 - x0, Height: y1 - y0})
}

// End finishes the gesture and returns the resulting selection.
func (d *Drag) End() Transform {
	d.handle = HandleNone
	return d.region.Transform()
}

func (d *Drag) clamp(p Point) Point {
	p.X = math.Max(p.X, 0)
	p.Y = math.Max(p.Y, 0)
	if d.Limit.X > 0 {
		p.X = math.Min(p.X, d.Limit.X)
	}
	if d.Limit.Y > 0 {
		p.Y = math.Min(p.Y, d.Limit.Y)
	}
	return p
}

// clampShift limits a move so the span [lo, hi] stays within [0, limit].
func (d *Drag) clampShift(delta, lo, hi, limit float64) float64 {
	if lo+delta < 0 {
		delta = -lo
	}
	if limit > 0 && hi+delta > limit {
		delta = limit - hi
	}
	return delta
}
