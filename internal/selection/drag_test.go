package selection

import "testing"

func TestDragNewSelection(t *testing.T) {
	r := Empty()
	d := NewDrag(r, Point{})
	if h := d.Begin(Point{100, 100}); h != HandleNew {
		t.Fatalf("begin handle = %v, want HandleNew", h)
	}
	d.Update(Point{300, 250})
	got := d.End()
	want := Transform{Left: 100, Top: 100, Width: 200, Height: 150}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if d.Active() {
		t.Fatalf("drag still active after End")
	}
}

func TestDragNewSelectionBackwards(t *testing.T) {
	r := Empty()
	d := NewDrag(r, Point{})
	d.Begin(Point{300, 250})
	d.Update(Point{100, 100})
	want := Transform{Left: 100, Top: 100, Width: 200, Height: 150}
	if got := d.End(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDragTopLeftKeepsOppositeCorner(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 100, Top: 100, Width: 200, Height: 150})
	d := NewDrag(r, Point{})
	if h := d.Begin(Point{100, 100}); h != HandleTopLeft {
		t.Fatalf("begin handle = %v, want HandleTopLeft", h)
	}
	d.Update(Point{80, 60})
	got := d.End()
	want := Transform{Left: 80, Top: 60, Width: 220, Height: 190}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got.Right() != 300 || got.Bottom() != 250 {
		t.Fatalf("opposite corner moved: %+v", got)
	}
}

func TestDragHandlePastAnchorFlips(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 100, Top: 100, Width: 50, Height: 50})
	d := NewDrag(r, Point{})
	if h := d.Begin(Point{150, 125}); h != HandleRight {
		t.Fatalf("begin handle = %v, want HandleRight", h)
	}
	d.Update(Point{70, 125})
	want := Transform{Left: 70, Top: 100, Width: 30, Height: 50}
	if got := d.End(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDragMoveClampsToCanvas(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 10, Top: 10, Width: 40, Height: 40})
	d := NewDrag(r, Point{X: 100, Y: 100})
	if h := d.Begin(Point{30, 30}); h != HandleMove {
		t.Fatalf("begin handle = %v, want HandleMove", h)
	}
	d.Update(Point{0, 0})
	want := Transform{Left: 0, Top: 0, Width: 40, Height: 40}
	if got := r.Transform(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	d.Update(Point{100, 100})
	want = Transform{Left: 60, Top: 60, Width: 40, Height: 40}
	if got := d.End(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDragOutsideStartsOver(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 10, Top: 10, Width: 40, Height: 40})
	d := NewDrag(r, Point{})
	if h := d.Begin(Point{200, 200}); h != HandleNew {
		t.Fatalf("begin handle = %v, want HandleNew", h)
	}
	want := Transform{Left: 200, Top: 200}
	if got := r.Transform(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestHandleAtClearSelection(t *testing.T) {
	if h := HandleAt(Transform{}, Point{}); h != HandleNone {
		t.Fatalf("clear selection has handle %v", h)
	}
}

func TestUpdateWithoutBeginIsIgnored(t *testing.T) {
	r := Empty()
	d := NewDrag(r, Point{})
	d.Update(Point{10, 10})
	if !r.IsClear() {
		t.Fatalf("update without begin mutated region: %+v", r.Transform())
	}
}
