package selection

import (
	"math"
	"testing"
)

func TestInclusiveAcceptsZero(t *testing.T) {
	r := New(Inclusive)
	r.Set(Transform{Left: 5, Top: 6, Width: 7, Height: 8})
	r.SetWidth(0)
	r.SetHeight(0)
	if r.Width() != 0 || r.Height() != 0 {
		t.Fatalf("inclusive region rejected zero: %+v", r.Transform())
	}
	r.SetLeft(0)
	r.SetTop(0)
	if !r.IsClear() {
		t.Fatalf("expected clear region, got %+v", r.Transform())
	}
}

func TestExclusiveRejectsZero(t *testing.T) {
	r := New(Exclusive)
	r.Set(Transform{Left: 5, Top: 6, Width: 7, Height: 8})
	r.SetLeft(0)
	r.SetTop(0)
	r.SetWidth(0)
	r.SetHeight(0)
	want := Transform{Left: 5, Top: 6, Width: 7, Height: 8}
	if got := r.Transform(); got != want {
		t.Fatalf("exclusive region accepted zero: got %+v want %+v", got, want)
	}
}

func TestSettersIgnoreInvalidValues(t *testing.T) {
	for _, b := range []Bound{Inclusive, Exclusive} {
		t.Run(b.String(), func(t *testing.T) {
			r := New(b)
			r.Set(Transform{Left: 1, Top: 2, Width: 3, Height: 4})
			for _, v := range []float64{-1, -0.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
				r.SetLeft(v)
				r.SetTop(v)
				r.SetWidth(v)
				r.SetHeight(v)
			}
			want := Transform{Left: 1, Top: 2, Width: 3, Height: 4}
			if got := r.Transform(); got != want {
				t.Fatalf("got %+v want %+v", got, want)
			}
		})
	}
}

func TestClearAlwaysSucceeds(t *testing.T) {
	for _, b := range []Bound{Inclusive, Exclusive} {
		r := New(b)
		r.Set(Transform{Left: 10, Top: 20, Width: 30, Height: 40})
		r.Clear()
		if !r.IsClear() {
			t.Fatalf("%v: clear left %+v", b, r.Transform())
		}
		if r.Bound() != b {
			t.Fatalf("clear changed bound to %v", r.Bound())
		}
	}
}

func TestEmptyIsClear(t *testing.T) {
	r := Empty()
	if !r.IsClear() {
		t.Fatalf("empty region is not clear: %+v", r.Transform())
	}
	if !r.HasInvalidSize() {
		t.Fatalf("empty region should have invalid size")
	}
	if r.Bound() != Inclusive {
		t.Fatalf("empty region bound = %v, want inclusive", r.Bound())
	}
}

func TestHasInvalidSizeIgnoresPosition(t *testing.T) {
	tests := []struct {
		tr   Transform
		want bool
	}{
		{Transform{Left: 0, Top: 0, Width: 10, Height: 10}, false},
		{Transform{Left: 500, Top: 300, Width: 10, Height: 10}, false},
		{Transform{Left: 10, Top: 10, Width: 0, Height: 5}, true},
		{Transform{Left: 10, Top: 10, Width: 5, Height: 0}, true},
		{Transform{Left: 0, Top: 0, Width: 0, Height: 0}, true},
		{Transform{Left: 99, Top: 1, Width: -1, Height: 4}, true},
	}
	for _, tc := range tests {
		if got := tc.tr.HasInvalidSize(); got != tc.want {
			t.Fatalf("HasInvalidSize(%+v) = %v, want %v", tc.tr, got, tc.want)
		}
	}
}

func TestIsClearRequiresAllFields(t *testing.T) {
	r := Empty()
	r.SetLeft(3)
	if r.IsClear() {
		t.Fatalf("region with left=3 reported clear")
	}
	r.Clear()
	r.SetTop(1)
	if r.IsClear() {
		t.Fatalf("region with top=1 reported clear")
	}
}

func TestContainsCornersAndOutside(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 10, Top: 20, Width: 30, Height: 40})
	corners := []Point{{10, 20}, {40, 20}, {10, 60}, {40, 60}}
	for _, p := range corners {
		if !r.Contains(p) {
			t.Fatalf("corner %+v not contained", p)
		}
	}
	outside := []Point{{9.99, 30}, {40.01, 30}, {20, 19.99}, {20, 60.01}}
	for _, p := range outside {
		if r.Contains(p) {
			t.Fatalf("point %+v unexpectedly contained", p)
		}
	}
}

func TestTransformIsSnapshot(t *testing.T) {
	r := Empty()
	r.Set(Transform{Left: 1, Top: 2, Width: 3, Height: 4})
	snap := r.Transform()
	r.SetWidth(100)
	if snap.Width != 3 {
		t.Fatalf("snapshot changed with region: %+v", snap)
	}
	other := New(Exclusive)
	other.Set(Transform{Left: 1, Top: 2, Width: 100, Height: 4})
	if other.Transform() != r.Transform() {
		t.Fatalf("regions with equal geometry should compare equal by transform")
	}
}
