package view

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/input"
	"github.com/example/snipshot/internal/selection"
	"github.com/example/snipshot/internal/theme"
)

func TestBandsSkipCollapsedSides(t *testing.T) {
	sel := selection.Transform{Left: 0, Top: 10, Width: 30, Height: 20}
	b := Bands(sel, selection.Point{X: 100, Y: 50})
	want := []struct {
		t       selection.Transform
		invalid bool
	}{
		{selection.Transform{Width: 100, Height: 10}, false},
		{selection.Transform{Top: 30, Width: 100, Height: 20}, false},
		{selection.Transform{Top: 10, Height: 20}, true},
		{selection.Transform{Left: 30, Top: 10, Width: 70, Height: 20}, false},
	}
	for i, w := range want {
		if got := b[i].Transform(); got != w.t {
			t.Errorf("band %d = %+v, want %+v", i, got, w.t)
		}
		if b[i].HasInvalidSize() != w.invalid {
			t.Errorf("band %d invalid = %v", i, b[i].HasInvalidSize())
		}
	}
}

func TestBandsClearSelectionDimsEverything(t *testing.T) {
	b := Bands(selection.Transform{}, selection.Point{X: 80, Y: 60})
	if got := b[0].Transform(); got != (selection.Transform{Width: 80, Height: 60}) {
		t.Fatalf("top band = %+v", got)
	}
	for i := 1; i < 4; i++ {
		if !b[i].HasInvalidSize() {
			t.Fatalf("band %d should be empty", i)
		}
	}
}

func white(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestRenderDimsOutsideSelection(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	Render(dst, white(60, 60), Frame{
		Selection: selection.Transform{Left: 10, Top: 5, Width: 20, Height: 10},
		Hover:     -1,
	})
	if c := dst.RGBAAt(14, 10); c.R != 0xff {
		t.Fatalf("inside pixel = %v, want untouched white", c)
	}
	if c := dst.RGBAAt(2, 2); c.R >= 0xc0 {
		t.Fatalf("outside pixel = %v, want dimmed", c)
	}
	if c := dst.RGBAAt(50, 30); c.R >= 0xc0 {
		t.Fatalf("right band pixel = %v, want dimmed", c)
	}
}

func TestRenderUsesTheme(t *testing.T) {
	frame := Frame{Selection: selection.Transform{Left: 20, Top: 10, Width: 10, Height: 10}, Hover: -1}
	plain := image.NewRGBA(image.Rect(0, 0, 60, 60))
	Render(plain, white(60, 60), frame)
	frame.Theme = theme.HighContrast()
	heavy := image.NewRGBA(image.Rect(0, 0, 60, 60))
	Render(heavy, white(60, 60), frame)
	if p, h := plain.RGBAAt(2, 2).R, heavy.RGBAAt(2, 2).R; h >= p || h > 0x50 {
		t.Fatalf("high contrast dim %#x, default %#x", h, p)
	}
}

func TestRenderScalesSource(t *testing.T) {
	src := white(200, 200)
	dst := image.NewRGBA(image.Rect(0, 0, 50, 50))
	Render(dst, src, Frame{Selection: selection.Transform{Width: 50, Height: 50}, Hover: -1})
	if c := dst.RGBAAt(25, 20); c.R != 0xff {
		t.Fatalf("scaled pixel = %v", c)
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusText(selection.Transform{}, ""); !strings.Contains(got, "drag to select") {
		t.Fatalf("clear status = %q", got)
	}
	got := StatusText(selection.Transform{Left: 5, Top: 6, Width: 70, Height: 30}, "")
	if !strings.HasPrefix(got, "70 x 30 at 5,6") {
		t.Fatalf("status = %q", got)
	}
	if got := StatusText(selection.Transform{Width: 1, Height: 1}, "boom"); got != "boom" {
		t.Fatalf("message not shown: %q", got)
	}
}

func TestLayoutButtons(t *testing.T) {
	b := image.Rect(0, 0, 400, 300)
	buttons := LayoutButtons(b)
	if len(buttons) != len(toolbar) {
		t.Fatalf("got %d buttons", len(buttons))
	}
	sr := StatusRect(b)
	for i, btn := range buttons {
		if !btn.Rect.In(sr) {
			t.Fatalf("button %s outside status bar: %v", btn.Label, btn.Rect)
		}
		if i > 0 && btn.Rect.Min.X <= buttons[i-1].Rect.Max.X {
			t.Fatalf("button %s overlaps previous", btn.Label)
		}
		mid := btn.Rect.Min.Add(btn.Rect.Size().Div(2))
		if ButtonAt(buttons, mid) != i {
			t.Fatalf("ButtonAt(%v) != %d", mid, i)
		}
	}
	if ButtonAt(buttons, image.Pt(200, 10)) != -1 {
		t.Fatalf("hit outside the toolbar")
	}
}

type fakeClipboard struct {
	img image.Image
	err error
}

func (f *fakeClipboard) WriteImage(img image.Image) error {
	if f.err != nil {
		return f.err
	}
	f.img = img
	return nil
}

func newTestView(cb *fakeClipboard, now func() time.Time) *View {
	c := export.New(export.Options{Clipboard: cb})
	buf := capture.NewBuffer(white(200, 100), image.Point{})
	return New(export.NewSession(c, buf), Options{Now: now})
}

func mouseAt(x, y float32, b mouse.Button, d mouse.Direction) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: b, Direction: d}
}

func dragOut(v *View, x0, y0, x1, y1 float32) {
	v.HandleMouse(mouseAt(x0, y0, mouse.ButtonLeft, mouse.DirPress))
	v.HandleMouse(mouseAt((x0+x1)/2, (y0+y1)/2, mouse.ButtonNone, mouse.DirNone))
	v.HandleMouse(mouseAt(x1, y1, mouse.ButtonLeft, mouse.DirRelease))
}

func TestDragSelectsAndRightClickClears(t *testing.T) {
	v := newTestView(&fakeClipboard{}, nil)
	dragOut(v, 60, 40, 10, 10)
	want := selection.Transform{Left: 10, Top: 10, Width: 50, Height: 30}
	if got := v.session.Region.Transform(); got != want {
		t.Fatalf("selection = %+v, want %+v", got, want)
	}
	if !v.HandleMouse(mouseAt(100, 50, mouse.ButtonRight, mouse.DirPress)) {
		t.Fatalf("right click did not repaint")
	}
	if !v.session.Region.IsClear() {
		t.Fatalf("right click left %+v", v.session.Region.Transform())
	}
}

func TestResizeKeepsCaptureArea(t *testing.T) {
	v := newTestView(&fakeClipboard{}, nil)
	dragOut(v, 20, 20, 120, 60)
	v.Resize(100, 50)
	if s := v.session.Scale; s.X != 2 || s.Y != 2 {
		t.Fatalf("scale = %+v", s)
	}
	want := selection.Transform{Left: 10, Top: 10, Width: 50, Height: 20}
	if got := v.session.Region.Transform(); got != want {
		t.Fatalf("selection = %+v, want %+v", got, want)
	}
}

func TestToolbarCopyClosesView(t *testing.T) {
	cb := &fakeClipboard{}
	v := newTestView(cb, nil)
	dragOut(v, 10, 10, 60, 40)
	copyBtn := v.buttons[0]
	if copyBtn.Action != input.ActionCopy {
		t.Fatalf("first button is %v", copyBtn.Action)
	}
	at := copyBtn.Rect.Min.Add(image.Pt(2, 2))
	v.HandleMouse(mouseAt(float32(at.X), float32(at.Y), mouse.ButtonLeft, mouse.DirPress))
	if cb.img == nil || cb.img.Bounds().Dx() != 50 || cb.img.Bounds().Dy() != 30 {
		t.Fatalf("clipboard got %v", cb.img)
	}
	if !v.Closed() {
		t.Fatalf("view still open after copy")
	}
}

func TestFailedCopyShowsMessage(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	v := newTestView(&fakeClipboard{err: errors.New("no display")}, clock)
	dragOut(v, 10, 10, 60, 40)
	v.HandleKey(key.Event{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress})
	if v.Closed() {
		t.Fatalf("view closed after failed copy")
	}
	if got := v.Frame().Status; !strings.Contains(got, "no display") {
		t.Fatalf("status = %q", got)
	}
	now = now.Add(messageDuration + time.Second)
	if got := v.Frame().Status; strings.Contains(got, "no display") {
		t.Fatalf("message still shown: %q", got)
	}
}

func TestCopyWithoutSelectionIsQuiet(t *testing.T) {
	v := newTestView(&fakeClipboard{}, nil)
	v.HandleKey(key.Event{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress})
	if v.Closed() || v.message != "" {
		t.Fatalf("closed=%v message=%q", v.Closed(), v.message)
	}
}

func TestEscapeClosesView(t *testing.T) {
	v := newTestView(&fakeClipboard{}, nil)
	if !v.HandleKey(key.Event{Code: key.CodeEscape, Direction: key.DirPress}) || !v.Closed() {
		t.Fatalf("escape did not close the view")
	}
}
