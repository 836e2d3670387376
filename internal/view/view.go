// Package view is the interactive capture window: the frozen screenshot is
// shown full size, the user drags out a selection and exports it with the
// toolbar or keyboard shortcuts.
package view

import (
	"image"
	"log/slog"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/extract"
	"github.com/example/snipshot/internal/input"
	"github.com/example/snipshot/internal/selection"
	"github.com/example/snipshot/internal/theme"
)

const messageDuration = 3 * time.Second

// Options configures a View.
type Options struct {
	Title     string
	Shortcuts map[input.KeyShortcut]input.Action
	Pipeline  *input.Pipeline
	Theme     *theme.Theme
	Logger    *slog.Logger
	Now       func() time.Time
}

// View owns the selection gesture and the router for one session. The
// event handlers are plain methods so they can run without a display.
type View struct {
	session *export.Session
	router  *input.Router
	drag    *selection.Drag
	log     *slog.Logger
	now     func() time.Time
	title   string
	theme   *theme.Theme

	canvas       image.Rectangle
	buttons      []Button
	hover        int
	message      string
	messageUntil time.Time
	closed       bool
}

// New returns a view over session.
func New(session *export.Session, opts Options) *View {
	v := &View{
		session: session,
		log:     opts.Logger,
		now:     opts.Now,
		title:   opts.Title,
		theme:   opts.Theme,
		hover:   -1,
	}
	if v.log == nil {
		v.log = slog.Default()
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.title == "" {
		v.title = "snipshot"
	}
	v.router = input.NewRouter(input.Options{
		Actions:   session,
		Close:     func() { v.closed = true },
		Pipeline:  opts.Pipeline,
		Shortcuts: opts.Shortcuts,
		OnError:   v.reportError,
		Logger:    v.log,
	})
	v.drag = selection.NewDrag(session.Region, selection.Point{})
	v.Resize(session.Buffer.Width(), session.Buffer.Height())
	return v
}

// Router returns the key router bound to this view.
func (v *View) Router() *input.Router { return v.router }

// Closed reports whether an action or Escape closed the view.
func (v *View) Closed() bool { return v.closed }

func (v *View) reportError(a input.Action, err error) {
	v.message = a.String() + " failed: " + err.Error()
	v.messageUntil = v.now().Add(messageDuration)
}

// Resize sets the canvas to w by h pixels. The selection is scaled so it
// keeps covering the same part of the capture.
func (v *View) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	old := v.canvas
	v.canvas = image.Rect(0, 0, w, h)
	v.buttons = LayoutButtons(v.canvas)
	v.drag.Limit = selection.Point{X: float64(w), Y: float64(h)}
	v.session.Scale = extract.ScaleFor(v.session.Buffer, float64(w), float64(h))
	if !old.Empty() && old != v.canvas && !v.session.Region.IsClear() {
		v.session.Region.Set(rescale(v.session.Region.Transform(), old, v.canvas))
	}
}

func rescale(t selection.Transform, from, to image.Rectangle) selection.Transform {
	sx := float64(to.Dx()) / float64(from.Dx())
	sy := float64(to.Dy()) / float64(from.Dy())
	return selection.Transform{Left: t.Left * sx, Top: t.Top * sy, Width: t.Width * sx, Height: t.Height * sy}
}

// HandleMouse applies e and reports whether the view needs a repaint.
func (v *View) HandleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	sp := selection.Point{X: float64(e.X), Y: float64(e.Y)}

	if !v.drag.Active() && p.In(StatusRect(v.canvas)) {
		i := ButtonAt(v.buttons, p)
		changed := i != v.hover
		v.hover = i
		if i >= 0 && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			_ = v.router.Trigger(v.buttons[i].Action)
			return true
		}
		return changed
	}
	if v.hover >= 0 {
		v.hover = -1
	}

	switch {
	case e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress:
		v.drag.End()
		v.session.Region.Clear()
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		v.drag.Begin(sp)
		return true
	case e.Direction == mouse.DirNone && v.drag.Active():
		v.drag.Update(sp)
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && v.drag.Active():
		v.drag.Update(sp)
		sel := v.drag.End()
		v.log.Debug("selection", "left", sel.Left, "top", sel.Top, "width", sel.Width, "height", sel.Height)
		return true
	}
	return false
}

// HandleKey routes e and reports whether it was consumed.
func (v *View) HandleKey(e key.Event) bool {
	return v.router.HandleKey(e)
}

// Frame describes the next repaint.
func (v *View) Frame() Frame {
	msg := ""
	if v.message != "" && v.now().Before(v.messageUntil) {
		msg = v.message
	}
	sel := v.session.Region.Transform()
	return Frame{
		Selection: sel,
		Status:    StatusText(sel, msg),
		Buttons:   v.buttons,
		Hover:     v.hover,
		Theme:     v.theme,
	}
}

// Paint renders the current frame into dst.
func (v *View) Paint(dst *image.RGBA) {
	Render(dst, v.session.Buffer.Image(), v.Frame())
}

// Run opens the window and blocks until the view is closed.
func (v *View) Run() error {
	var runErr error
	driver.Main(func(s screen.Screen) {
		runErr = v.main(s)
	})
	return runErr
}

func (v *View) main(s screen.Screen) error {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  v.canvas.Dx(),
		Height: v.canvas.Dy(),
		Title:  v.title,
	})
	if err != nil {
		return err
	}
	defer w.Release()

	var b screen.Buffer
	defer func() {
		if b != nil {
			b.Release()
		}
	}()

	for !v.closed {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			v.Resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			if b == nil || b.Size() != v.canvas.Size() {
				if b != nil {
					b.Release()
				}
				b, err = s.NewBuffer(v.canvas.Size())
				if err != nil {
					return err
				}
			}
			v.Paint(b.RGBA())
			w.Upload(image.Point{}, b, b.Bounds())
			w.Publish()
		case mouse.Event:
			if v.HandleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if v.HandleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			v.log.Error("window event", "error", e)
		}
	}
	return nil
}
