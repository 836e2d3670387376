// Package capture grabs the screen raster a selection session works on.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/kbinani/screenshot"
)

// Grabber captures the screen area of the given size at the given physical
// screen position.
type Grabber interface {
	Capture(width, height, left, top int) (*Buffer, error)
}

// GrabberFunc adapts a function to the Grabber interface.
type GrabberFunc func(width, height, left, top int) (*Buffer, error)

func (f GrabberFunc) Capture(width, height, left, top int) (*Buffer, error) {
	return f(width, height, left, top)
}

var (
	errEmptyArea  = errors.New("capture area is empty")
	errNoDisplays = errors.New("no active displays")
	errNoBackends = errors.New("no capture backends configured")
)

// Backend names accepted by New.
const (
	BackendAuto       = "auto"
	BackendScreenshot = "screenshot"
	BackendX11        = "x11"
	BackendPortal     = "portal"
)

// swapped in tests
var (
	numDisplaysFn   = screenshot.NumActiveDisplays
	displayBoundsFn = screenshot.GetDisplayBounds
	captureRectFn   = screenshot.CaptureRect
)

// New returns the grabber registered under name. BackendAuto tries the
// portal first on Wayland sessions and the direct backends elsewhere.
func New(name string) (Grabber, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendAuto:
		if runningOnWayland() {
			return Chain{Portal(), Screenshot(), X11()}, nil
		}
		return Chain{Screenshot(), X11(), Portal()}, nil
	case BackendScreenshot:
		return Screenshot(), nil
	case BackendX11:
		return X11(), nil
	case BackendPortal:
		return Portal(), nil
	default:
		return nil, fmt.Errorf("unknown capture backend %q", name)
	}
}

// Screenshot captures through the platform screen grab API.
func Screenshot() Grabber {
	return named{name: BackendScreenshot, g: GrabberFunc(func(width, height, left, top int) (*Buffer, error) {
		rect := image.Rect(left, top, left+width, top+height)
		if rect.Empty() {
			return nil, errEmptyArea
		}
		img, err := captureRectFn(rect)
		if err != nil {
			return nil, err
		}
		return NewBuffer(toRGBA(img), rect.Min), nil
	})}
}

// VirtualScreen returns the union of all active display bounds.
func VirtualScreen() (image.Rectangle, error) {
	n := numDisplaysFn()
	if n <= 0 {
		return image.Rectangle{}, errNoDisplays
	}
	var r image.Rectangle
	for i := 0; i < n; i++ {
		r = r.Union(displayBoundsFn(i))
	}
	return r, nil
}

// Screen captures the whole virtual screen with g.
func Screen(g Grabber) (*Buffer, error) {
	r, err := VirtualScreen()
	if err != nil {
		return nil, fmt.Errorf("virtual screen: %w", err)
	}
	buf, err := g.Capture(r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	if err != nil {
		return nil, fmt.Errorf("capture screen %v: %w", r, err)
	}
	return buf, nil
}

// Chain tries each grabber in order and returns the first success. When all
// of them fail the errors are joined.
type Chain []Grabber

func (c Chain) Capture(width, height, left, top int) (*Buffer, error) {
	if len(c) == 0 {
		return nil, errNoBackends
	}
	var errs []error
	for _, g := range c {
		buf, err := g.Capture(width, height, left, top)
		if err == nil {
			return buf, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

type named struct {
	name string
	g    Grabber
}

func (n named) Capture(width, height, left, top int) (*Buffer, error) {
	buf, err := n.g.Capture(width, height, left, top)
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", n.name, err)
	}
	return buf, nil
}

// cropToRect copies the part of src covering rect, where src spans the
// screen from srcOrigin.
func cropToRect(src *image.RGBA, srcOrigin image.Point, rect image.Rectangle) (*Buffer, error) {
	local := rect.Sub(srcOrigin).Intersect(src.Bounds())
	if local.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, local.Dx(), local.Dy()))
	draw.Draw(dst, dst.Bounds(), src, local.Min, draw.Src)
	return NewBuffer(dst, local.Min.Add(srcOrigin)), nil
}
