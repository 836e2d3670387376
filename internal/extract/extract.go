// Package extract crops a canvas-space selection out of a capture buffer.
//
// Selections are expressed in canvas units, which differ from the buffer's
// physical pixels when the display is scaled. The extractor maps the
// selection through a Scale before indexing into the buffer, truncates the
// result to the captured area and copies the pixels into a new image.
package extract

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/selection"
)

// ErrEmptyExtraction reports a selection that does not overlap the buffer.
var ErrEmptyExtraction = errors.New("selection does not intersect the captured area")

// GeometryError reports an extraction attempted with a clear or zero-area
// selection. Callers gate on the selection first, so this indicates a
// missing check upstream.
type GeometryError struct {
	Selection selection.Transform
}

func (e *GeometryError) Error() string {
	t := e.Selection
	if t.IsClear() {
		return "extract: selection is clear"
	}
	return fmt.Sprintf("extract: selection %gx%g at (%g,%g) has no area", t.Width, t.Height, t.Left, t.Top)
}

// Scale converts canvas units to buffer pixels on each axis.
type Scale struct {
	X, Y float64
}

// Identity maps one canvas unit to one pixel.
var Identity = Scale{X: 1, Y: 1}

// ScaleFor derives the scale between a canvas of the given logical size and
// buf. A non-positive canvas dimension yields 1 on that axis.
func ScaleFor(buf *capture.Buffer, canvasW, canvasH float64) Scale {
	s := Identity
	if canvasW > 0 {
		s.X = float64(buf.Width()) / canvasW
	}
	if canvasH > 0 {
		s.Y = float64(buf.Height()) / canvasH
	}
	return s
}

func (s Scale) valid() bool {
	return s.X > 0 && s.Y > 0 && !math.IsInf(s.X, 0) && !math.IsInf(s.Y, 0)
}

// MapRect maps sel into buffer pixel space and clips it to bounds. The
// origin and size are rounded separately, so an unclipped result is always
// round(w*sx) by round(h*sy). Clipping happens before the conversion to int,
// so huge selections truncate instead of overflowing.
func MapRect(sel selection.Transform, s Scale, bounds image.Rectangle) image.Rectangle {
	x0, x1 := mapSpan(sel.Left, sel.Width, s.X, bounds.Min.X, bounds.Max.X)
	y0, y1 := mapSpan(sel.Top, sel.Height, s.Y, bounds.Min.Y, bounds.Max.Y)
	return image.Rect(x0, y0, x1, y1)
}

func mapSpan(start, length, scale float64, lo, hi int) (int, int) {
	a := math.Round(start * scale)
	b := a + math.Round(length*scale)
	clamp := func(v float64) int {
		return int(math.Max(float64(lo), math.Min(float64(hi), v)))
	}
	return clamp(a), clamp(b)
}

// Region copies the pixels under sel out of buf. The selection is mapped
// with s and intersected with the buffer; a partly outside selection is
// truncated. The returned image is zero-based and never shares storage
// with buf.
func Region(buf *capture.Buffer, sel selection.Transform, s Scale) (*image.RGBA, error) {
	if sel.IsClear() || sel.HasInvalidSize() {
		return nil, &GeometryError{Selection: sel}
	}
	if buf == nil || buf.Image() == nil {
		return nil, fmt.Errorf("extract: no capture buffer")
	}
	if !s.valid() {
		return nil, fmt.Errorf("extract: invalid scale %gx%g", s.X, s.Y)
	}
	src := buf.Image()
	bounds := image.Rect(0, 0, buf.Width(), buf.Height())
	r := MapRect(sel, s, bounds)
	if r.Empty() {
		return nil, ErrEmptyExtraction
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, src, r.Add(src.Bounds().Min), draw.Src, nil)
	return dst, nil
}
