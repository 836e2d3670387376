package view

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snipshot/internal/selection"
	"github.com/example/snipshot/internal/theme"
)

const (
	dashLength  = 4
	statusPad   = 4
	statusH     = 20
	buttonGap   = 6
	outlineSize = 1
)

// Bands returns the four dimming bands around sel on a canvas of the given
// size: top, bottom, left and right. They use the Exclusive policy, so a
// band squeezed to nothing keeps a zero dimension and reports
// HasInvalidSize. A clear selection dims the whole canvas with the top band.
func Bands(sel selection.Transform, canvas selection.Point) [4]*selection.Region {
	var b [4]*selection.Region
	for i := range b {
		b[i] = selection.New(selection.Exclusive)
	}
	if sel.IsClear() {
		b[0].Set(selection.Transform{Width: canvas.X, Height: canvas.Y})
		return b
	}
	right, bottom := sel.Right(), sel.Bottom()
	b[0].Set(selection.Transform{Left: 0, Top: 0, Width: canvas.X, Height: sel.Top})
	b[1].Set(selection.Transform{Left: 0, Top: bottom, Width: canvas.X, Height: canvas.Y - bottom})
	b[2].Set(selection.Transform{Left: 0, Top: sel.Top, Width: sel.Left, Height: sel.Height})
	b[3].Set(selection.Transform{Left: right, Top: sel.Top, Width: canvas.X - right, Height: sel.Height})
	return b
}

// pixelRect rounds t to the pixel grid.
func pixelRect(t selection.Transform) image.Rectangle {
	return image.Rect(
		int(math.Round(t.Left)), int(math.Round(t.Top)),
		int(math.Round(t.Right())), int(math.Round(t.Bottom())),
	)
}

// Frame is everything a repaint needs.
type Frame struct {
	Selection selection.Transform
	Status    string
	Buttons   []Button
	Hover     int
	Theme     *theme.Theme // nil means theme.Default
}

// Render draws src scaled to dst, dims everything outside the selection
// and draws the outline, handles and status bar.
func Render(dst *image.RGBA, src image.Image, f Frame) {
	pal := f.Theme
	if pal == nil {
		pal = theme.Default()
	}
	db := dst.Bounds()
	xdraw.ApproxBiLinear.Scale(dst, db, src, src.Bounds(), draw.Src, nil)

	canvas := selection.Point{X: float64(db.Dx()), Y: float64(db.Dy())}
	for _, band := range Bands(f.Selection, canvas) {
		if band.HasInvalidSize() {
			continue
		}
		r := pixelRect(band.Transform()).Add(db.Min).Intersect(db)
		draw.Draw(dst, r, image.NewUniform(nonPremultiplied(pal.Dim)), image.Point{}, draw.Over)
	}

	if !f.Selection.HasInvalidSize() {
		r := pixelRect(f.Selection).Add(db.Min)
		drawDashedRect(dst, r, pal.OutlineLight, pal.OutlineDark)
		for _, h := range selection.HandleRects(f.Selection) {
			hr := pixelRect(h).Add(db.Min)
			draw.Draw(dst, hr, image.NewUniform(pal.HandleBorder), image.Point{}, draw.Src)
			draw.Draw(dst, hr.Inset(1), image.NewUniform(pal.Handle), image.Point{}, draw.Src)
		}
	}

	drawStatus(dst, f, pal)
}

func drawDashedRect(img *image.RGBA, r image.Rectangle, c1, c2 color.Color) {
	if r.Empty() {
		return
	}
	pick := func(i int) color.Color {
		if (i/dashLength)%2 == 0 {
			return c1
		}
		return c2
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, pick(x-r.Min.X))
		img.Set(x, r.Max.Y-outlineSize, pick(x-r.Min.X))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, pick(y-r.Min.Y))
		img.Set(r.Max.X-outlineSize, y, pick(y-r.Min.Y))
	}
}

// StatusRect is the status bar area of a canvas with bounds b.
func StatusRect(b image.Rectangle) image.Rectangle {
	return image.Rect(b.Min.X, b.Max.Y-statusH, b.Max.X, b.Max.Y)
}

func drawStatus(dst *image.RGBA, f Frame, pal *theme.Theme) {
	sr := StatusRect(dst.Bounds())
	draw.Draw(dst, sr, image.NewUniform(nonPremultiplied(pal.StatusBackground)), image.Point{}, draw.Over)
	for i, b := range f.Buttons {
		bg := pal.Button
		if i == f.Hover {
			bg = pal.ButtonHover
		}
		draw.Draw(dst, b.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
		drawText(dst, b.Rect.Min.X+statusPad, sr.Max.Y-6, b.Label, pal.StatusText)
	}
	x := sr.Min.X + statusPad
	if n := len(f.Buttons); n > 0 {
		x = f.Buttons[n-1].Rect.Max.X + buttonGap*2
	}
	drawText(dst, x, sr.Max.Y-6, f.Status, pal.StatusText)
}

// nonPremultiplied reads a theme colour's alpha as straight alpha so
// "#00000080" means half-transparent black.
func nonPremultiplied(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func drawText(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13,
		Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func textWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

// StatusText describes the selection for the status bar.
func StatusText(sel selection.Transform, message string) string {
	if message != "" {
		return message
	}
	if sel.IsClear() {
		return "drag to select  Esc close"
	}
	return fmt.Sprintf("%.0f x %.0f at %.0f,%.0f  Ctrl+C copy  Ctrl+S save  Ctrl+D export  Esc close",
		sel.Width, sel.Height, sel.Left, sel.Top)
}
