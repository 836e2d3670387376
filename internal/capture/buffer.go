package capture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Buffer is the raster grabbed from the screen at the start of a capture
// session. It is read-only once created and may be shared between
// extractions.
type Buffer struct {
	img    *image.RGBA
	origin image.Point
}

// NewBuffer wraps img, captured at the physical screen position origin.
// The caller must not modify img afterwards.
func NewBuffer(img *image.RGBA, origin image.Point) *Buffer {
	return &Buffer{img: img, origin: origin}
}

// Image returns the captured pixels. The returned image must be treated as
// read-only.
func (b *Buffer) Image() *image.RGBA { return b.img }

// Origin is the screen position (screenLeft, screenTop) of the top-left pixel.
func (b *Buffer) Origin() image.Point { return b.origin }

// Width is the pixel width of the capture.
func (b *Buffer) Width() int { return b.img.Bounds().Dx() }

// Height is the pixel height of the capture.
func (b *Buffer) Height() int { return b.img.Bounds().Dy() }

// ScreenRect is the area of the screen covered by the buffer.
func (b *Buffer) ScreenRect() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height()).Add(b.origin)
}

// Load decodes an existing image file into a buffer located at the screen
// origin. It lets a previously saved screenshot stand in for a live capture.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return NewBuffer(toRGBA(img), image.Point{}), nil
}

// toRGBA converts img to a zero-based *image.RGBA, copying when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
