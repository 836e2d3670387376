//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11 captures straight from the X server's root window.
func X11() Grabber {
	return named{name: BackendX11, g: GrabberFunc(captureRoot)}
}

func captureRoot(width, height, left, top int) (*Buffer, error) {
	rect := image.Rect(left, top, left+width, top+height)
	if rect.Empty() {
		return nil, errEmptyArea
	}
	if left < math.MinInt16 || top < math.MinInt16 || left > math.MaxInt16 || top > math.MaxInt16 ||
		width > math.MaxUint16 || height > math.MaxUint16 {
		return nil, fmt.Errorf("capture area %v exceeds X11 limits", rect)
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil || setup.DefaultScreen(conn) == nil {
		return nil, errors.New("X server has no default screen")
	}
	root := setup.DefaultScreen(conn).Root

	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(root),
		int16(left), int16(top), uint16(width), uint16(height), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	img, err := xImageToRGBA(setup, reply, width, height)
	if err != nil {
		return nil, err
	}
	return NewBuffer(img, rect.Min), nil
}

// pixmapBits returns the bits per pixel the server uses for depth.
func pixmapBits(setup *xproto.SetupInfo, depth byte) int {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			return int(f.BitsPerPixel)
		}
	}
	return 0
}

func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if reply == nil || len(reply.Data) == 0 {
		return nil, errors.New("X server returned no pixels")
	}
	return zpixmapToRGBA(reply.Data, reply.Depth, pixmapBits(setup, reply.Depth), width, height)
}

// zpixmapToRGBA converts little-endian BGRX rows. Only depth 32 carries a
// real alpha channel; anything shallower is opaque.
func zpixmapToRGBA(data []byte, depth byte, bpp, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errEmptyArea
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported X11 pixmap format: depth %d, %d bpp", depth, bpp)
	}
	stride := len(data) / height
	step := bpp / 8
	if stride*height != len(data) || stride < width*step {
		return nil, fmt.Errorf("X11 image of %d bytes does not fit %dx%d", len(data), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			p := src[x*step:]
			d := dst[x*4 : x*4+4]
			d[0], d[1], d[2], d[3] = p[2], p[1], p[0], 0xff
			if depth == 32 {
				d[3] = p[3]
			}
		}
	}
	return img, nil
}
