//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"
)

func TestZPixmapToRGBA(t *testing.T) {
	// two BGRX pixels per row, one padding byte pair at the end of each row
	data := []byte{
		0x01, 0x02, 0x03, 0x00, 0x10, 0x20, 0x30, 0x00, 0, 0,
		0x04, 0x05, 0x06, 0x00, 0x40, 0x50, 0x60, 0x00, 0, 0,
	}
	img, err := zpixmapToRGBA(data, 24, 32, 2, 2)
	if err != nil {
		t.Fatalf("zpixmapToRGBA returned error: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0x30, 0x20, 0x10, 0xff}) {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{0x06, 0x05, 0x04, 0xff}) {
		t.Fatalf("depth 24 must be opaque, got %v", got)
	}

	withAlpha, err := zpixmapToRGBA([]byte{0x01, 0x02, 0x03, 0x80}, 32, 32, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := withAlpha.RGBAAt(0, 0).A; got != 0x80 {
		t.Fatalf("depth 32 alpha = %#x", got)
	}
}

func TestZPixmapToRGBARejects(t *testing.T) {
	cases := []struct {
		name          string
		data          []byte
		bpp           int
		width, height int
	}{
		{"16bpp", make([]byte, 8), 16, 2, 2},
		{"short rows", make([]byte, 6), 32, 2, 1},
		{"ragged", make([]byte, 9), 32, 1, 2},
		{"empty", nil, 32, 0, 0},
	}
	for _, tc := range cases {
		if _, err := zpixmapToRGBA(tc.data, 24, tc.bpp, tc.width, tc.height); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
