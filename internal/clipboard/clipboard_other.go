//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce    sync.Once
	initErr     error
	errNilImage = errors.New("no image to copy")
)

func writeImage(img image.Image) error {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return initErr
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
