// Package clipboard publishes extracted images to the system clipboard.
package clipboard

import "image"

// Sink adapts the package-level clipboard to collaborators that take an
// image writer.
type Sink struct{}

func (Sink) WriteImage(img image.Image) error {
	if img == nil {
		return errNilImage
	}
	return writeImage(img)
}

// WriteImage places img on the clipboard as PNG data.
func WriteImage(img image.Image) error {
	return Sink{}.WriteImage(img)
}
