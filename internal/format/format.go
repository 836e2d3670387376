// Package format holds the ordered registry of image formats a selection can
// be saved as.
//
// The registry order is significant: a save dialog is given the filters in
// registry order and reports the user's choice as an index into them.
// Indexes are 0-based throughout.
package format

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Separator joins filter fragments into the string handed to a dialog.
const Separator = "|"

// DefaultJPEGQuality is used when Encode is given a quality outside 1..100.
const DefaultJPEGQuality = 90

// Encoder identifiers.
const (
	EncoderPNG  = "png"
	EncoderJPEG = "jpeg"
	EncoderBMP  = "bmp"
	EncoderGIF  = "gif"
	EncoderTIFF = "tiff"
)

// ErrNoFormatResolved reports a filter index outside the registry.
var ErrNoFormatResolved = errors.New("no format for filter index")

// PatternSeparator separates the glob patterns inside one filter fragment.
const PatternSeparator = ";"

// SupportedFormat is one registry entry. Filter has the form
// "<Name> (<patterns>)|<patterns>", Extension is the primary extension
// without a dot and Aliases lists any further accepted extensions.
type SupportedFormat struct {
	Name      string
	Filter    string
	Extension string
	Aliases   []string
	Encoder   string
}

func newFormat(name, encoder string, exts ...string) SupportedFormat {
	globs := make([]string, len(exts))
	for i, ext := range exts {
		globs[i] = "*." + ext
	}
	pattern := strings.Join(globs, PatternSeparator)
	return SupportedFormat{
		Name:      name,
		Filter:    name + " (" + pattern + ")" + Separator + pattern,
		Extension: exts[0],
		Aliases:   exts[1:],
		Encoder:   encoder,
	}
}

var all = []SupportedFormat{
	newFormat("PNG", EncoderPNG, "png"),
	newFormat("JPEG", EncoderJPEG, "jpg", "jpeg"),
	newFormat("BMP", EncoderBMP, "bmp"),
	newFormat("GIF", EncoderGIF, "gif"),
	newFormat("TIFF", EncoderTIFF, "tiff", "tif"),
}

func (f SupportedFormat) handles(ext string) bool {
	if f.Encoder == ext || f.Extension == ext {
		return true
	}
	for _, a := range f.Aliases {
		if a == ext {
			return true
		}
	}
	return false
}

// Registry is an ordered list of formats.
type Registry []SupportedFormat

// Default returns the full registry: PNG, JPEG, BMP, GIF, TIFF.
func Default() Registry {
	return append(Registry(nil), all...)
}

// Subset builds a registry from encoder ids or extensions, keeping the
// given order. Unknown or repeated ids are an error.
func Subset(ids []string) (Registry, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty format list")
	}
	var r Registry
	seen := map[string]bool{}
	for _, id := range ids {
		f, ok := lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown format %q", id)
		}
		if seen[f.Encoder] {
			return nil, fmt.Errorf("format %q listed twice", id)
		}
		seen[f.Encoder] = true
		r = append(r, f)
	}
	return r, nil
}

func lookup(id string) (SupportedFormat, bool) {
	id = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "."))
	for _, f := range all {
		if f.handles(id) {
			return f, true
		}
	}
	return SupportedFormat{}, false
}

// Filters returns each entry's filter fragment in registry order.
func (r Registry) Filters() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Filter
	}
	return out
}

// Filter is the combined dialog filter string.
func (r Registry) Filter() string {
	return strings.Join(r.Filters(), Separator)
}

// Resolve returns the entry selected by a 0-based filter index.
func (r Registry) Resolve(i int) (SupportedFormat, error) {
	if i < 0 || i >= len(r) {
		return SupportedFormat{}, fmt.Errorf("%w: %d of %d", ErrNoFormatResolved, i, len(r))
	}
	return r[i], nil
}

// IndexOfFilter returns the index of the entry whose fragment is filter, or -1.
func (r Registry) IndexOfFilter(filter string) int {
	for i, f := range r {
		if f.Filter == filter {
			return i
		}
	}
	return -1
}

// IndexOf returns the index of the entry handling ext (with or without the
// leading dot, any case), or -1.
func (r Registry) IndexOf(ext string) int {
	f, ok := lookup(ext)
	if !ok {
		return -1
	}
	for i, e := range r {
		if e.Encoder == f.Encoder {
			return i
		}
	}
	return -1
}

// IndexOfPath is IndexOf applied to the extension of path.
func (r Registry) IndexOfPath(path string) int {
	return r.IndexOf(filepath.Ext(path))
}

// MatchFilter returns the 0-based index of the fragment in a combined
// filter string whose patterns match the base name of path, or -1. It only
// looks at the string, so it works for any registry that produced it.
func MatchFilter(filter, path string) int {
	parts := strings.Split(filter, Separator)
	base := strings.ToLower(filepath.Base(path))
	for i := 1; i < len(parts); i += 2 {
		for _, glob := range strings.Split(parts[i], PatternSeparator) {
			if ok, _ := filepath.Match(strings.ToLower(strings.TrimSpace(glob)), base); ok {
				return i / 2
			}
		}
	}
	return -1
}

// Encode writes img to w using the entry's encoder. quality only affects
// JPEG.
func (f SupportedFormat) Encode(w io.Writer, img image.Image, quality int) error {
	var err error
	switch f.Encoder {
	case EncoderPNG:
		err = png.Encode(w, img)
	case EncoderJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case EncoderBMP:
		err = bmp.Encode(w, img)
	case EncoderGIF:
		err = gif.Encode(w, img, nil)
	case EncoderTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown encoder %q", f.Encoder)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.Name, err)
	}
	return nil
}
