package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme is the colour palette of the capture view.
type Theme struct {
	Name string

	// Overlay
	Dim          color.RGBA // drawn over everything outside the selection
	OutlineLight color.RGBA // alternating dashes of the selection border
	OutlineDark  color.RGBA
	Handle       color.RGBA
	HandleBorder color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
	Button           color.RGBA
	ButtonHover      color.RGBA
}

// Default returns the built-in light-on-dark palette.
func Default() *Theme {
	return &Theme{
		Name:             "default",
		Dim:              color.RGBA{0, 0, 0, 128},
		OutlineLight:     color.RGBA{255, 255, 255, 255},
		OutlineDark:      color.RGBA{0, 0, 0, 255},
		Handle:           color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{32, 32, 32, 224},
		StatusText:       color.RGBA{240, 240, 240, 255},
		Button:           color.RGBA{64, 64, 64, 255},
		ButtonHover:      color.RGBA{96, 96, 144, 255},
	}
}

// Light dims less and uses a pale status bar.
func Light() *Theme {
	t := Default()
	t.Name = "light"
	t.Dim = color.RGBA{255, 255, 255, 96}
	t.StatusBackground = color.RGBA{230, 230, 230, 230}
	t.StatusText = color.RGBA{0, 0, 0, 255}
	t.Button = color.RGBA{200, 200, 200, 255}
	t.ButtonHover = color.RGBA{170, 190, 230, 255}
	return t
}

// HighContrast uses a heavy dim and a yellow border.
func HighContrast() *Theme {
	t := Default()
	t.Name = "high_contrast"
	t.Dim = color.RGBA{0, 0, 0, 192}
	t.OutlineLight = color.RGBA{255, 255, 0, 255}
	t.Handle = color.RGBA{255, 255, 0, 255}
	t.StatusBackground = color.RGBA{0, 0, 0, 255}
	t.StatusText = color.RGBA{255, 255, 0, 255}
	t.Button = color.RGBA{0, 0, 0, 255}
	t.ButtonHover = color.RGBA{0, 0, 160, 255}
	return t
}

var builtin = map[string]func() *Theme{
	"default":       Default,
	"light":         Light,
	"high_contrast": HighContrast,
}

// Builtin returns a fresh copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
