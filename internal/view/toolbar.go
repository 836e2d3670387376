package view

import (
	"image"

	"github.com/example/snipshot/internal/input"
)

// Button is a clickable status bar label bound to an action.
type Button struct {
	Label  string
	Action input.Action
	Rect   image.Rectangle
}

var toolbar = []struct {
	label  string
	action input.Action
}{
	{"Copy", input.ActionCopy},
	{"Save", input.ActionSave},
	{"Upload", input.ActionExport},
	{"Search", input.ActionSearch},
	{"Close", input.ActionClose},
}

// LayoutButtons places the toolbar buttons left to right in the status bar
// of a canvas with bounds b.
func LayoutButtons(b image.Rectangle) []Button {
	sr := StatusRect(b)
	x := sr.Min.X + statusPad
	out := make([]Button, 0, len(toolbar))
	for _, t := range toolbar {
		w := textWidth(t.label) + statusPad*2
		out = append(out, Button{
			Label:  t.label,
			Action: t.action,
			Rect:   image.Rect(x, sr.Min.Y+2, x+w, sr.Max.Y-2),
		})
		x += w + buttonGap
	}
	return out
}

// ButtonAt returns the index of the button under p, or -1.
func ButtonAt(buttons []Button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect) {
			return i
		}
	}
	return -1
}
