package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/mobile/event/key"

	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/input"
	"github.com/example/snipshot/internal/theme"
	"github.com/example/snipshot/internal/view"
)

// swapped in tests
var runView = func(v *view.View) error { return v.Run() }

func newCaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Freeze the screen and select a region interactively",
		Long: `Grabs the whole virtual screen and opens the selection view.

Drag to select, drag the handles to resize and right click to clear.
Ctrl+C copies, Ctrl+S saves into --save-dir, Ctrl+D opens the export window
and Esc closes the view. The toolbar in the status bar does the same.`,
		Args: cobra.NoArgs,
		RunE: runCapture,
	}
	cmd.Flags().String("input", "", "use an image file instead of grabbing the screen")
	cmd.Flags().String("theme", "default", "view palette: default, light, high_contrast, a theme name or a file")
	addSaveFlags(cmd)
	return cmd
}

func runCapture(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	inputPath, _ := cmd.Flags().GetString("input")
	buf, err := a.buffer(inputPath)
	if err != nil {
		return err
	}

	c := a.coordinator(a.autoDialog(), buf.ScreenRect())
	session := export.NewSession(c, buf)

	keys := &input.Pipeline{}
	keys.Subscribe(input.ListenerFunc(func(e key.Event) {
		a.log.Debug("key not bound", "code", e.Code, "rune", e.Rune, "modifiers", e.Modifiers)
	}))

	pal, err := theme.NewLoader().Load(a.cfg.Theme)
	if err != nil {
		a.log.Warn("failed to load theme, using default", "theme", a.cfg.Theme, "error", err)
		pal = theme.Default()
	}

	v := view.New(session, view.Options{Pipeline: keys, Theme: pal, Logger: a.log})
	defer func() {
		if err := c.CloseExportWindow(); err != nil {
			a.log.Warn("close export window", "error", err)
		}
	}()
	return runView(v)
}
