package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/clipboard"
	"github.com/example/snipshot/internal/config"
	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/logging"
	"github.com/example/snipshot/internal/notify"
	"github.com/example/snipshot/internal/upload"
)

// swapped in tests
var (
	grabScreen    = capture.Screen
	clipboardSink = export.Clipboard(clipboard.Sink{})
)

// app is the configured collaborator set shared by the subcommands.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	notifier *notify.Notifier
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewLoader(version, path).Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(logging.ParseFormat(cfg.Log.Format), logging.ParseLevel(cfg.Log.Level))

	n := notify.New(notify.DefaultTemplates(), logger)
	n.Enable(notify.EventSave, cfg.Notify.Save)
	n.Enable(notify.EventCopy, cfg.Notify.Copy)
	n.Enable(notify.EventExport, cfg.Notify.Export)

	return &app{cfg: cfg, log: logger, notifier: n}, nil
}

// buffer loads input when set and grabs the screen otherwise.
func (a *app) buffer(input string) (*capture.Buffer, error) {
	if input != "" {
		return capture.Load(input)
	}
	g, err := capture.New(a.cfg.Capture.Backend)
	if err != nil {
		return nil, err
	}
	buf, err := grabScreen(g)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	a.log.Debug("captured screen", "rect", buf.ScreenRect(), "backend", a.cfg.Capture.Backend)
	return buf, nil
}

func (a *app) coordinator(dialog export.SaveDialog, view image.Rectangle) *export.Coordinator {
	return export.New(export.Options{
		Formats:   a.cfg.Registry(),
		Dialog:    dialog,
		Clipboard: clipboardSink,
		NewWindow: upload.Factory(upload.Options{
			Dir:    a.cfg.Export.Dir,
			Size:   image.Pt(a.cfg.Export.Width, a.cfg.Export.Height),
			Logger: a.log,
		}),
		View:        view,
		Margin:      a.cfg.Export.Margin,
		JPEGQuality: a.cfg.JPEGQuality,
		Observers:   []export.Observer{a.notifier},
		Logger:      a.log,
	})
}

// autoDialog names saved files from the configured directory and layout.
func (a *app) autoDialog() export.AutoDialog {
	dir := a.cfg.SaveDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return export.AutoDialog{Dir: dir, FileName: a.cfg.FileName, Format: a.cfg.DefaultFormat}
}

// addSaveFlags registers the flags that shape where and how images are saved.
func addSaveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("save-dir", "", "directory for saved images (default: working directory)")
	f.String("file-name", export.DefaultFileName, "time layout for saved file names")
	f.String("format", "png", "default save format")
	f.StringSlice("formats", nil, "formats offered when saving, in order")
	f.Int("jpeg-quality", 90, "JPEG quality 1-100")
	f.String("backend", capture.BackendAuto, "capture backend: auto|screenshot|x11|portal")
	f.String("export-dir", "", "spool directory for the export window")
	f.Int("export-margin", export.DefaultMargin, "export window distance from the bottom-right corner")
}
