// Package notify raises desktop notifications when a selection is saved,
// copied or handed to the export window.
package notify

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/snipshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventSave   Event = "save"
	EventCopy   Event = "copy"
	EventExport Event = "export"
)

// PreviewSize bounds the thumbnail attached to notifications.
const PreviewSize = 256

// Notification daemons read the icon after Notify returns, so thumbnails
// outlive the call and are swept once older than previewTTL.
var (
	previewDir = filepath.Join(os.TempDir(), "snipshot-previews")
	previewTTL = 5 * time.Minute
)

// Templates maps an event to a fmt template taking one %s: the saved path
// or a short description of the image. A blank template mutes the event.
type Templates map[Event]string

// DefaultTemplates returns the built-in notification bodies.
func DefaultTemplates() Templates {
	return Templates{
		EventSave:   "Saved %s",
		EventCopy:   "Copied %s to clipboard",
		EventExport: "Exported %s",
	}
}

// swapped in tests
var notifyFn = platform.Notify

// Notifier sends OS-level notifications for export outcomes. It satisfies
// export.Observer. The zero value and a nil *Notifier are silent.
type Notifier struct {
	// Title is the notification summary and the application name shown by
	// the desktop.
	Title string

	mu        sync.Mutex
	templates Templates
	on        map[Event]bool
	log       *slog.Logger
}

// New returns a Notifier with every event switched off.
func New(templates Templates, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	own := make(Templates, len(templates))
	for ev, tmpl := range templates {
		own[ev] = tmpl
	}
	return &Notifier{Title: "snipshot", templates: own, on: map[Event]bool{}, log: logger}
}

// Enable switches notifications for event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.on == nil {
		n.on = map[Event]bool{}
	}
	n.on[event] = on
}

// Saved notifies about an image written to path.
func (n *Notifier) Saved(path string, img image.Image) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	n.send(EventSave, path, img)
}

// Copied notifies about an image placed on the clipboard.
func (n *Notifier) Copied(img image.Image) {
	n.send(EventCopy, sizeOf(img), img)
}

// Exported notifies about an image handed to the export window.
func (n *Notifier) Exported(img image.Image, search bool) {
	what := sizeOf(img)
	if search {
		what += " for search"
	}
	n.send(EventExport, what, img)
}

func sizeOf(img image.Image) string {
	if img == nil {
		return "image"
	}
	s := img.Bounds().Size()
	return fmt.Sprintf("%dx%d image", s.X, s.Y)
}

// body renders the message for event, or "" when the event is off or muted.
func (n *Notifier) body(event Event, detail string) string {
	if n == nil {
		return ""
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.on[event] {
		return ""
	}
	tmpl := strings.TrimSpace(n.templates[event])
	if tmpl == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
}

func (n *Notifier) send(event Event, detail string, img image.Image) {
	msg := n.body(event, detail)
	if msg == "" {
		return
	}
	log := n.log
	if log == nil {
		log = slog.Default()
	}
	opts := platform.Options{AppName: n.Title}
	if img != nil {
		sweepPreviews(log, time.Now())
		icon, err := writeThumbnail(img)
		if err != nil {
			log.Warn("notification preview", "event", event, "error", err)
		} else {
			opts.IconPath = icon
		}
	}
	if err := notifyFn(n.Title, msg, opts); err != nil {
		log.Warn("notification failed", "event", event, "error", err)
	}
}

// writeThumbnail stores img, shrunk to fit PreviewSize, as a temporary PNG
// and returns its path.
func writeThumbnail(img image.Image) (path string, err error) {
	if err := os.MkdirAll(previewDir, 0o700); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(previewDir, "preview-*.png")
	if err != nil {
		return "", err
	}
	path = f.Name()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()
	return path, imaging.Encode(f, imaging.Fit(img, PreviewSize, PreviewSize, imaging.Lanczos), imaging.PNG)
}

// sweepPreviews removes thumbnails left by earlier notifications.
func sweepPreviews(log *slog.Logger, now time.Time) {
	entries, err := os.ReadDir(previewDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || e.IsDir() || now.Sub(info.ModTime()) < previewTTL {
			continue
		}
		path := filepath.Join(previewDir, e.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("remove preview", "path", path, "error", err)
		}
	}
}
