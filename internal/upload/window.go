// Package upload is the export window the coordinator hands a finished
// selection to. The transfer itself is out of scope: the window spools the
// image into a queue directory for an external uploader and closes.
package upload

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/snipshot/internal/export"
	"github.com/example/snipshot/internal/format"
)

// Queue directories under the spool root.
const (
	UploadQueue = "upload"
	SearchQueue = "search"
)

// DefaultSize is the window size used when Options.Size is zero.
var DefaultSize = image.Pt(400, 120)

var errClosed = errors.New("export window closed")

// Options configures windows created by Factory.
type Options struct {
	Dir    string
	Size   image.Point
	Now    func() time.Time
	Logger *slog.Logger
}

// Window spools one image and closes itself.
type Window struct {
	opts    Options
	onClose func()

	mu     sync.Mutex
	at     image.Point
	shown  bool
	closed bool
	path   string
}

// Factory returns an export.WindowFactory producing spooling windows.
func Factory(opts Options) export.WindowFactory {
	if opts.Size == (image.Point{}) {
		opts.Size = DefaultSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return func(onClose func()) (export.Window, error) {
		if opts.Dir == "" {
			return nil, fmt.Errorf("no export directory configured")
		}
		return &Window{opts: opts, onClose: onClose}, nil
	}
}

func (w *Window) Size() image.Point { return w.opts.Size }

// Show records the window position.
func (w *Window) Show(at image.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	w.at = at
	w.shown = true
	w.opts.Logger.Debug("export window shown", "at", at, "size", w.opts.Size)
	return nil
}

// Position is where the window was shown.
func (w *Window) Position() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.at
}

// Upload writes img as PNG into the upload queue, or the search queue when
// destination is set, then closes the window.
func (w *Window) Upload(img image.Image, destination bool) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errClosed
	}
	if !w.shown {
		w.mu.Unlock()
		return fmt.Errorf("upload before show")
	}
	w.mu.Unlock()

	queue := UploadQueue
	if destination {
		queue = SearchQueue
	}
	dir := filepath.Join(w.opts.Dir, queue)
	path, err := spool(dir, w.opts.Now(), img)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.path = path
	w.mu.Unlock()
	w.opts.Logger.Info("queued export", "queue", queue, "path", path)
	return w.Close()
}

// Path is the spooled file, empty until Upload succeeds.
func (w *Window) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Close releases the window. It is safe to call more than once.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	onClose := w.onClose
	w.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	return nil
}

func spool(dir string, now time.Time, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create queue %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, now.Format("20060102-150405")+"-*.png")
	if err != nil {
		return "", fmt.Errorf("create spool file: %w", err)
	}
	path := f.Name()
	pngFormat := format.Default()[0]
	if err := pngFormat.Encode(f, img, 0); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
