// Package export turns a selection over a capture into a saved file, a
// clipboard image or an export window hand-off.
//
// Every action gates on the selection before touching the capture buffer.
// A failed action leaves the selection and buffer untouched and reports an
// *ExportError; the caller keeps its view open so the user can retry.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/extract"
	"github.com/example/snipshot/internal/format"
	"github.com/example/snipshot/internal/selection"
)

// DefaultMargin insets the export window from the view's bottom-right corner.
const DefaultMargin = 100

// Clipboard receives copied images.
type Clipboard interface {
	WriteImage(img image.Image) error
}

// Window is the export/upload view. It is shown before Upload is called.
type Window interface {
	Size() image.Point
	Show(at image.Point) error
	Upload(img image.Image, destination bool) error
	Close() error
}

// WindowFactory creates an export window. The window must call onClose
// when it goes away so another one can be opened.
type WindowFactory func(onClose func()) (Window, error)

// Options configures a Coordinator. Nil collaborators make the matching
// action fail.
type Options struct {
	Formats     format.Registry
	Dialog      SaveDialog
	Clipboard   Clipboard
	NewWindow   WindowFactory
	View        image.Rectangle
	Margin      int
	JPEGQuality int
	Observers   []Observer
	Logger      *slog.Logger
}

// Coordinator runs the save, copy and export actions.
type Coordinator struct {
	formats     format.Registry
	dialog      SaveDialog
	clipboard   Clipboard
	newWindow   WindowFactory
	view        image.Rectangle
	margin      int
	jpegQuality int
	observers   []Observer
	log         *slog.Logger

	mu     sync.Mutex
	open   bool
	gen    uint64
	window Window
}

// New returns a Coordinator for opts. An empty format list means the
// default registry and a zero margin means DefaultMargin.
func New(opts Options) *Coordinator {
	c := &Coordinator{
		formats:     opts.Formats,
		dialog:      opts.Dialog,
		clipboard:   opts.Clipboard,
		newWindow:   opts.NewWindow,
		view:        opts.View,
		margin:      opts.Margin,
		jpegQuality: opts.JPEGQuality,
		observers:   append([]Observer(nil), opts.Observers...),
		log:         opts.Logger,
	}
	if len(c.formats) == 0 {
		c.formats = format.Default()
	}
	if c.margin == 0 {
		c.margin = DefaultMargin
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Formats is the registry used to resolve save filters.
func (c *Coordinator) Formats() format.Registry { return c.formats }

// AddObserver registers o for subsequent actions.
func (c *Coordinator) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// SetView updates the bounds used to place the export window.
func (c *Coordinator) SetView(r image.Rectangle) { c.view = r }

// TrySave prompts for a destination and writes the selected area there in
// the format picked by the dialog's filter index. The image is encoded in
// memory first; a failed write removes the partial output.
func (c *Coordinator) TrySave(sel selection.Transform, buf *capture.Buffer, s extract.Scale) error {
	if sel.IsClear() {
		return fail(OpSave, NoSelection, nil)
	}
	if c.dialog == nil {
		return fail(OpSave, Cancelled, errors.New("no save dialog"))
	}
	target, err := c.dialog.Prompt(c.formats.Filter())
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return fail(OpSave, Cancelled, err)
		}
		return fail(OpSave, WriteFailed, fmt.Errorf("save dialog: %w", err))
	}
	f, err := c.formats.Resolve(target.FilterIndex())
	if err != nil {
		return fail(OpSave, NoFormatResolved, err)
	}
	img, err := extract.Region(buf, sel, s)
	if err != nil {
		return fail(OpSave, ExtractFailed, err)
	}
	var data bytes.Buffer
	if err := f.Encode(&data, img, c.jpegQuality); err != nil {
		return fail(OpSave, EncodeFailed, err)
	}
	if err := c.write(target, data.Bytes()); err != nil {
		if derr := target.Discard(); derr != nil {
			c.log.Warn("discard partial output", "target", target.String(), "error", derr)
		}
		return fail(OpSave, WriteFailed, err)
	}
	c.log.Info("saved selection", "target", target.String(), "format", f.Name,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	for _, o := range c.observers {
		o.Saved(target.String(), img)
	}
	return nil
}

func (c *Coordinator) write(target SaveTarget, data []byte) (err error) {
	w, err := target.Create()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", target, cerr)
		}
	}()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// TryCopy places the selected area on the clipboard.
func (c *Coordinator) TryCopy(sel selection.Transform, buf *capture.Buffer, s extract.Scale) error {
	if sel.IsClear() {
		return fail(OpCopy, NoSelection, nil)
	}
	if c.clipboard == nil {
		return fail(OpCopy, ClipboardFailed, errors.New("no clipboard"))
	}
	img, err := extract.Region(buf, sel, s)
	if err != nil {
		return fail(OpCopy, ExtractFailed, err)
	}
	if err := c.clipboard.WriteImage(img); err != nil {
		return fail(OpCopy, ClipboardFailed, err)
	}
	c.log.Info("copied selection", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	for _, o := range c.observers {
		o.Copied(img)
	}
	return nil
}

// TryOpenExportWindow hands the selected area to a new export window. Only
// one window may be open; while it is, the call does nothing and returns
// ErrExportWindowActive. That sentinel marks a no-op rather than a failure:
// it is not an *ExportError, Ignorable reports it as true and callers should
// drop it quietly. destination picks the window's alternate target.
func (c *Coordinator) TryOpenExportWindow(sel selection.Transform, buf *capture.Buffer, s extract.Scale, destination bool) error {
	if sel.IsClear() {
		return fail(OpExport, NoSelection, nil)
	}
	if sel.HasInvalidSize() {
		return fail(OpExport, InvalidSize, nil)
	}
	if c.newWindow == nil {
		return fail(OpExport, WindowFailed, errors.New("no export window"))
	}

	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return ErrExportWindowActive
	}
	c.open = true
	c.gen++
	gen := c.gen
	c.mu.Unlock()
	release := func() { c.release(gen) }

	img, err := extract.Region(buf, sel, s)
	if err != nil {
		release()
		return fail(OpExport, ExtractFailed, err)
	}
	w, err := c.newWindow(release)
	if err != nil {
		release()
		return fail(OpExport, WindowFailed, err)
	}
	c.mu.Lock()
	if c.open && c.gen == gen {
		c.window = w
	}
	c.mu.Unlock()

	at := c.view.Max.Sub(w.Size()).Sub(image.Pt(c.margin, c.margin))
	if err := w.Show(at); err != nil {
		c.abandon(w, release)
		return fail(OpExport, WindowFailed, err)
	}
	if err := w.Upload(img, destination); err != nil {
		c.abandon(w, release)
		return fail(OpExport, WindowFailed, err)
	}
	c.log.Info("opened export window", "at", at, "destination", destination,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	for _, o := range c.observers {
		o.Exported(img, destination)
	}
	return nil
}

func (c *Coordinator) abandon(w Window, release func()) {
	if err := w.Close(); err != nil {
		c.log.Warn("close export window", "error", err)
	}
	release()
}

func (c *Coordinator) release(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open && c.gen == gen {
		c.open = false
		c.window = nil
	}
}

// ExportWindowOpen reports whether an export window handle is held.
func (c *Coordinator) ExportWindowOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// CloseExportWindow closes the held export window, if any.
func (c *Coordinator) CloseExportWindow() error {
	c.mu.Lock()
	w := c.window
	c.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
