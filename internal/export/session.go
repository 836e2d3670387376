package export

import (
	"errors"
	"image"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/extract"
	"github.com/example/snipshot/internal/selection"
)

// Observer is told about completed actions.
type Observer interface {
	Saved(path string, img image.Image)
	Copied(img image.Image)
	Exported(img image.Image, destination bool)
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	OnSaved    func(path string, img image.Image)
	OnCopied   func(img image.Image)
	OnExported func(img image.Image, destination bool)
}

func (o ObserverFuncs) Saved(path string, img image.Image) {
	if o.OnSaved != nil {
		o.OnSaved(path, img)
	}
}

func (o ObserverFuncs) Copied(img image.Image) {
	if o.OnCopied != nil {
		o.OnCopied(img)
	}
}

func (o ObserverFuncs) Exported(img image.Image, destination bool) {
	if o.OnExported != nil {
		o.OnExported(img, destination)
	}
}

// Session binds one capture and its selection to a Coordinator. Scale is
// updated by the view whenever the canvas is resized.
type Session struct {
	Coordinator *Coordinator
	Region      *selection.Region
	Buffer      *capture.Buffer
	Scale       extract.Scale
}

// NewSession starts a session over buf with an empty selection and
// identity scale.
func NewSession(c *Coordinator, buf *capture.Buffer) *Session {
	return &Session{Coordinator: c, Region: selection.Empty(), Buffer: buf, Scale: extract.Identity}
}

func (s *Session) Save() error {
	return s.Coordinator.TrySave(s.Region.Transform(), s.Buffer, s.Scale)
}

func (s *Session) Copy() error {
	return s.Coordinator.TryCopy(s.Region.Transform(), s.Buffer, s.Scale)
}

func (s *Session) Export(destination bool) error {
	return s.Coordinator.TryOpenExportWindow(s.Region.Transform(), s.Buffer, s.Scale, destination)
}

// Ignorable reports errors that need no user feedback: a cancelled dialog,
// a missing selection or an already open export window.
func Ignorable(err error) bool {
	if errors.Is(err, ErrExportWindowActive) {
		return true
	}
	switch ReasonOf(err) {
	case Cancelled, NoSelection:
		return true
	}
	return false
}
