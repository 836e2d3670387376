package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/snipshot/internal/format"
)

// SaveDialog asks where to save. It receives the combined filter string
// and returns the chosen target, or ErrCancelled.
type SaveDialog interface {
	Prompt(filter string) (SaveTarget, error)
}

// SaveTarget is a destination picked through a SaveDialog.
type SaveTarget interface {
	// FilterIndex is the 0-based index of the chosen filter fragment.
	FilterIndex() int
	// Create opens the destination for writing.
	Create() (io.WriteCloser, error)
	// Discard removes whatever a failed write left behind.
	Discard() error
	String() string
}

// FileTarget saves to a path on disk.
type FileTarget struct {
	Path  string
	Index int
}

func (t FileTarget) FilterIndex() int { return t.Index }

func (t FileTarget) Create() (io.WriteCloser, error) {
	if dir := filepath.Dir(t.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	f, err := os.Create(t.Path)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", t.Path, err)
	}
	return f, nil
}

func (t FileTarget) Discard() error {
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (t FileTarget) String() string { return t.Path }

// PathDialog answers every prompt with a fixed path. The filter index is
// the fragment whose pattern matches the path's extension.
type PathDialog struct {
	Path string
}

func (d PathDialog) Prompt(filter string) (SaveTarget, error) {
	if strings.TrimSpace(d.Path) == "" {
		return nil, ErrCancelled
	}
	return FileTarget{Path: d.Path, Index: format.MatchFilter(filter, d.Path)}, nil
}

// DefaultFileName is the time layout used when AutoDialog has none.
const DefaultFileName = "Screenshot 2006-01-02 150405"

// AutoDialog picks a time-stamped name in Dir without asking. Format is the
// extension or encoder id to save as; the first filter is used when empty.
type AutoDialog struct {
	Dir      string
	FileName string
	Format   string
	Now      func() time.Time
}

func (d AutoDialog) Prompt(filter string) (SaveTarget, error) {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	layout := d.FileName
	if strings.TrimSpace(layout) == "" {
		layout = DefaultFileName
	}
	idx, ext := 0, ""
	if d.Format != "" {
		probe := "x." + strings.TrimPrefix(d.Format, ".")
		idx = format.MatchFilter(filter, probe)
		if idx < 0 {
			return FileTarget{Index: -1}, nil
		}
		ext = strings.TrimPrefix(d.Format, ".")
	} else {
		parts := strings.Split(filter, format.Separator)
		if len(parts) < 2 {
			return FileTarget{Index: -1}, nil
		}
		glob := strings.Split(parts[1], format.PatternSeparator)[0]
		ext = strings.TrimPrefix(strings.TrimSpace(glob), "*.")
	}
	name := now().Format(layout) + "." + ext
	return FileTarget{Path: filepath.Join(d.Dir, name), Index: idx}, nil
}
