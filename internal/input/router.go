// Package input maps key presses and toolbar buttons in the capture view to
// export actions.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/snipshot/internal/export"
)

// Action is a terminal view action.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionCopy
	ActionSave
	ActionExport
	ActionSearch
)

var actionNames = map[Action]string{
	ActionNone:   "none",
	ActionClose:  "close",
	ActionCopy:   "copy",
	ActionSave:   "save",
	ActionExport: "export",
	ActionSearch: "search",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction returns the action called name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// Actions performs the export side of the view. *export.Session
// implements it.
type Actions interface {
	Copy() error
	Save() error
	Export(destination bool) error
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code key.Code
	Ctrl bool
}

// DefaultShortcuts is the view's key table.
var DefaultShortcuts = map[KeyShortcut]Action{
	{Code: key.CodeEscape}:        ActionClose,
	{Code: key.CodeC, Ctrl: true}: ActionCopy,
	{Code: key.CodeS, Ctrl: true}: ActionSave,
	{Code: key.CodeD, Ctrl: true}: ActionExport,
}

// Options configures a Router. OnError is called with failures that need
// user feedback.
type Options struct {
	Actions   Actions
	Close     func()
	Pipeline  *Pipeline
	Shortcuts map[KeyShortcut]Action
	OnError   func(Action, error)
	Logger    *slog.Logger
}

// Router dispatches key events. It holds no state between events.
type Router struct {
	actions   Actions
	close     func()
	pipeline  *Pipeline
	shortcuts map[KeyShortcut]Action
	onError   func(Action, error)
	log       *slog.Logger
}

// NewRouter returns a Router for opts. A nil shortcut table means
// DefaultShortcuts.
func NewRouter(opts Options) *Router {
	r := &Router{
		actions:   opts.Actions,
		close:     opts.Close,
		pipeline:  opts.Pipeline,
		shortcuts: opts.Shortcuts,
		onError:   opts.OnError,
		log:       opts.Logger,
	}
	if r.shortcuts == nil {
		r.shortcuts = DefaultShortcuts
	}
	if r.pipeline == nil {
		r.pipeline = &Pipeline{}
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Pipeline returns the listeners unconsumed keys are forwarded to.
func (r *Router) Pipeline() *Pipeline { return r.pipeline }

// HandleKey runs the action bound to e, if any, and forwards every other
// event unmodified to the pipeline. Ctrl is read from the event's own
// modifier state. It reports whether the event was consumed.
func (r *Router) HandleKey(e key.Event) bool {
	if e.Direction == key.DirPress || e.Direction == key.DirNone {
		if a, ok := r.shortcuts[shortcutFor(e)]; ok {
			r.Trigger(a)
			return true
		}
	}
	r.pipeline.Dispatch(e)
	return false
}

func shortcutFor(e key.Event) KeyShortcut {
	code := e.Code
	if code == key.CodeUnknown {
		code = codeForRune(e.Rune)
	}
	return KeyShortcut{Code: code, Ctrl: e.Modifiers&key.ModControl != 0}
}

// codeForRune recovers the key code for drivers that only report runes.
// Control characters are mapped back to their letter.
func codeForRune(r rune) key.Code {
	switch {
	case r == 0x1b:
		return key.CodeEscape
	case r >= 1 && r <= 26:
		return key.CodeA + key.Code(r-1)
	}
	r = unicode.ToLower(r)
	if r >= 'a' && r <= 'z' {
		return key.CodeA + key.Code(r-'a')
	}
	return key.CodeUnknown
}

// Trigger runs a. Copy, save and export close the view only when they
// complete; a failed action leaves it open. Search opens the export window
// with the destination flag set. It returns the action's error.
func (r *Router) Trigger(a Action) error {
	var err error
	switch a {
	case ActionClose:
		r.closeView()
		return nil
	case ActionCopy:
		err = r.run(func(x Actions) error { return x.Copy() })
	case ActionSave:
		err = r.run(func(x Actions) error { return x.Save() })
	case ActionExport:
		err = r.run(func(x Actions) error { return x.Export(false) })
	case ActionSearch:
		err = r.run(func(x Actions) error { return x.Export(true) })
	default:
		return nil
	}
	if err == nil {
		r.closeView()
		return nil
	}
	if export.Ignorable(err) {
		r.log.Debug("action skipped", "action", a, "reason", err)
	} else {
		r.log.Warn("action failed", "action", a, "error", err)
		if r.onError != nil {
			r.onError(a, err)
		}
	}
	return err
}

var errNoActions = errors.New("no actions bound")

func (r *Router) run(fn func(Actions) error) error {
	if r.actions == nil {
		return errNoActions
	}
	return fn(r.actions)
}

func (r *Router) closeView() {
	if r.close != nil {
		r.close()
	}
}
