package input

import (
	"errors"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/snipshot/internal/export"
)

type fakeActions struct {
	calls   []string
	copyErr error
	saveErr error
	expErr  error
}

func (f *fakeActions) Copy() error { f.calls = append(f.calls, "copy"); return f.copyErr }
func (f *fakeActions) Save() error { f.calls = append(f.calls, "save"); return f.saveErr }

func (f *fakeActions) Export(destination bool) error {
	if destination {
		f.calls = append(f.calls, "search")
	} else {
		f.calls = append(f.calls, "export")
	}
	return f.expErr
}

type harness struct {
	actions   *fakeActions
	closed    int
	forwarded []key.Event
	errs      []error
	router    *Router
}

func newHarness() *harness {
	h := &harness{actions: &fakeActions{}}
	p := &Pipeline{}
	p.Subscribe(ListenerFunc(func(e key.Event) { h.forwarded = append(h.forwarded, e) }))
	h.router = NewRouter(Options{
		Actions:  h.actions,
		Close:    func() { h.closed++ },
		Pipeline: p,
		OnError:  func(_ Action, err error) { h.errs = append(h.errs, err) },
	})
	return h
}

func press(code key.Code, r rune, mods key.Modifiers) key.Event {
	return key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress}
}

func TestEscapeCloses(t *testing.T) {
	h := newHarness()
	if !h.router.HandleKey(press(key.CodeEscape, -1, 0)) {
		t.Fatalf("escape not consumed")
	}
	if h.closed != 1 || len(h.actions.calls) != 0 {
		t.Fatalf("closed=%d calls=%v", h.closed, h.actions.calls)
	}
}

func TestCtrlShortcutsCloseOnSuccess(t *testing.T) {
	tests := []struct {
		code key.Code
		want string
	}{
		{key.CodeC, "copy"},
		{key.CodeS, "save"},
		{key.CodeD, "export"},
	}
	for _, tc := range tests {
		h := newHarness()
		for _, mods := range []key.Modifiers{key.ModControl, key.ModControl | key.ModShift} {
			if !h.router.HandleKey(press(tc.code, 0, mods)) {
				t.Fatalf("%s: not consumed with modifiers %v", tc.want, mods)
			}
		}
		if len(h.actions.calls) != 2 || h.actions.calls[0] != tc.want {
			t.Fatalf("calls = %v, want %s", h.actions.calls, tc.want)
		}
		if h.closed != 2 {
			t.Fatalf("%s: closed = %d", tc.want, h.closed)
		}
		if len(h.forwarded) != 0 {
			t.Fatalf("%s: consumed key was forwarded", tc.want)
		}
	}
}

func TestFailedActionKeepsViewOpen(t *testing.T) {
	h := newHarness()
	writeErr := &export.ExportError{Op: export.OpSave, Reason: export.WriteFailed, Err: errors.New("disk full")}
	h.actions.saveErr = writeErr
	h.router.HandleKey(press(key.CodeS, 's', key.ModControl))
	if h.closed != 0 {
		t.Fatalf("view closed after failed save")
	}
	if len(h.errs) != 1 || !errors.Is(h.errs[0], writeErr) {
		t.Fatalf("errors reported = %v", h.errs)
	}
}

func TestSingletonNoOpIsQuiet(t *testing.T) {
	h := newHarness()
	h.actions.expErr = export.ErrExportWindowActive
	err := h.router.Trigger(ActionExport)
	if !errors.Is(err, export.ErrExportWindowActive) {
		t.Fatalf("Trigger returned %v", err)
	}
	if h.closed != 0 || len(h.errs) != 0 {
		t.Fatalf("closed=%d errs=%v", h.closed, h.errs)
	}
}

func TestUnboundKeysAreForwarded(t *testing.T) {
	h := newHarness()
	events := []key.Event{
		press(key.CodeC, 'c', 0),
		press(key.CodeS, 's', key.ModShift),
		press(key.CodeQ, 'q', key.ModControl),
		{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirRelease},
	}
	for _, e := range events {
		if h.router.HandleKey(e) {
			t.Fatalf("event %v consumed", e)
		}
	}
	if len(h.forwarded) != len(events) {
		t.Fatalf("forwarded %d of %d", len(h.forwarded), len(events))
	}
	for i, e := range events {
		if h.forwarded[i] != e {
			t.Fatalf("event %d modified: %v != %v", i, h.forwarded[i], e)
		}
	}
	if len(h.actions.calls) != 0 || h.closed != 0 {
		t.Fatalf("unexpected actions %v closed=%d", h.actions.calls, h.closed)
	}
}

func TestRuneOnlyEvents(t *testing.T) {
	h := newHarness()
	h.router.HandleKey(press(key.CodeUnknown, 'C', key.ModControl))
	h.router.HandleKey(press(key.CodeUnknown, 0x04, key.ModControl))
	if len(h.actions.calls) != 2 || h.actions.calls[0] != "copy" || h.actions.calls[1] != "export" {
		t.Fatalf("calls = %v", h.actions.calls)
	}
}

func TestTriggerSearchSetsDestination(t *testing.T) {
	h := newHarness()
	if err := h.router.Trigger(ActionSearch); err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if len(h.actions.calls) != 1 || h.actions.calls[0] != "search" || h.closed != 1 {
		t.Fatalf("calls=%v closed=%d", h.actions.calls, h.closed)
	}
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"close", "copy", "save", "export", "search"} {
		a, ok := ParseAction(name)
		if !ok || a.String() != name {
			t.Fatalf("ParseAction(%q) = %v, %v", name, a, ok)
		}
	}
	if _, ok := ParseAction("none"); ok {
		t.Fatalf("none should not parse")
	}
	if got := Action(42).String(); got != "action(42)" {
		t.Fatalf("unknown action = %q", got)
	}
	if _, ok := ParseAction("action(42)"); ok {
		t.Fatalf("unknown action name parsed")
	}
}

func TestRouterWithoutActions(t *testing.T) {
	closed := false
	r := NewRouter(Options{Close: func() { closed = true }})
	if err := r.Trigger(ActionCopy); !errors.Is(err, errNoActions) {
		t.Fatalf("expected errNoActions, got %v", err)
	}
	if closed {
		t.Fatalf("closed without a completed action")
	}
}
