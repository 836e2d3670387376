package export

import (
	"errors"
	"fmt"
)

// Reason classifies why an export action did not complete.
type Reason int

const (
	NoSelection Reason = iota + 1
	InvalidSize
	Cancelled
	NoFormatResolved
	ExtractFailed
	EncodeFailed
	WriteFailed
	ClipboardFailed
	WindowFailed
)

var reasonNames = map[Reason]string{
	NoSelection:      "no selection",
	InvalidSize:      "selection has no area",
	Cancelled:        "cancelled",
	NoFormatResolved: "no format resolved",
	ExtractFailed:    "extract failed",
	EncodeFailed:     "encode failed",
	WriteFailed:      "write failed",
	ClipboardFailed:  "clipboard failed",
	WindowFailed:     "export window failed",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Operation names used in ExportError.Op.
const (
	OpSave   = "save"
	OpCopy   = "copy"
	OpExport = "export"
)

// ErrExportWindowActive is returned by TryOpenExportWindow while a previous
// export window is still open. The call did nothing.
var ErrExportWindowActive = errors.New("export window already open")

// ErrCancelled is returned by a SaveDialog when the user dismisses it.
var ErrCancelled = errors.New("save cancelled")

// ExportError reports a failed save, copy or export action. The selection
// and capture are left unchanged so the action can be retried.
type ExportError struct {
	Op     string
	Reason Reason
	Err    error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ReasonOf returns the Reason carried by err, or 0 when err is not an
// ExportError.
func ReasonOf(err error) Reason {
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee.Reason
	}
	return 0
}

func fail(op string, r Reason, err error) error {
	return &ExportError{Op: op, Reason: r, Err: err}
}
