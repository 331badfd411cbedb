package clip

import (
	"errors"
	"fmt"
)

// MissingSourceError is returned when a clip's source file is absent at the
// moment the clip is about to run.
type MissingSourceError struct {
	Index  int
	Label  string
	Source string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("clip %d %q: source file missing: %s", e.Index+1, e.Label, e.Source)
}

// EngineInvocationError is a failed ffmpeg run for one clip. Stderr holds the
// engine's diagnostic output verbatim.
type EngineInvocationError struct {
	Index  int
	Label  string
	Stderr string
	Err    error
}

func (e *EngineInvocationError) Error() string {
	msg := fmt.Sprintf("clip %d %q: ffmpeg external process failed", e.Index+1, e.Label)
	if e.Stderr != "" {
		return msg + ": " + e.Stderr
	}
	return msg + ": " + e.Err.Error()
}

func (e *EngineInvocationError) Unwrap() error {
	return e.Err
}

func newEngineError(c int, label string, err error) *EngineInvocationError {
	e := &EngineInvocationError{Index: c, Label: label, Err: err}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		e.Stderr = exitErr.Stderr
	}
	return e
}
