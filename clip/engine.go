package clip

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// Engine runs one assembled command and blocks until it finishes.
type Engine interface {
	Run(ctx context.Context, spec CommandSpec) error
}

// FFmpegEngine runs commands as subprocesses.
type FFmpegEngine struct {
	// Stderr, when set, also receives the engine's stderr as it is written.
	Stderr io.Writer
}

// Run executes spec. A non-zero exit is returned as an *ExitError carrying
// the captured stderr.
func (e *FFmpegEngine) Run(ctx context.Context, spec CommandSpec) error {
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Args...)

	var stderr bytes.Buffer
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return &ExitError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

// ExitError is a failed engine run.
type ExitError struct {
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Stderr
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
