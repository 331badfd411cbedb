package job

import (
	"fmt"
	"strings"
)

// ConfigError reports a job file that cannot be turned into a Job.
// Field and Clip are set when the problem is tied to a specific key.
type ConfigError struct {
	Field string
	// Clip is the zero-based clip index, or -1 for top-level problems.
	Clip  int
	Label string
	Line  int
	Msg   string
	Err   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	if e.Clip >= 0 {
		fmt.Fprintf(&b, "clip %d", e.Clip+1)
		if e.Label != "" {
			fmt.Fprintf(&b, " %q", e.Label)
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Diagnostic is a non-fatal problem found while loading a job file.
type Diagnostic struct {
	Line  int
	Clip  int
	Label string
	Field string
	Msg   string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", d.Line)
	}
	if d.Clip >= 0 {
		fmt.Fprintf(&b, "clip %d", d.Clip+1)
		if d.Label != "" {
			fmt.Fprintf(&b, " %q", d.Label)
		}
		b.WriteString(": ")
	}
	if d.Field != "" {
		b.WriteString(d.Field)
		b.WriteString(": ")
	}
	b.WriteString(d.Msg)
	return b.String()
}
