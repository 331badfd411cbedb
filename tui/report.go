package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/user/clipper/clip"
	"github.com/user/clipper/job"
	"github.com/user/clipper/pkg/timeutil"
	"github.com/user/clipper/tui/styles"
)

// OutcomeLine renders one finished clip as a single styled line.
func OutcomeLine(o clip.Outcome) string {
	label := styles.PrimaryText.Render(o.Clip.Label)
	switch o.Status {
	case clip.StatusCompleted:
		elapsed := o.FinishedAt.Sub(o.StartedAt).Round(100 * time.Millisecond)
		return fmt.Sprintf("%s %s -> %s %s",
			styles.Success.Render("✓"), label, styles.Path.Render(o.Destination),
			styles.SecondaryText.Render("("+elapsed.String()+")"))
	case clip.StatusSkipped:
		return fmt.Sprintf("%s %s %s",
			styles.Notice.Render("-"), label, styles.Notice.Render("skipped, "+o.Destination+" exists"))
	default:
		msg := "failed"
		if o.Err != nil {
			msg = o.Err.Error()
		}
		return fmt.Sprintf("%s %s %s", styles.Warning.Render("✗"), label, styles.Warning.Render(msg))
	}
}

// LinePrinter is a clip.Observer that writes one line per finished clip.
// It is used when the progress box cannot be drawn.
type LinePrinter struct {
	W io.Writer
}

func (p LinePrinter) ClipStarted(c job.Clip, destination string) {
	fmt.Fprintf(p.W, "%s %s\n", styles.SecondaryText.Render("cutting"), c.Label)
}

func (p LinePrinter) ClipFinished(o clip.Outcome) {
	fmt.Fprintln(p.W, OutcomeLine(o))
}

// PrintDiagnostics writes job file warnings, one per line.
func PrintDiagnostics(w io.Writer, diags []job.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s\n", styles.Notice.Render("warning:"), d.String())
	}
}

// PrintSummary writes the run totals and the combined duration of the clips
// that were cut.
func PrintSummary(w io.Writer, report *clip.Report) {
	if report == nil {
		return
	}

	var seconds float64
	for _, o := range report.Outcomes {
		if o.Status != clip.StatusCompleted {
			continue
		}
		if span, ok := timeutil.Span(o.Clip.Start, o.Clip.Stop); ok {
			seconds += span
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render("Summary"))
	fmt.Fprintf(w, "  %s %d\n", styles.Success.Render("completed"), report.Completed())
	fmt.Fprintf(w, "  %s %d\n", styles.Notice.Render("skipped  "), report.Skipped())
	if n := report.Failed(); n > 0 {
		fmt.Fprintf(w, "  %s %d\n", styles.Warning.Render("failed   "), n)
	} else {
		fmt.Fprintf(w, "  %s %d\n", styles.SecondaryText.Render("failed   "), n)
	}
	if seconds > 0 {
		fmt.Fprintf(w, "  %s %s\n", styles.SecondaryText.Render("footage  "), timeutil.FormatTime(seconds))
	}
}
