package clip

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/user/clipper/job"
)

// Status is the result of processing one clip.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one clip.
type Outcome struct {
	Clip        job.Clip
	Destination string
	Status      Status
	// Err is set for failed clips: *MissingSourceError,
	// *EngineInvocationError or a context error.
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Observer is told about each clip as the runner works through a job.
// Calls happen on the runner's goroutine, in clip order.
type Observer interface {
	ClipStarted(c job.Clip, destination string)
	ClipFinished(o Outcome)
}

// Report aggregates the outcomes of one run in clip order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Completed returns the number of clips written.
func (r *Report) Completed() int { return r.count(StatusCompleted) }

// Skipped returns the number of clips whose output already existed.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of clips that could not be produced.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Runner walks a job's clips in order and invokes the engine once per clip.
type Runner struct {
	Engine   Engine
	Options  BuildOptions
	Logger   *slog.Logger
	Observer Observer
}

// NewRunner creates a Runner that shells out to ffmpeg.
func NewRunner(opts BuildOptions, logger *slog.Logger) *Runner {
	return &Runner{
		Engine:  &FFmpegEngine{},
		Options: opts,
		Logger:  logger,
	}
}

// Run processes every clip of j in order. Clips whose destination exists are
// skipped and engine failures are recorded per clip without stopping the
// run. A missing source file aborts the run with a *MissingSourceError, and
// a cancelled ctx stops it before the next clip; in both cases the report
// holds the outcomes so far.
func (r *Runner) Run(ctx context.Context, j *job.Job) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := &Report{Outcomes: make([]Outcome, 0, len(j.Clips))}

	for _, c := range j.Clips {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		o, err := r.runClip(ctx, logger, j, c)
		report.Outcomes = append(report.Outcomes, o)
		if r.Observer != nil {
			r.Observer.ClipFinished(o)
		}
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// runClip returns a non-nil error only when the whole run must stop.
func (r *Runner) runClip(ctx context.Context, logger *slog.Logger, j *job.Job, c job.Clip) (Outcome, error) {
	log := logger.With("clip", c.Index+1, "label", c.Label)

	dest, renamed := Destination(j.OutputDirectory, c.Label, c.Source)
	o := Outcome{Clip: c, Destination: dest, StartedAt: time.Now()}
	if renamed {
		log.Warn("label contains a reserved character, file name modified", "destination", dest)
	}

	if isFile(dest) {
		log.Info("destination file already exists, skipped", "destination", dest)
		o.Status = StatusSkipped
		o.FinishedAt = time.Now()
		return o, nil
	}

	if !isFile(c.Source) {
		err := &MissingSourceError{Index: c.Index, Label: c.Label, Source: c.Source}
		log.Error("source file missing", "source", c.Source)
		o.Status = StatusFailed
		o.Err = err
		o.FinishedAt = time.Now()
		return o, err
	}

	if r.Observer != nil {
		r.Observer.ClipStarted(c, dest)
	}

	spec := BuildCommand(c, dest, r.Options)
	log.Debug("running engine", "command", spec.String())

	runErr := r.Engine.Run(ctx, spec)
	o.FinishedAt = time.Now()
	if runErr == nil {
		log.Info("clip completed", "destination", dest, "elapsed", o.FinishedAt.Sub(o.StartedAt))
		o.Status = StatusCompleted
		return o, nil
	}

	// A failed run may leave a partial file behind; it would be mistaken for
	// finished output on the next run.
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("could not remove partial output", "destination", dest, "error", err)
	}

	o.Status = StatusFailed
	if ctxErr := ctx.Err(); ctxErr != nil {
		o.Err = ctxErr
		return o, ctxErr
	}
	o.Err = newEngineError(c.Index, c.Label, runErr)
	log.Error("clip failed", "error", o.Err)
	return o, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Observers fans each notification out to every observer in order.
type Observers []Observer

func (obs Observers) ClipStarted(c job.Clip, destination string) {
	for _, o := range obs {
		o.ClipStarted(c, destination)
	}
}

func (obs Observers) ClipFinished(out Outcome) {
	for _, o := range obs {
		o.ClipFinished(out)
	}
}
