package db

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/user/clipper/clip"
	"github.com/user/clipper/job"
)

// Ledger records one run in the history database. It implements
// clip.Observer so the runner writes each outcome as it happens.
type Ledger struct {
	db     *sql.DB
	runID  string
	logger *slog.Logger
}

// StartRun inserts a run row for j and returns its ledger.
func StartRun(db *sql.DB, jobFile string, j *job.Job, logger *slog.Logger) (*Ledger, error) {
	id := uuid.NewString()
	err := InsertRun(db, Run{
		ID:              id,
		JobFile:         jobFile,
		OutputDirectory: j.OutputDirectory,
		ClipCount:       len(j.Clips),
		StartedAt:       time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, runID: id, logger: logger}, nil
}

// RunID returns the ID of the recorded run.
func (l *Ledger) RunID() string {
	return l.runID
}

func (l *Ledger) ClipStarted(job.Clip, string) {}

// ClipFinished stores the outcome. Failures are logged, not returned; the
// history must never stop a run.
func (l *Ledger) ClipFinished(o clip.Outcome) {
	rc := RunClip{
		RunID:       l.runID,
		ClipIndex:   o.Clip.Index,
		Label:       o.Clip.Label,
		Source:      o.Clip.Source,
		Destination: o.Destination,
		Status:      string(o.Status),
		StartedAt:   o.StartedAt,
		FinishedAt:  o.FinishedAt,
	}
	if o.Err != nil {
		rc.Error = o.Err.Error()
	}
	if _, err := InsertRunClip(l.db, rc); err != nil && l.logger != nil {
		l.logger.Warn("could not record clip outcome", "run_id", l.runID, "error", err)
	}
}

// Finish stores the report totals and the error that ended the run, if any.
func (l *Ledger) Finish(report *clip.Report, runErr error) error {
	var completed, skipped, failed int
	if report != nil {
		completed, skipped, failed = report.Completed(), report.Skipped(), report.Failed()
	}
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	return FinishRun(l.db, l.runID, time.Now(), completed, skipped, failed, msg)
}
