package db

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is how timestamps are stored; it sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// InsertRun records the start of a run.
func InsertRun(db *sql.DB, r Run) error {
	_, err := db.Exec(InsertRunSQL, r.ID, r.JobFile, r.OutputDirectory, r.ClipCount, formatTime(r.StartedAt))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final counts and the error (if any) that ended a run.
func FinishRun(db *sql.DB, id string, finishedAt time.Time, completed, skipped, failed int, runErr string) error {
	var errVal sql.NullString
	if runErr != "" {
		errVal = sql.NullString{String: runErr, Valid: true}
	}
	_, err := db.Exec(FinishRunSQL, formatTime(finishedAt), completed, skipped, failed, errVal, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// InsertRunClip records one clip outcome and returns its row ID.
func InsertRunClip(db *sql.DB, c RunClip) (int64, error) {
	var errVal sql.NullString
	if c.Error != "" {
		errVal = sql.NullString{String: c.Error, Valid: true}
	}
	result, err := db.Exec(InsertRunClipSQL,
		c.RunID, c.ClipIndex, c.Label, c.Source, c.Destination, c.Status, errVal,
		formatTime(c.StartedAt), formatTime(c.FinishedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run clip: %w", err)
	}
	return result.LastInsertId()
}

// SelectRecentRuns returns up to limit runs, newest first.
func SelectRecentRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(SelectRecentRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var finished, runErr sql.NullString
		if err := rows.Scan(&r.ID, &r.JobFile, &r.OutputDirectory, &r.ClipCount, &started, &finished,
			&r.Completed, &r.Skipped, &r.Failed, &runErr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, fmt.Errorf("parse run start: %w", err)
		}
		if finished.Valid {
			t, err := parseTime(finished.String)
			if err != nil {
				return nil, fmt.Errorf("parse run finish: %w", err)
			}
			r.FinishedAt = &t
		}
		r.Error = runErr.String
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// SelectRunClips returns the clip outcomes of a run in clip order.
func SelectRunClips(db *sql.DB, runID string) ([]RunClip, error) {
	rows, err := db.Query(SelectRunClipsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select run clips: %w", err)
	}
	defer rows.Close()

	var clips []RunClip
	for rows.Next() {
		var c RunClip
		var started, finished string
		var clipErr sql.NullString
		if err := rows.Scan(&c.ID, &c.RunID, &c.ClipIndex, &c.Label, &c.Source, &c.Destination,
			&c.Status, &clipErr, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run clip: %w", err)
		}
		if c.StartedAt, err = parseTime(started); err != nil {
			return nil, fmt.Errorf("parse clip start: %w", err)
		}
		if c.FinishedAt, err = parseTime(finished); err != nil {
			return nil, fmt.Errorf("parse clip finish: %w", err)
		}
		c.Error = clipErr.String
		clips = append(clips, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run clips: %w", err)
	}
	return clips, nil
}
