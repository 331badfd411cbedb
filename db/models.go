package db

import "time"

// Run represents a row in the runs table.
type Run struct {
	ID              string
	JobFile         string
	OutputDirectory string
	ClipCount       int
	StartedAt       time.Time
	FinishedAt      *time.Time
	Completed       int
	Skipped         int
	Failed          int
	Error           string
}

// RunClip represents a row in the run_clips table.
type RunClip struct {
	ID          int64
	RunID       string
	ClipIndex   int
	Label       string
	Source      string
	Destination string
	Status      string
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}
