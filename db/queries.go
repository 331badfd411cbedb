package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Run queries

//go:embed sql/insert_run.sql
var InsertRunSQL string

//go:embed sql/finish_run.sql
var FinishRunSQL string

//go:embed sql/select_recent_runs.sql
var SelectRecentRunsSQL string

// Run clip queries

//go:embed sql/insert_run_clip.sql
var InsertRunClipSQL string

//go:embed sql/select_run_clips.sql
var SelectRunClipsSQL string
