package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/clipper/config"
	"github.com/user/clipper/db"
	"github.com/user/clipper/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent runs",
	Long:  `List recent runs from the history database, newest first. Given a run ID, list that run's clips.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.New()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer database.Close()

		if len(args) == 1 {
			return printRunClips(cmd.OutOrStdout(), database, args[0])
		}
		return printRuns(cmd.OutOrStdout(), database, limit)
	},
}

func printRuns(out io.Writer, database *sql.DB, limit int) error {
	runs, err := db.SelectRecentRuns(database, limit)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tStarted\tDuration\tJob\tClips\tDone\tSkipped\tFailed")
	fmt.Fprintln(w, "--\t-------\t--------\t---\t-----\t----\t-------\t------")

	for _, r := range runs {
		duration := "running"
		if r.FinishedAt != nil {
			duration = timeutil.FormatTime(r.FinishedAt.Sub(r.StartedAt).Seconds())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			shortID(r.ID), r.StartedAt.Local().Format("2006-01-02 15:04"), duration, r.JobFile,
			r.ClipCount, r.Completed, r.Skipped, r.Failed)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d run(s) found.\n", len(runs))
	return nil
}

func printRunClips(out io.Writer, database *sql.DB, runID string) error {
	id, err := resolveRunID(database, runID)
	if err != nil {
		return err
	}
	clips, err := db.SelectRunClips(database, id)
	if err != nil {
		return fmt.Errorf("failed to query run clips: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLabel\tStatus\tDestination\tError")
	fmt.Fprintln(w, "-\t-----\t------\t-----------\t-----")
	for _, c := range clips {
		errStr := c.Error
		if len(errStr) > 60 {
			errStr = errStr[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ClipIndex+1, c.Label, c.Status, c.Destination, errStr)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d clip(s) recorded for run %s.\n", len(clips), id)
	return nil
}

// resolveRunID expands a short ID prefix as printed by printRuns.
func resolveRunID(database *sql.DB, prefix string) (string, error) {
	runs, err := db.SelectRecentRuns(database, -1)
	if err != nil {
		return "", fmt.Errorf("failed to query runs: %w", err)
	}
	match := ""
	for _, r := range runs {
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("run ID %q is ambiguous", prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no run with ID %q", prefix)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of runs to show")

	rootCmd.AddCommand(historyCmd)
}
