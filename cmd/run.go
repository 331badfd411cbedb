package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/user/clipper/clip"
	"github.com/user/clipper/config"
	"github.com/user/clipper/db"
	"github.com/user/clipper/deps"
	"github.com/user/clipper/job"
	"github.com/user/clipper/logging"
	"github.com/user/clipper/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [job-file]",
	Short: "Cut every clip listed in a job file",
	Long: `Load the job file (default exhibits.yaml), then run ffmpeg once per clip.
Clips whose output file already exists are skipped, so an interrupted job can
simply be run again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := job.DefaultJobFile
		if len(args) == 1 {
			path = args[0]
		}
		noProgress, _ := cmd.Flags().GetBool("no-progress")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		cfg, err := config.New()
		if err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.LogLevel(), cfg.LogFormat(), cmd.ErrOrStderr())

		if _, err := deps.CheckFfmpeg(cfg.FFmpegBinary()); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runJob(ctx, runParams{
			path:     path,
			cfg:      cfg,
			logger:   logger,
			out:      cmd.OutOrStdout(),
			progress: !noProgress && isTerminal(cmd.OutOrStdout()),
			history:  cfg.HistoryEnabled() && !noHistory,
			engine:   &clip.FFmpegEngine{},
		})
	},
}

type runParams struct {
	path     string
	cfg      config.Config
	logger   *slog.Logger
	out      io.Writer
	progress bool
	history  bool
	engine   clip.Engine
}

// runJob loads the job file and processes it, recording the run in the
// history database when enabled.
func runJob(ctx context.Context, p runParams) error {
	opts := job.LoadOptions{}
	if p.cfg.LogFormat() == "json" {
		opts.Logger = logging.WithComponent(p.logger, "loader")
	}
	j, diags, err := job.LoadFile(p.path, opts)
	if opts.Logger == nil {
		tui.PrintDiagnostics(p.out, diags)
	}
	if err != nil {
		return err
	}

	logger := p.logger
	observers := clip.Observers{}

	var ledger *db.Ledger
	if p.history {
		database, err := db.Open(p.cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer database.Close()

		ledger, err = startLedger(database, p.path, j, logger)
		if err != nil {
			return err
		}
		logger = logging.WithRunID(logger, ledger.RunID())
		observers = append(observers, ledger)
	}

	runner := &clip.Runner{
		Engine: p.engine,
		Options: clip.BuildOptions{
			Binary:   p.cfg.FFmpegBinary(),
			FontFile: p.cfg.FontFile(),
		},
		Logger: logging.WithComponent(logger, "runner"),
	}

	logger.Info("run started", "job_file", logging.SanitizePath(p.path), "clips", len(j.Clips),
		"output_directory", logging.SanitizePath(j.OutputDirectory))

	var report *clip.Report
	var runErr error
	if p.progress {
		report, runErr = tui.RunWithProgress(ctx, p.out, len(j.Clips), func(ctx context.Context, obs clip.Observer) (*clip.Report, error) {
			runner.Observer = append(observers, obs)
			return runner.Run(ctx, j)
		})
	} else {
		runner.Observer = append(observers, tui.LinePrinter{W: p.out})
		report, runErr = runner.Run(ctx, j)
	}

	if ledger != nil {
		if err := ledger.Finish(report, runErr); err != nil {
			logger.Warn("could not record run totals", "error", err)
		}
	}

	tui.PrintSummary(p.out, report)

	if runErr != nil {
		var missing *clip.MissingSourceError
		if errors.As(runErr, &missing) {
			return fmt.Errorf("run aborted: %w", runErr)
		}
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d clip(s) failed", n)
	}
	return nil
}

func startLedger(database *sql.DB, path string, j *job.Job, logger *slog.Logger) (*db.Ledger, error) {
	ledger, err := db.StartRun(database, path, j, logging.WithComponent(logger, "history"))
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return ledger, nil
}

// isTerminal reports whether w is a terminal the progress box can draw on.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	runCmd.Flags().Bool("no-progress", false, "Print one line per clip instead of the progress box")
	runCmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	rootCmd.AddCommand(runCmd)
}
