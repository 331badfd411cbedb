package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/clipper/config"
	"github.com/user/clipper/deps"
	"github.com/user/clipper/tui/styles"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "clipper",
	Short: "Cut labelled clips from video files with ffmpeg",
	Long: `clipper reads a YAML job file listing source videos, time ranges and
labels, and runs ffmpeg once per clip to cut it and burn the label in.

Features:
  - Idempotent reruns: clips whose output already exists are skipped
  - Per-clip label position, colour and audio settings
  - Run history stored in SQLite`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clipper version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg is installed and available, and show where run history is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		version, err := deps.FfmpegVersion(ctx, cfg.FFmpegBinary())
		if err != nil {
			fmt.Fprintf(out, "%s %s: NOT FOUND\n", styles.Warning.Render("✗"), cfg.FFmpegBinary())
			fmt.Fprintf(out, "  Install from: %s\n", deps.FfmpegInstallURL)
			return fmt.Errorf("some dependencies are missing")
		}
		fmt.Fprintf(out, "%s %s: OK (%s)\n", styles.Success.Render("✓"), cfg.FFmpegBinary(), version)

		if font := cfg.FontFile(); font != "" {
			if _, err := os.Stat(font); err != nil {
				fmt.Fprintf(out, "%s label font %s: NOT FOUND\n", styles.Notice.Render("!"), font)
			}
		}

		if cfg.HistoryEnabled() {
			fmt.Fprintf(out, "  history: %s\n", styles.Path.Render(cfg.DBPath()))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "All dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("error:"), err)
		os.Exit(1)
	}
}
