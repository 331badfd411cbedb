package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/clipper/job"
	"github.com/user/clipper/tui/forms"
	"github.com/user/clipper/tui/styles"
)

var newCmd = &cobra.Command{
	Use:   "new [job-file]",
	Short: "Write a template job file",
	Long: `Write a commented job file (default exhibits.yaml) to start from.
With --interactive, ask for the output directory and default label colour first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := job.DefaultJobFile
		if len(args) == 1 {
			path = args[0]
		}
		interactive, _ := cmd.Flags().GetBool("interactive")
		force, _ := cmd.Flags().GetBool("force")

		data := job.Template
		if interactive {
			var result forms.JobFileFormResult
			if err := forms.NewJobFileForm(&result).Run(); err != nil {
				return fmt.Errorf("form cancelled: %w", err)
			}
			rendered, err := job.RenderTemplate(job.TemplateValues{
				OutputDirectory: result.OutputDirectory,
				LabelFontColor:  result.LabelFontColor,
			})
			if err != nil {
				return fmt.Errorf("failed to render job file: %w", err)
			}
			data = rendered
		}

		if err := writeJobFile(path, data, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", styles.Success.Render("✓"), styles.Path.Render(path))
		return nil
	},
}

// writeJobFile creates path with data. An existing file is only replaced
// when force is set.
func writeJobFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create job file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return f.Close()
}

func init() {
	newCmd.Flags().BoolP("interactive", "i", false, "Ask for the output directory and label colour")
	newCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(newCmd)
}
