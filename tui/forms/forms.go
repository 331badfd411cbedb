// Package forms provides huh-based forms for interactive commands.
package forms

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/clipper/job"
)

// JobFileFormResult holds the answers of the new-job-file form.
type JobFileFormResult struct {
	OutputDirectory string
	LabelFontColor  string
}

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
var namedColor = regexp.MustCompile(`^[A-Za-z]+(@[0-9.]+)?$`)

// ValidateColor accepts ffmpeg colours written as #RRGGBB[AA] or a colour name.
func ValidateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("colour is required")
	}
	if hexColor.MatchString(s) || namedColor.MatchString(s) {
		return nil
	}
	return fmt.Errorf("use #RRGGBB or a colour name such as white")
}

// NewJobFileForm creates a huh form asking for the output directory and
// default label colour of a new job file. The result pointer is bound to the
// form fields and populated on submit.
func NewJobFileForm(result *JobFileFormResult) *huh.Form {
	if result.LabelFontColor == "" {
		result.LabelFontColor = job.DefaultLabelColor
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New clipper job file"),

			huh.NewInput().
				Title("Output directory").
				Description("Created when the job runs").
				Placeholder("./output").
				Value(&result.OutputDirectory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Label colour").
				Description("Default for every clip").
				Value(&result.LabelFontColor).
				Validate(ValidateColor),
		),
	).WithTheme(Theme())
}
