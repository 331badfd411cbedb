package job

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed exhibits.yaml
var Template []byte

// DefaultJobFile is the job file name used when none is given.
const DefaultJobFile = "exhibits.yaml"

// TemplateValues fills the header of a generated job file.
type TemplateValues struct {
	OutputDirectory string
	LabelFontColor  string
}

var headerTmpl = template.Must(template.New("header").Parse(`# clipper job file
#
# Run it with:   clipper run <this file>

output_directory: {{printf "%q" .OutputDirectory}}
label_font_color: {{printf "%q" .LabelFontColor}}

clips:
  - label: "Ex. 1"
    source: ./video/a.mp4
    start: "00:00:00"
    stop: "00:00:05"
    # remove_audio: false
    # label_position: bottom_middle
    # label_display: true
`))

// RenderTemplate returns a job file that uses the given output directory and
// label colour. Empty values fall back to the stock template defaults.
func RenderTemplate(v TemplateValues) ([]byte, error) {
	if v.OutputDirectory == "" && v.LabelFontColor == "" {
		return Template, nil
	}
	if v.OutputDirectory == "" {
		v.OutputDirectory = "./output"
	}
	if v.LabelFontColor == "" {
		v.LabelFontColor = DefaultLabelColor
	}
	var buf bytes.Buffer
	if err := headerTmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
