package job

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func load(t *testing.T, base, doc string) (*Job, []Diagnostic, error) {
	t.Helper()
	return Load(strings.NewReader(doc), LoadOptions{BaseDir: base})
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Minimal(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "a.mp4"))

	j, diags, err := load(t, base, `
output_directory: out
clips:
  - label: Ex1
    source: a.mp4
    start: "00:00:00"
    stop: "00:00:05"
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
	if j.OutputDirectory != filepath.Join(base, "out") {
		t.Errorf("OutputDirectory = %q", j.OutputDirectory)
	}
	if info, err := os.Stat(j.OutputDirectory); err != nil || !info.IsDir() {
		t.Errorf("output directory not created: %v", err)
	}
	if j.DefaultLabelColor != DefaultLabelColor {
		t.Errorf("DefaultLabelColor = %q, want %q", j.DefaultLabelColor, DefaultLabelColor)
	}
	if len(j.Clips) != 1 {
		t.Fatalf("len(Clips) = %d, want 1", len(j.Clips))
	}

	c := j.Clips[0]
	want := Clip{
		Index:          0,
		Source:         filepath.Join(base, "a.mp4"),
		Label:          "Ex1",
		Start:          "00:00:00",
		Stop:           "00:00:05",
		RemoveAudio:    false,
		LabelPosition:  BottomMiddle,
		LabelDisplay:   true,
		LabelFontColor: DefaultLabelColor,
	}
	if c != want {
		t.Errorf("clip = %+v, want %+v", c, want)
	}
}

func TestLoad_AllClipFields(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "b.mov"))

	j, _, err := load(t, base, `
output_directory: out
label_font_color: "#ffffff"
clips:
  - label: "Ex. 2"
    source: b.mov
    start: 12.5
    stop: "00:01:00.250"
    remove_audio: true
    label_position: top_right
    label_display: false
    label_font_color: red
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c := j.Clips[0]
	if !c.RemoveAudio || c.LabelDisplay {
		t.Errorf("RemoveAudio = %v, LabelDisplay = %v", c.RemoveAudio, c.LabelDisplay)
	}
	if c.LabelPosition != TopRight {
		t.Errorf("LabelPosition = %q, want %q", c.LabelPosition, TopRight)
	}
	if c.LabelFontColor != "red" {
		t.Errorf("LabelFontColor = %q, want red", c.LabelFontColor)
	}
	if c.Start != "12.5" {
		t.Errorf("Start = %q, want verbatim 12.5", c.Start)
	}
	if j.DefaultLabelColor != "#ffffff" {
		t.Errorf("DefaultLabelColor = %q", j.DefaultLabelColor)
	}
}

func TestLoad_DefaultColorFollowsDocumentOrder(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "a.mp4"))

	j, _, err := load(t, base, `
output_directory: out
label_font_color: "#111111"
clips:
  - {label: A, source: a.mp4, start: "0", stop: "1"}
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := j.Clips[0].LabelFontColor; got != "#111111" {
		t.Errorf("LabelFontColor = %q, want #111111", got)
	}
}

func TestLoad_MissingOutputDirectory(t *testing.T) {
	base := t.TempDir()

	_, _, err := load(t, base, `
label_font_color: "#ffffff"
clips: []
`)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "output_directory" {
		t.Errorf("Field = %q, want output_directory", cfgErr.Field)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("base dir has %d entries, want none", len(entries))
	}
}

func TestLoad_FailedDocumentCreatesNoDirectory(t *testing.T) {
	base := t.TempDir()

	_, _, err := load(t, base, `
output_directory: out
clips:
  - label: A
    source: a.mp4
    start: "0"
`)
	if err == nil {
		t.Fatal("Load() error = nil, want missing stop")
	}
	if _, err := os.Stat(filepath.Join(base, "out")); !os.IsNotExist(err) {
		t.Errorf("output directory exists after failed load: %v", err)
	}
}

func TestLoad_UnrecognizedTopLevelKey(t *testing.T) {
	base := t.TempDir()

	j, diags, err := load(t, base, `
output_directory: out
hearing: "Trial, US v. Smith"
label_font_color: "#abcdef"
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(diags) != 1 || diags[0].Field != "hearing" {
		t.Fatalf("diagnostics = %v, want one for hearing", diags)
	}
	if diags[0].Line != 3 {
		t.Errorf("diagnostic line = %d, want 3", diags[0].Line)
	}
	if j.DefaultLabelColor != "#abcdef" {
		t.Errorf("DefaultLabelColor = %q", j.DefaultLabelColor)
	}
	if len(j.Clips) != 0 {
		t.Errorf("len(Clips) = %d, want 0", len(j.Clips))
	}
}

func TestLoad_UnrecognizedLabelPosition(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "a.mp4"))

	j, diags, err := load(t, base, `
output_directory: out
clips:
  - label: A
    source: a.mp4
    start: "0"
    stop: "1"
    label_position: center
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if j.Clips[0].LabelPosition != BottomMiddle {
		t.Errorf("LabelPosition = %q, want bottom_middle", j.Clips[0].LabelPosition)
	}
	if len(diags) != 1 || diags[0].Field != "label_position" || diags[0].Label != "A" {
		t.Fatalf("diagnostics = %v, want one label_position warning for clip A", diags)
	}
}

func TestLoad_DiagnosticsInDocumentOrder(t *testing.T) {
	base := t.TempDir()

	_, diags, err := load(t, base, `
zeta: 1
output_directory: out
clips:
  - label: A
    source: missing.mp4
    colour: blue
    start: "0"
    stop: "1"
alpha: 2
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"zeta", "source", "colour", "alpha"}
	if len(diags) != len(want) {
		t.Fatalf("diagnostics = %v, want %d", diags, len(want))
	}
	for i, f := range want {
		if diags[i].Field != f {
			t.Errorf("diags[%d].Field = %q, want %q", i, diags[i].Field, f)
		}
	}
	if diags[1].Clip != 0 || diags[1].Label != "A" {
		t.Errorf("source diagnostic does not identify clip: %+v", diags[1])
	}
}

func TestLoad_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "root is a sequence",
			doc:   "- a\n- b\n",
			field: "",
		},
		{
			name:  "empty document",
			doc:   "",
			field: "",
		},
		{
			name:  "output_directory not a string",
			doc:   "output_directory: [a]\n",
			field: "output_directory",
		},
		{
			name:  "clips not a sequence",
			doc:   "output_directory: out\nclips: nope\n",
			field: "clips",
		},
		{
			name:  "clip not a mapping",
			doc:   "output_directory: out\nclips:\n  - just a string\n",
			field: "clips",
		},
		{
			name:  "remove_audio not boolean",
			doc:   "output_directory: out\nclips:\n  - {label: A, source: a.mp4, start: '0', stop: '1', remove_audio: maybe}\n",
			field: "remove_audio",
		},
		{
			name:  "label_display not boolean",
			doc:   "output_directory: out\nclips:\n  - {label: A, source: a.mp4, start: '0', stop: '1', label_display: 1}\n",
			field: "label_display",
		},
		{
			name:  "missing label",
			doc:   "output_directory: out\nclips:\n  - {source: a.mp4, start: '0', stop: '1'}\n",
			field: "label",
		},
		{
			name:  "empty label",
			doc:   "output_directory: out\nclips:\n  - {label: '', source: a.mp4, start: '0', stop: '1'}\n",
			field: "label",
		},
		{
			name:  "label not a string",
			doc:   "output_directory: out\nclips:\n  - {label: 7, source: a.mp4, start: '0', stop: '1'}\n",
			field: "label",
		},
		{
			name:  "missing source",
			doc:   "output_directory: out\nclips:\n  - {label: A, start: '0', stop: '1'}\n",
			field: "source",
		},
		{
			name:  "null start",
			doc:   "output_directory: out\nclips:\n  - {label: A, source: a.mp4, start: ~, stop: '1'}\n",
			field: "start",
		},
		{
			name:  "label_position not a string",
			doc:   "output_directory: out\nclips:\n  - {label: A, source: a.mp4, start: '0', stop: '1', label_position: [x]}\n",
			field: "label_position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := load(t, t.TempDir(), tt.doc)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Load() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q (err: %v)", cfgErr.Field, tt.field, err)
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err.Error(), tt.field)
			}
		})
	}
}

func TestLoad_ClipErrorNamesClip(t *testing.T) {
	_, _, err := load(t, t.TempDir(), `
output_directory: out
clips:
  - {label: First, source: a.mp4, start: "0", stop: "1"}
  - {label: Second, source: b.mp4, start: "0"}
`)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *ConfigError", err)
	}
	if cfgErr.Clip != 1 || cfgErr.Label != "Second" || cfgErr.Field != "stop" {
		t.Errorf("ConfigError = %+v, want clip 1 Second field stop", cfgErr)
	}
	if !strings.Contains(err.Error(), `clip 2 "Second"`) {
		t.Errorf("error %q does not identify the clip", err)
	}
}

func TestLoad_OutputDirectoryIsFile(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "out"))

	_, _, err := load(t, base, "output_directory: out\n")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "output_directory" {
		t.Fatalf("Load() error = %v, want output_directory ConfigError", err)
	}
}

func TestLoad_Aliases(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "a.mp4"))

	j, _, err := load(t, base, `
output_directory: out
common: &common
  source: a.mp4
  start: "0"
  stop: "1"
clips:
  - *common
`)
	if err == nil {
		t.Fatalf("Load() = %+v, want missing label error", j)
	}

	j, diags, err := load(t, base, `
output_directory: out
colour: &c "#000000"
clips:
  - {label: A, source: a.mp4, start: "0", stop: "1", label_font_color: *c}
`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if j.Clips[0].LabelFontColor != "#000000" {
		t.Errorf("LabelFontColor = %q", j.Clips[0].LabelFontColor)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want one for colour", diags)
	}
}

func TestLoadFile_Template(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultJobFile)
	if err := os.WriteFile(path, Template, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	j, diags, err := LoadFile(path, LoadOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(j.Clips) != 2 {
		t.Fatalf("len(Clips) = %d, want 2", len(j.Clips))
	}
	// Only the two missing sources are reported.
	if len(diags) != 2 {
		t.Errorf("diagnostics = %v, want 2", diags)
	}
}

func TestRenderTemplate(t *testing.T) {
	dir := t.TempDir()
	data, err := RenderTemplate(TemplateValues{OutputDirectory: "clips out", LabelFontColor: "yellow"})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}

	j, _, err := Load(strings.NewReader(string(data)), LoadOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Load(rendered) error = %v", err)
	}
	if j.OutputDirectory != filepath.Join(dir, "clips out") {
		t.Errorf("OutputDirectory = %q", j.OutputDirectory)
	}
	if j.Clips[0].LabelFontColor != "yellow" {
		t.Errorf("LabelFontColor = %q, want yellow", j.Clips[0].LabelFontColor)
	}
}

func TestParseLabelPosition(t *testing.T) {
	for _, p := range LabelPositions {
		got, ok := ParseLabelPosition(string(p))
		if !ok || got != p {
			t.Errorf("ParseLabelPosition(%q) = %q, %v", p, got, ok)
		}
	}
	if _, ok := ParseLabelPosition("Bottom_Left"); ok {
		t.Error("ParseLabelPosition accepted wrong case")
	}
}
