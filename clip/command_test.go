package clip

import (
	"reflect"
	"strings"
	"testing"

	"github.com/user/clipper/job"
)

func testClip() job.Clip {
	return job.Clip{
		Source:         "a.mp4",
		Label:          "Ex1",
		Start:          "00:00:00",
		Stop:           "00:00:05",
		LabelPosition:  job.BottomMiddle,
		LabelDisplay:   true,
		LabelFontColor: "#32b1ac",
	}
}

func TestBuildCommand_WithLabel(t *testing.T) {
	spec := BuildCommand(testClip(), "out/Ex1.mp4", BuildOptions{FontFile: "/fonts/courbd.ttf"})

	wantFilter := "[in]drawtext=fontsize=(h/22):fontcolor=#32b1ac:fontfile='/fonts/courbd.ttf':" +
		"text='Ex1':box=1:boxcolor=Black@0.7:boxborderw=3:x=(w-text_w)/2:y=(h-(text_h+5))[out]"
	want := []string{
		"-i", "a.mp4",
		"-ss", "00:00:00", "-to", "00:00:05",
		"-c:a", "copy",
		"-c:v", "libx265", "-crf", "20", "-preset", "slow",
		"-vf", wantFilter,
		"-y", "out/Ex1.mp4",
	}

	if spec.Binary != DefaultBinary {
		t.Errorf("Binary = %q, want %q", spec.Binary, DefaultBinary)
	}
	if spec.Filter != wantFilter {
		t.Errorf("Filter =\n  %s\nwant\n  %s", spec.Filter, wantFilter)
	}
	if !reflect.DeepEqual(spec.Args, want) {
		t.Errorf("Args =\n  %q\nwant\n  %q", spec.Args, want)
	}
}

func TestBuildCommand_NoLabel(t *testing.T) {
	c := testClip()
	c.LabelDisplay = false

	spec := BuildCommand(c, "out/Ex1.mp4", BuildOptions{Binary: "/opt/ffmpeg"})
	if spec.Binary != "/opt/ffmpeg" {
		t.Errorf("Binary = %q", spec.Binary)
	}
	if spec.Filter != "" {
		t.Errorf("Filter = %q, want empty", spec.Filter)
	}
	for _, a := range spec.Args {
		if a == "-vf" {
			t.Fatalf("Args contain -vf: %q", spec.Args)
		}
	}
	if last := spec.Args[len(spec.Args)-1]; last != "out/Ex1.mp4" {
		t.Errorf("last arg = %q, want destination", last)
	}
}

func TestBuildCommand_RemoveAudio(t *testing.T) {
	c := testClip()
	c.RemoveAudio = true

	args := BuildCommand(c, "o.mp4", BuildOptions{}).Args
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, " -an ") {
		t.Errorf("Args %q missing -an", args)
	}
	if strings.Contains(joined, "-c:a") {
		t.Errorf("Args %q still copy audio", args)
	}
}

func TestBuildCommand_DefaultFont(t *testing.T) {
	spec := BuildCommand(testClip(), "o.mp4", BuildOptions{})
	if !strings.Contains(spec.Filter, "fontfile='"+escapeOption(DefaultFontFile)+"'") {
		t.Errorf("Filter %q does not use the default font", spec.Filter)
	}
}

func TestBuildCommand_PositionAndColor(t *testing.T) {
	c := testClip()
	c.LabelPosition = job.TopLeft
	c.LabelFontColor = "yellow"

	f := BuildCommand(c, "o.mp4", BuildOptions{FontFile: "f.ttf"}).Filter
	if !strings.HasSuffix(f, "x=(5):y=(5+5)[out]") {
		t.Errorf("Filter %q not anchored top left", f)
	}
	if !strings.Contains(f, "fontcolor=yellow:") {
		t.Errorf("Filter %q missing colour", f)
	}
	if !strings.HasPrefix(f, "[in]drawtext=") {
		t.Errorf("Filter %q missing input pad", f)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ex. 192 A", "Ex. 192 A"},
		{"Ex:1", `Ex\:1`},
		{"50%", `50\\%`},
		{`a\b`, `a\\\\b`},
		{"it's", `it'\\\''s`},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeOption(t *testing.T) {
	if got, want := escapeOption("C:/Windows/Fonts/courbd.ttf"), `C\:/Windows/Fonts/courbd.ttf`; got != want {
		t.Errorf("escapeOption = %q, want %q", got, want)
	}
}
