package clip

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/user/clipper/job"
)

// DefaultBinary is the engine executable looked up on PATH.
const DefaultBinary = "ffmpeg"

// EncodePreset is the fixed video re-encode profile applied to every clip.
var EncodePreset = []string{"-c:v", "libx265", "-crf", "20", "-preset", "slow"}

const (
	labelFontSize   = "(h/22)"
	labelBoxColor   = "Black@0.7"
	labelBoxBorderW = 3
)

// DefaultFontFile is the bold monospace font used for labels.
var DefaultFontFile = defaultFontFile()

func defaultFontFile() string {
	switch runtime.GOOS {
	case "windows":
		return "C:/Windows/Fonts/courbd.ttf"
	case "darwin":
		return "/System/Library/Fonts/Supplemental/Courier New Bold.ttf"
	default:
		return "/usr/share/fonts/truetype/msttcorefonts/courbd.ttf"
	}
}

// BuildOptions carries the engine-facing settings that are not part of a clip.
type BuildOptions struct {
	// Binary overrides DefaultBinary.
	Binary string
	// FontFile overrides DefaultFontFile.
	FontFile string
}

// CommandSpec is one engine invocation.
type CommandSpec struct {
	Binary string
	Args   []string
	// Filter is the -vf expression, empty when the label is not drawn.
	Filter string
}

// String renders the command for logs.
func (s CommandSpec) String() string {
	return s.Binary + " " + strings.Join(s.Args, " ")
}

// BuildCommand assembles the engine arguments that cut c to destination.
// It does not touch the filesystem.
func BuildCommand(c job.Clip, destination string, opts BuildOptions) CommandSpec {
	spec := CommandSpec{Binary: opts.Binary}
	if spec.Binary == "" {
		spec.Binary = DefaultBinary
	}

	args := make([]string, 0, 20)
	args = append(args, "-i", c.Source)
	args = append(args, "-ss", c.Start, "-to", c.Stop)

	if c.RemoveAudio {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", "copy")
	}

	args = append(args, EncodePreset...)

	if c.LabelDisplay {
		fontFile := opts.FontFile
		if fontFile == "" {
			fontFile = DefaultFontFile
		}
		spec.Filter = LabelFilter(c, fontFile)
		args = append(args, "-vf", spec.Filter)
	}

	args = append(args, "-y", destination)
	spec.Args = args
	return spec
}

// LabelFilter builds the drawtext filter graph that burns the clip label in.
func LabelFilter(c job.Clip, fontFile string) string {
	var b strings.Builder
	b.WriteString("[in]")
	b.WriteString("drawtext=")
	fmt.Fprintf(&b, "fontsize=%s:", labelFontSize)
	fmt.Fprintf(&b, "fontcolor=%s:", c.LabelFontColor)
	fmt.Fprintf(&b, "fontfile='%s':", escapeOption(fontFile))
	fmt.Fprintf(&b, "text='%s':", escapeText(c.Label))
	b.WriteString("box=1:")
	fmt.Fprintf(&b, "boxcolor=%s:", labelBoxColor)
	fmt.Fprintf(&b, "boxborderw=%d:", labelBoxBorderW)
	b.WriteString(ResolvePosition(c.LabelPosition).String())
	b.WriteString("[out]")
	return b.String()
}

// A quoted drawtext value passes through the graph parser, the option parser
// and, for text, drawtext's own expansion. Each level consumes one round of
// backslashes.
var (
	optionEscaper = strings.NewReplacer(
		`\`, `\\`,
		`'`, `'\\\''`,
		`:`, `\:`,
	)
	textEscaper = strings.NewReplacer(
		`\`, `\\\\`,
		`'`, `'\\\''`,
		`:`, `\:`,
		`%`, `\\%`,
	)
)

func escapeOption(s string) string {
	return optionEscaper.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
