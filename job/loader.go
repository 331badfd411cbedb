package job

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions controls how a job file is turned into a Job.
type LoadOptions struct {
	// BaseDir resolves relative output_directory and source paths.
	// Empty means the process working directory.
	BaseDir string
	// Logger receives every diagnostic at warn level. Nil discards them.
	Logger *slog.Logger
}

// LoadFile reads and loads the job file at path.
func LoadFile(path string, opts LoadOptions) (*Job, []Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read job file: %w", err)
	}
	return Load(bytes.NewReader(data), opts)
}

// Load parses a YAML job file and decodes it into a Job. Non-fatal problems
// are returned as diagnostics in document order; the first fatal problem is
// returned as a *ConfigError. The output directory is created only after the
// whole document decoded cleanly.
func Load(r io.Reader, opts LoadOptions) (*Job, []Diagnostic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read job file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, &ConfigError{Clip: -1, Msg: "invalid YAML", Err: err}
	}
	return Decode(&root, opts)
}

// Decode builds a Job from an already parsed YAML tree.
func Decode(root *yaml.Node, opts LoadOptions) (*Job, []Diagnostic, error) {
	d := &decoder{
		opts:         opts,
		defaultColor: DefaultLabelColor,
	}

	j, err := d.decodeJob(root)
	if err != nil {
		return nil, d.diags, err
	}

	if err := ensureDir(j.OutputDirectory); err != nil {
		return nil, d.diags, &ConfigError{
			Field: "output_directory",
			Clip:  -1,
			Msg:   "cannot create directory",
			Err:   err,
		}
	}
	return j, d.diags, nil
}

// decoder carries the state accumulated while walking one document: the
// diagnostics so far and the label colour that new clips inherit.
type decoder struct {
	opts         LoadOptions
	defaultColor string
	diags        []Diagnostic
}

func (d *decoder) warn(diag Diagnostic) {
	d.diags = append(d.diags, diag)
	if d.opts.Logger != nil {
		d.opts.Logger.Warn(diag.Msg,
			"line", diag.Line,
			"clip", diag.Clip,
			"label", diag.Label,
			"field", diag.Field,
		)
	}
}

func (d *decoder) path(p string) string {
	if d.opts.BaseDir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(d.opts.BaseDir, p)
	}
	return filepath.Clean(p)
}

func (d *decoder) decodeJob(root *yaml.Node) (*Job, error) {
	doc := resolve(root)
	if doc == nil || doc.Kind == yaml.DocumentNode && len(doc.Content) == 0 {
		return nil, &ConfigError{Clip: -1, Msg: "document is empty; expected a mapping"}
	}
	if doc.Kind == yaml.DocumentNode {
		doc = resolve(doc.Content[0])
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &ConfigError{Clip: -1, Line: doc.Line, Msg: "document root must be a mapping"}
	}

	j := &Job{}
	outputSet := false

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], resolve(doc.Content[i+1])
		switch key.Value {
		case "output_directory":
			s, err := requireString(val, key.Value, -1, "")
			if err != nil {
				return nil, err
			}
			j.OutputDirectory = d.path(s)
			outputSet = true
		case "label_font_color":
			s, err := requireString(val, key.Value, -1, "")
			if err != nil {
				return nil, err
			}
			d.defaultColor = s
		case "clips":
			clips, err := d.decodeClips(val)
			if err != nil {
				return nil, err
			}
			j.Clips = append(j.Clips, clips...)
		default:
			d.warn(Diagnostic{Line: key.Line, Clip: -1, Field: key.Value, Msg: "unrecognized key, ignored"})
		}
	}

	if !outputSet {
		return nil, &ConfigError{Field: "output_directory", Clip: -1, Line: doc.Line, Msg: "required key is missing"}
	}
	j.DefaultLabelColor = d.defaultColor
	if j.Clips == nil {
		j.Clips = []Clip{}
	}
	return j, nil
}

func (d *decoder) decodeClips(val *yaml.Node) ([]Clip, error) {
	if isNull(val) {
		return nil, nil
	}
	if val.Kind != yaml.SequenceNode {
		return nil, &ConfigError{Field: "clips", Clip: -1, Line: val.Line, Msg: "must be a sequence of mappings"}
	}

	clips := make([]Clip, 0, len(val.Content))
	for _, item := range val.Content {
		c, err := d.decodeClip(resolve(item), len(clips))
		if err != nil {
			return nil, err
		}
		clips = append(clips, c)
	}
	return clips, nil
}

// clipField decodes one recognised clip key into c.
type clipField func(d *decoder, c *Clip, key, val *yaml.Node) error

var clipFields = map[string]clipField{
	"label":            decodeLabel,
	"source":           decodeSource,
	"start":            decodeStart,
	"stop":             decodeStop,
	"remove_audio":     decodeRemoveAudio,
	"label_position":   decodeLabelPosition,
	"label_display":    decodeLabelDisplay,
	"label_font_color": decodeLabelFontColor,
}

var requiredClipFields = []string{"label", "source", "start", "stop"}

func (d *decoder) decodeClip(n *yaml.Node, index int) (Clip, error) {
	if n.Kind != yaml.MappingNode {
		return Clip{}, &ConfigError{Field: "clips", Clip: index, Line: n.Line, Msg: "clip must be a mapping"}
	}

	c := newClip(index, d.defaultColor)
	// The label is looked up first so every diagnostic for this clip can
	// name it, wherever the key sits in the mapping.
	c.Label = peekLabel(n)

	seen := make(map[string]bool, len(clipFields))
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolve(n.Content[i+1])
		fn, ok := clipFields[key.Value]
		if !ok {
			d.warn(Diagnostic{Line: key.Line, Clip: index, Label: c.Label, Field: key.Value, Msg: "unrecognized key, ignored"})
			continue
		}
		if err := fn(d, &c, key, val); err != nil {
			return Clip{}, err
		}
		seen[key.Value] = true
	}

	for _, f := range requiredClipFields {
		if !seen[f] {
			return Clip{}, &ConfigError{Field: f, Clip: index, Label: c.Label, Line: n.Line, Msg: "required key is missing"}
		}
	}
	return c, nil
}

func decodeLabel(_ *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireString(val, key.Value, c.Index, "")
	if err != nil {
		return err
	}
	if s == "" {
		return &ConfigError{Field: key.Value, Clip: c.Index, Line: val.Line, Msg: "cannot be empty"}
	}
	c.Label = s
	return nil
}

func decodeSource(d *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireString(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	if s == "" {
		return &ConfigError{Field: key.Value, Clip: c.Index, Label: c.Label, Line: val.Line, Msg: "cannot be empty"}
	}
	c.Source = d.path(s)
	if info, err := os.Stat(c.Source); err != nil || !info.Mode().IsRegular() {
		d.warn(Diagnostic{Line: val.Line, Clip: c.Index, Label: c.Label, Field: key.Value, Msg: "source file not found: " + c.Source})
	}
	return nil
}

func decodeStart(_ *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireTimecode(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	c.Start = s
	return nil
}

func decodeStop(_ *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireTimecode(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	c.Stop = s
	return nil
}

func decodeRemoveAudio(_ *decoder, c *Clip, key, val *yaml.Node) error {
	b, err := requireBool(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	c.RemoveAudio = b
	return nil
}

func decodeLabelDisplay(_ *decoder, c *Clip, key, val *yaml.Node) error {
	b, err := requireBool(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	c.LabelDisplay = b
	return nil
}

func decodeLabelPosition(d *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireString(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	p, ok := ParseLabelPosition(s)
	if !ok {
		d.warn(Diagnostic{
			Line:  val.Line,
			Clip:  c.Index,
			Label: c.Label,
			Field: key.Value,
			Msg:   fmt.Sprintf("unrecognized label position %q, keeping %s", s, c.LabelPosition),
		})
		return nil
	}
	c.LabelPosition = p
	return nil
}

func decodeLabelFontColor(_ *decoder, c *Clip, key, val *yaml.Node) error {
	s, err := requireString(val, key.Value, c.Index, c.Label)
	if err != nil {
		return err
	}
	c.LabelFontColor = s
	return nil
}

func peekLabel(n *yaml.Node) string {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "label" {
			continue
		}
		if v := resolve(n.Content[i+1]); v.Kind == yaml.ScalarNode && v.ShortTag() == "!!str" {
			return v.Value
		}
	}
	return ""
}

func requireString(n *yaml.Node, field string, clip int, label string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", &ConfigError{Field: field, Clip: clip, Label: label, Line: n.Line, Msg: "must be a string"}
	}
	return n.Value, nil
}

// requireTimecode accepts a string, or a bare number for fractional-seconds
// timecodes, and returns the literal text so it reaches ffmpeg verbatim.
func requireTimecode(n *yaml.Node, field string, clip int, label string) (string, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!str", "!!int", "!!float":
			if n.Value == "" {
				return "", &ConfigError{Field: field, Clip: clip, Label: label, Line: n.Line, Msg: "cannot be empty"}
			}
			return n.Value, nil
		}
	}
	return "", &ConfigError{Field: field, Clip: clip, Label: label, Line: n.Line, Msg: "must be a timecode string"}
}

func requireBool(n *yaml.Node, field string, clip int, label string) (bool, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return false, &ConfigError{Field: field, Clip: clip, Label: label, Line: n.Line, Msg: "must be boolean true or false"}
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, &ConfigError{Field: field, Clip: clip, Label: label, Line: n.Line, Msg: "must be boolean true or false", Err: err}
	}
	return b, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
