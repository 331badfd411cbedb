// Package job holds the batch-job model and the loader that builds it from a
// YAML job file.
package job

// DefaultLabelColor is the label font colour used when the job file sets none.
const DefaultLabelColor = "#32b1ac"

// LabelPosition is the corner or edge a clip label is anchored to.
type LabelPosition string

const (
	BottomLeft   LabelPosition = "bottom_left"
	BottomMiddle LabelPosition = "bottom_middle"
	BottomRight  LabelPosition = "bottom_right"
	TopLeft      LabelPosition = "top_left"
	TopMiddle    LabelPosition = "top_middle"
	TopRight     LabelPosition = "top_right"
)

// LabelPositions lists every recognised position in document order of the
// job file reference.
var LabelPositions = []LabelPosition{
	BottomLeft, BottomMiddle, BottomRight,
	TopLeft, TopMiddle, TopRight,
}

// ParseLabelPosition maps a job-file symbol to a LabelPosition.
func ParseLabelPosition(s string) (LabelPosition, bool) {
	for _, p := range LabelPositions {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// IsTop reports whether the label is anchored to the top edge.
func (p LabelPosition) IsTop() bool {
	return p == TopLeft || p == TopMiddle || p == TopRight
}

// Job is one execution unit: an output directory and an ordered clip list.
// It is built once by Load and not modified afterwards.
type Job struct {
	OutputDirectory   string
	DefaultLabelColor string
	Clips             []Clip
}

// Clip describes one source-to-output trim with an optional burned-in label.
type Clip struct {
	// Index is the zero-based position in the job file's clips sequence.
	Index          int
	Source         string
	Label          string
	Start          string
	Stop           string
	RemoveAudio    bool
	LabelPosition  LabelPosition
	LabelDisplay   bool
	LabelFontColor string
}

// newClip returns a clip carrying the per-clip defaults.
func newClip(index int, defaultColor string) Clip {
	return Clip{
		Index:          index,
		LabelPosition:  BottomMiddle,
		LabelDisplay:   true,
		LabelFontColor: defaultColor,
	}
}
