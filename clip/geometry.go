package clip

import (
	"fmt"

	"github.com/user/clipper/job"
)

const (
	// LabelMargin is the gap between the label box and the frame edges.
	LabelMargin = 5
	// TopAdjustment pushes top-anchored labels down so glyph ascenders are
	// not clipped by the frame edge.
	TopAdjustment = 5
)

// Coordinates is a drawtext x/y expression pair. The expressions use the
// drawtext variables w, h, text_w and text_h.
type Coordinates struct {
	X string
	Y string
}

// String renders the pair as drawtext options.
func (c Coordinates) String() string {
	return "x=" + c.X + ":y=" + c.Y
}

var (
	xLeft   = fmt.Sprintf("(%d)", LabelMargin)
	xMiddle = "(w-text_w)/2"
	xRight  = fmt.Sprintf("(w-(text_w+%d))", LabelMargin)
	yBottom = fmt.Sprintf("(h-(text_h+%d))", LabelMargin)
	yTop    = fmt.Sprintf("(%d+%d)", LabelMargin, TopAdjustment)
)

// ResolvePosition maps a label position to overlay coordinates. Positions
// the model cannot hold fall back to bottom middle.
func ResolvePosition(p job.LabelPosition) Coordinates {
	switch p {
	case job.BottomLeft:
		return Coordinates{X: xLeft, Y: yBottom}
	case job.BottomRight:
		return Coordinates{X: xRight, Y: yBottom}
	case job.TopLeft:
		return Coordinates{X: xLeft, Y: yTop}
	case job.TopMiddle:
		return Coordinates{X: xMiddle, Y: yTop}
	case job.TopRight:
		return Coordinates{X: xRight, Y: yTop}
	default:
		return Coordinates{X: xMiddle, Y: yBottom}
	}
}
