package clip

import (
	"regexp"
	"testing"

	"github.com/user/clipper/job"
)

func TestResolvePosition_Table(t *testing.T) {
	tests := []struct {
		pos  job.LabelPosition
		want string
	}{
		{job.BottomLeft, "x=(5):y=(h-(text_h+5))"},
		{job.BottomMiddle, "x=(w-text_w)/2:y=(h-(text_h+5))"},
		{job.BottomRight, "x=(w-(text_w+5)):y=(h-(text_h+5))"},
		{job.TopLeft, "x=(5):y=(5+5)"},
		{job.TopMiddle, "x=(w-text_w)/2:y=(5+5)"},
		{job.TopRight, "x=(w-(text_w+5)):y=(5+5)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			if got := ResolvePosition(tt.pos).String(); got != tt.want {
				t.Errorf("ResolvePosition(%s) = %q, want %q", tt.pos, got, tt.want)
			}
		})
	}
}

var wellFormed = regexp.MustCompile(`^[()0-9a-z_+\-/]+$`)

func TestResolvePosition_DistinctAndWellFormed(t *testing.T) {
	seen := make(map[Coordinates]job.LabelPosition)
	for _, p := range job.LabelPositions {
		c := ResolvePosition(p)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s resolve to the same coordinates %v", prev, p, c)
		}
		seen[c] = p

		for _, expr := range []string{c.X, c.Y} {
			if !wellFormed.MatchString(expr) || !balanced(expr) {
				t.Errorf("%s: malformed expression %q", p, expr)
			}
		}
	}
}

func TestResolvePosition_TopAndBottomAnchors(t *testing.T) {
	for _, p := range job.LabelPositions {
		y := ResolvePosition(p).Y
		if p.IsTop() {
			for _, b := range job.LabelPositions {
				if !b.IsTop() && ResolvePosition(b).Y == y {
					t.Errorf("%s shares vertical anchor %q with %s", p, y, b)
				}
			}
			if regexp.MustCompile(`\bh\b`).MatchString(y) {
				t.Errorf("%s: top anchor %q refers to frame height", p, y)
			}
		}
	}
}

func TestResolvePosition_UnknownFallsBack(t *testing.T) {
	if got, want := ResolvePosition("middle"), ResolvePosition(job.BottomMiddle); got != want {
		t.Errorf("ResolvePosition(unknown) = %v, want %v", got, want)
	}
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
