package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// ParseTimecode parses HH:MM:SS[.frac], MM:SS[.frac] or raw seconds.
// Only used for display; timecodes are handed to ffmpeg untouched.
func ParseTimecode(timeStr string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	var total float64
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || v < 0 || (len(parts) > 1 && v >= 60) {
				return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
			}
			total = total*60 + v
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && v >= 60) {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		total = total*60 + float64(v)
	}
	return total, nil
}

// Span returns stop-start in seconds, or false when either side does not
// parse or the range is empty.
func Span(start, stop string) (float64, bool) {
	a, err := ParseTimecode(start)
	if err != nil {
		return 0, false
	}
	b, err := ParseTimecode(stop)
	if err != nil || b <= a {
		return 0, false
	}
	return b - a, true
}
