package clip

import (
	"path/filepath"
	"regexp"
)

// reservedChars matches characters that are not allowed in file names on
// common filesystems.
var reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces every reserved character with a hyphen.
func SanitizeFilename(name string) string {
	return reservedChars.ReplaceAllString(name, "-")
}

// OutputFilename derives a clip's file name from its label and the source
// file's extension, before sanitizing.
func OutputFilename(label, source string) string {
	return label + filepath.Ext(source)
}

// Destination returns the sanitized output path for a clip and whether the
// label had to be changed to produce it.
func Destination(outputDir, label, source string) (path string, renamed bool) {
	name := OutputFilename(label, source)
	safe := SanitizeFilename(name)
	return filepath.Join(outputDir, safe), safe != name
}
