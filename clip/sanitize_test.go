package clip

import (
	"path/filepath"
	"strings"
	"testing"
)

const reserved = `<>:"/\|?*`

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ex1.mp4", "Ex1.mp4"},
		{"Ex:1.mp4", "Ex-1.mp4"},
		{`a<b>c:d"e/f\g|h?i*j`, "a-b-c-d-e-f-g-h-i-j"},
		{"Ex. 192 A.mov", "Ex. 192 A.mov"},
		{"", ""},
		{"::", "--"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename_PrintableASCII(t *testing.T) {
	var all strings.Builder
	for r := rune(0x20); r < 0x7f; r++ {
		all.WriteRune(r)
	}
	in := all.String()

	once := SanitizeFilename(in)
	if strings.ContainsAny(once, reserved) {
		t.Errorf("SanitizeFilename left reserved characters: %q", once)
	}
	if len(once) != len(in) {
		t.Errorf("length changed: %d -> %d", len(in), len(once))
	}
	if twice := SanitizeFilename(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}

	var clean strings.Builder
	for _, r := range in {
		if !strings.ContainsRune(reserved, r) {
			clean.WriteRune(r)
		}
	}
	if got := SanitizeFilename(clean.String()); got != clean.String() {
		t.Errorf("clean input changed: %q -> %q", clean.String(), got)
	}
}

func TestDestination(t *testing.T) {
	dir := t.TempDir()

	got, renamed := Destination(dir, "Ex1", "/videos/a.mp4")
	if got != filepath.Join(dir, "Ex1.mp4") || renamed {
		t.Errorf("Destination = %q, %v", got, renamed)
	}

	got, renamed = Destination(dir, "Ex:1", "/videos/a.mp4")
	if got != filepath.Join(dir, "Ex-1.mp4") || !renamed {
		t.Errorf("Destination = %q, %v", got, renamed)
	}

	got, _ = Destination(dir, "Ex 3/4", "clip.mkv")
	if filepath.Dir(got) != dir {
		t.Errorf("label with slash escaped the output directory: %q", got)
	}
}
