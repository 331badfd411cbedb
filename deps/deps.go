package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// CheckFfmpeg checks that the ffmpeg binary (a name looked up on PATH, or a
// path) is available and returns its resolved location.
func CheckFfmpeg(binary string) (string, error) {
	if binary == "" {
		binary = "ffmpeg"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &DependencyError{
			Name:       binary,
			InstallURL: FfmpegInstallURL,
			Err:        err,
		}
	}
	return path, nil
}

// FfmpegVersion runs `<binary> -version` and returns the first output line.
func FfmpegVersion(ctx context.Context, binary string) (string, error) {
	path, err := CheckFfmpeg(binary)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("%s -version: %w", binary, err)
	}
	line, _, _ := bufio.NewReader(bytes.NewReader(out)).ReadLine()
	return string(line), nil
}
