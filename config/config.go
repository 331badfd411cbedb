// Package config provides tool settings for clipper.
// Settings are read from environment variables with sensible defaults; the
// job itself is described by the YAML job file, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Default values
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultBinary    = "ffmpeg"

	// Environment variable names
	EnvLogLevel  = "CLIPPER_LOG_LEVEL"
	EnvLogFormat = "CLIPPER_LOG_FORMAT"
	EnvDataDir   = "CLIPPER_DATA_DIR"
	EnvFFmpeg    = "CLIPPER_FFMPEG"
	EnvFontFile  = "CLIPPER_FONT_FILE"
	EnvHistory   = "CLIPPER_HISTORY"

	// Database filename
	DBFilename = "history.db"
)

// Config defines the settings the CLI needs.
type Config interface {
	LogLevel() string
	LogFormat() string
	DataDir() string
	DBPath() string
	FFmpegBinary() string
	FontFile() string
	HistoryEnabled() bool
}

// EnvConfig reads configuration from environment variables.
type EnvConfig struct {
	logLevel  string
	logFormat string
	dataDir   string
	binary    string
	fontFile  string
	history   bool
}

// New creates an EnvConfig with defaults and environment variable overrides.
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		logLevel:  DefaultLogLevel,
		logFormat: DefaultLogFormat,
		dataDir:   defaultDataDir(),
		binary:    DefaultBinary,
		history:   true,
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		switch strings.ToLower(ll) {
		case "debug", "info", "warn", "warning", "error":
			cfg.logLevel = strings.ToLower(ll)
		default:
			return nil, fmt.Errorf("invalid %s: %q (want debug, info, warn or error)", EnvLogLevel, ll)
		}
	}

	if lf := os.Getenv(EnvLogFormat); lf != "" {
		switch strings.ToLower(lf) {
		case "text", "json":
			cfg.logFormat = strings.ToLower(lf)
		default:
			return nil, fmt.Errorf("invalid %s: %q (want text or json)", EnvLogFormat, lf)
		}
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if b := os.Getenv(EnvFFmpeg); b != "" {
		cfg.binary = b
	}

	cfg.fontFile = os.Getenv(EnvFontFile)

	if h := os.Getenv(EnvHistory); h != "" {
		enabled, err := strconv.ParseBool(h)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvHistory, err)
		}
		cfg.history = enabled
	}

	return cfg, nil
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// LogFormat returns text or json.
func (c *EnvConfig) LogFormat() string {
	return c.logFormat
}

// DataDir returns the directory holding the run history.
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite history database.
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// FFmpegBinary returns the engine executable name or path.
func (c *EnvConfig) FFmpegBinary() string {
	return c.binary
}

// FontFile returns the label font override, or empty for the built-in default.
func (c *EnvConfig) FontFile() string {
	return c.fontFile
}

func (c *EnvConfig) HistoryEnabled() bool {
	return c.history
}

// defaultDataDir returns ~/.local/share/clipper, or a relative fallback
// when the home directory is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clipper"
	}
	return filepath.Join(home, ".local", "share", "clipper")
}
