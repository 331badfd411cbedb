package config

import (
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{EnvLogLevel, EnvLogFormat, EnvDataDir, EnvFFmpeg, EnvFontFile, EnvHistory} {
		t.Setenv(k, "")
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel(), DefaultLogLevel)
	}
	if cfg.LogFormat() != DefaultLogFormat {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat(), DefaultLogFormat)
	}
	if cfg.FFmpegBinary() != DefaultBinary {
		t.Errorf("FFmpegBinary = %q, want %q", cfg.FFmpegBinary(), DefaultBinary)
	}
	if cfg.FontFile() != "" {
		t.Errorf("FontFile = %q, want empty", cfg.FontFile())
	}
	if !cfg.HistoryEnabled() {
		t.Error("HistoryEnabled = false, want true")
	}
	if filepath.Base(cfg.DBPath()) != DBFilename {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
}

func TestNew_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvFFmpeg, "/opt/bin/ffmpeg")
	t.Setenv(EnvFontFile, "/fonts/mono.ttf")
	t.Setenv(EnvHistory, "false")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel())
	}
	if cfg.LogFormat() != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat())
	}
	if cfg.DBPath() != filepath.Join(dir, DBFilename) {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
	if cfg.FFmpegBinary() != "/opt/bin/ffmpeg" {
		t.Errorf("FFmpegBinary = %q", cfg.FFmpegBinary())
	}
	if cfg.FontFile() != "/fonts/mono.ttf" {
		t.Errorf("FontFile = %q", cfg.FontFile())
	}
	if cfg.HistoryEnabled() {
		t.Error("HistoryEnabled = true, want false")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvLogLevel, "loud"},
		{EnvLogFormat, "xml"},
		{EnvHistory, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := New(); err == nil {
				t.Errorf("New() with %s=%q: expected error", tt.key, tt.value)
			}
		})
	}
}
