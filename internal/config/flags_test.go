package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseFlags_NoArgsKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	def := DefaultConfig()
	if cfg.Pattern != def.Pattern || cfg.Offset != def.Offset || cfg.FrameDelta != def.FrameDelta || cfg.Prefix != def.Prefix {
		t.Errorf("correction defaults changed: %q %s %q %q", cfg.Pattern, cfg.Offset, cfg.FrameDelta, cfg.Prefix)
	}
	if !slices.Equal(cfg.MetadataFields, def.MetadataFields) {
		t.Errorf("MetadataFields = %v, want %v", cfg.MetadataFields, def.MetadataFields)
	}
	if cfg.DateStyle != def.DateStyle {
		t.Errorf("DateStyle = %q, want %q", cfg.DateStyle, def.DateStyle)
	}
	if !cfg.SkipExisting {
		t.Error("SkipExisting should default to true")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("ColorMode = %q, want auto", cfg.ColorMode)
	}
	if cfg.Dir == "" {
		t.Error("Dir is empty")
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{
		"-g", "C*.MP4",
		"--offset", "1m35s",
		"--frame-delta", "24",
		"--prefix", "SYNC_",
		"--date-style", "touch",
		"--date-tag", "CreateDate",
		"--force",
		"--dry-run",
		"--no-color",
		"-v",
		"--journal", filepath.Join(dir, "journal.db"),
		dir + "/",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"pattern", cfg.Pattern, "C*.MP4"},
		{"offset", cfg.Offset, 95 * time.Second},
		{"frame delta", cfg.FrameDelta, "24"},
		{"prefix", cfg.Prefix, "SYNC_"},
		{"date style", cfg.DateStyle, DateStyleTouch},
		{"date tag", cfg.DateTag, "CreateDate"},
		{"force clears SkipExisting", cfg.SkipExisting, false},
		{"dry run", cfg.DryRun, true},
		{"verbose", cfg.Verbose, true},
		{"no-color", cfg.ColorMode, ColorNever},
		{"journal", cfg.Journal, filepath.Join(dir, "journal.db")},
		{"dir trailing slash", cfg.Dir, dir},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseFlags_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--encoder", "vaapi"}},
		{"bad duration", []string{"--offset", "eighteen"}},
		{"bad date style", []string{"--date-style", "powershell"}},
		{"bad color", []string{"--color", "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := ParseFlags(&cfg, "test", tt.args); err == nil {
				t.Errorf("ParseFlags(%v): want error", tt.args)
			}
			if cfg.Offset != DefaultConfig().Offset {
				t.Errorf("cfg must be untouched on error, Offset = %s", cfg.Offset)
			}
		})
	}
}

func TestParseFlags_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcsync.yaml")
	content := strings.Join([]string{
		"offset: 1m35s",
		`frame_delta: "24"`,
		"prefix: SYNC_",
		"force: true",
		"unrelated: ignored",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--config", path, "--prefix", "CLI_"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	if cfg.Offset != 95*time.Second {
		t.Errorf("Offset = %s, want 1m35s from the settings file", cfg.Offset)
	}
	if cfg.FrameDelta != "24" {
		t.Errorf("FrameDelta = %q, want 24", cfg.FrameDelta)
	}
	if cfg.Prefix != "CLI_" {
		t.Errorf("Prefix = %q, want CLI_ (explicit flags win over the settings file)", cfg.Prefix)
	}
	if cfg.SkipExisting {
		t.Error("force: true in the settings file should clear SkipExisting")
	}
}

func TestLoadYAML_EmptyAndInvalid(t *testing.T) {
	if _, err := LoadYAML(strings.NewReader("")); err != nil {
		t.Errorf("empty settings file: %v", err)
	}
	if _, err := LoadYAML(strings.NewReader("offset: [unterminated")); err == nil {
		t.Error("invalid YAML: want error")
	}
}
