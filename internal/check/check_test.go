package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/backmassage/tcsync/internal/config"
)

type mockLogger struct {
	lines []string
}

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("SUCCESS", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }
func (m *mockLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		m.add("DEBUG", f, a...)
	}
}

func (m *mockLogger) contains(s string) bool {
	for _, l := range m.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// fakeTools makes every name in present resolvable and answers version
// queries with a canned line.
func fakeTools(t *testing.T, present ...string) {
	t.Helper()
	origLook, origOut := lookPath, toolOutput
	t.Cleanup(func() { lookPath, toolOutput = origLook, origOut })

	lookPath = func(name string) (string, error) {
		for _, p := range present {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	toolOutput = func(name string, args ...string) ([]byte, error) {
		return []byte(name + " version 1.0\nmore\n"), nil
	}
}

func touchCfg() *config.Config {
	cfg := config.DefaultConfig()
	cfg.DateStyle = config.DateStyleTouch
	cfg.DateToolPath = "touch"
	return &cfg
}

func TestCheckDeps(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    error
	}{
		{"all present", []string{"exiftool", "ffmpeg", "touch"}, nil},
		{"no exiftool", []string{"ffmpeg", "touch"}, ErrExifToolNotFound},
		{"no ffmpeg", []string{"exiftool", "touch"}, ErrFfmpegNotFound},
		{"no date tool", []string{"exiftool", "ffmpeg"}, ErrDateToolNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeTools(t, tt.present...)
			err := CheckDeps(touchCfg())
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckDeps: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckDeps = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCheck_AllFound(t *testing.T) {
	fakeTools(t, "exiftool", "ffmpeg", "touch")
	log := &mockLogger{}

	if !RunCheck(touchCfg(), log) {
		t.Fatalf("RunCheck reported a miss: %v", log.lines)
	}
	if !log.contains("SUCCESS exiftool: /usr/bin/exiftool version 1.0") {
		t.Errorf("missing exiftool version line: %v", log.lines)
	}
	if !log.contains("SUCCESS touch: /usr/bin/touch") {
		t.Errorf("missing date tool line: %v", log.lines)
	}
}

func TestRunCheck_ReportsMissing(t *testing.T) {
	fakeTools(t, "exiftool", "touch")
	log := &mockLogger{}

	if RunCheck(touchCfg(), log) {
		t.Error("RunCheck = true with ffmpeg missing")
	}
	if !log.contains("ERROR ffmpeg not found") {
		t.Errorf("missing error line: %v", log.lines)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine([]byte("  13.10\n")); got != "13.10" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine([]byte("ffmpeg version 7.0\nbuilt with gcc\n")); got != "ffmpeg version 7.0" {
		t.Errorf("firstLine = %q", got)
	}
}
