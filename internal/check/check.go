// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for exiftool, ffmpeg and the host's
// file date tool.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/tcsync/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrExifToolNotFound = errors.New("exiftool not found on PATH")
	ErrFfmpegNotFound   = errors.New("ffmpeg not found on PATH")
	ErrDateToolNotFound = errors.New("file date tool not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Replaced in tests.
var (
	lookPath   = exec.LookPath
	toolOutput = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
)

// tool describes one required executable.
type tool struct {
	name        string
	path        string
	versionArgs []string // nil when the tool has no version flag
	missing     error
}

func tools(cfg *config.Config) []tool {
	return []tool{
		{"exiftool", cfg.ExifToolPath, []string{"-ver"}, ErrExifToolNotFound},
		{"ffmpeg", cfg.FFmpegPath, []string{"-version"}, ErrFfmpegNotFound},
		{string(cfg.DateStyle), cfg.DateToolPath, nil, ErrDateToolNotFound},
	}
}

// CheckDeps is the pre-pipeline validation: it verifies that every
// configured tool resolves. Returns a sentinel error on the first miss.
func CheckDeps(cfg *config.Config) error {
	for _, t := range tools(cfg) {
		if _, err := lookPath(t.path); err != nil {
			return fmt.Errorf("%w: %s", t.missing, t.path)
		}
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints where each tool was
// found and its version line. Reports whether all tools were found.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := true
	for _, t := range tools(cfg) {
		if !checkTool(log, t) {
			ok = false
		}
	}
	log.Info("Date style: %s", cfg.DateStyle)
	return ok
}

// checkTool verifies t is on PATH and logs its version string.
func checkTool(log Logger, t tool) bool {
	resolved, err := lookPath(t.path)
	if err != nil {
		log.Error("%s not found (%s)", t.name, t.path)
		return false
	}
	if t.versionArgs == nil {
		log.Success("%s: %s", t.name, resolved)
		return true
	}

	out, err := toolOutput(resolved, t.versionArgs...)
	if err != nil {
		log.Warn("%s found at %s but %s failed: %v", t.name, resolved, strings.Join(t.versionArgs, " "), err)
		return true
	}
	log.Success("%s: %s (%s)", t.name, firstLine(out), resolved)
	return true
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
