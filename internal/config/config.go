// Package config holds runtime configuration: defaults, CLI flag parsing,
// the optional YAML settings file, and validation. Running with no flags
// reproduces the fixed values the correction workflow was built around.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// DateStyle selects the convention used to stamp filesystem dates on the
// corrected output.
type DateStyle string

const (
	DateStyleSetFile DateStyle = "setfile" // macOS SetFile -d / -m (default on darwin).
	DateStyleTouch   DateStyle = "touch"   // POSIX touch -a / -m (default elsewhere).
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// MaxOffset is the exclusive upper bound for Offset. Corrections only move
// a clip's clock backwards within a single day.
const MaxOffset = 24 * time.Hour

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [ParseFlags], checked by [Config.Validate], and then passed by
// pointer to the packages that need it. Nothing mutates it after validation.
type Config struct {
	// Input selection.
	Dir     string // Default: ".".
	Pattern string // Default: "MVI_*.MOV". Matched against base names only.

	// Correction.
	Offset     time.Duration // Default: 18s. Subtracted from the capture time.
	FrameDelta string        // Default: "00". Frame field of the written timecode.
	Prefix     string        // Default: "TC_". Prepended to output file names.

	// Metadata read from each clip.
	DateTag        string   // Default: "SubSecCreateDate".
	MetadataFields []string // Default: Duration, SubSecCreateDate.

	// External tools.
	ExifToolPath string    // Default: "exiftool".
	FFmpegPath   string    // Default: "ffmpeg".
	DateToolPath string    // Default: "SetFile" on darwin, "touch" elsewhere.
	DateStyle    DateStyle // Default follows the host OS.

	// Behavior flags.
	SkipExisting bool // Default: true. Cleared by --force.
	DryRun       bool
	Progress     bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	Journal   string    // Optional journal database of per-clip outcomes.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config holding the stock correction values. Used
// as the base before [ParseFlags] applies the settings file and CLI overrides.
func DefaultConfig() Config {
	style, tool := hostDateTool(runtime.GOOS)
	return Config{
		Dir:            ".",
		Pattern:        "MVI_*.MOV",
		Offset:         18 * time.Second,
		FrameDelta:     "00",
		Prefix:         "TC_",
		DateTag:        "SubSecCreateDate",
		MetadataFields: []string{"Duration", "SubSecCreateDate"},
		ExifToolPath:   "exiftool",
		FFmpegPath:     "ffmpeg",
		DateToolPath:   tool,
		DateStyle:      style,
		SkipExisting:   true,
		ColorMode:      ColorAuto,
	}
}

// hostDateTool returns the date stamping convention native to goos.
func hostDateTool(goos string) (DateStyle, string) {
	if goos == "darwin" {
		return DateStyleSetFile, "SetFile"
	}
	return DateStyleTouch, "touch"
}

// Fields returns the exiftool tags to request for each clip: the configured
// metadata fields followed by DateTag when it is not already listed.
func (c *Config) Fields() []string {
	fields := slices.Clone(c.MetadataFields)
	if !slices.Contains(fields, c.DateTag) {
		fields = append(fields, c.DateTag)
	}
	return fields
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, the correction constants, and the glob
// pattern. Paths to tools are not resolved here; see check.CheckDeps.
func (c *Config) Validate() error {
	switch c.DateStyle {
	case DateStyleSetFile, DateStyleTouch:
		// valid
	default:
		return errors.New("invalid date style (use 'setfile' or 'touch')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Offset < 0 || c.Offset >= MaxOffset {
		return fmt.Errorf("offset %s out of range (must be at least 0 and under 24h)", c.Offset)
	}
	if err := validateFrameDelta(c.FrameDelta); err != nil {
		return err
	}
	if c.Prefix == "" {
		return errors.New("prefix must not be empty (output would overwrite the input)")
	}
	if strings.ContainsRune(c.Prefix, filepath.Separator) {
		return fmt.Errorf("prefix %q must not contain a path separator", c.Prefix)
	}
	if c.DateTag == "" {
		return errors.New("date tag must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.Pattern == "" {
		return errors.New("file pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid file pattern %q: %w", c.Pattern, err)
	}
	if c.Dir == "" {
		return errors.New("need a directory to scan")
	}
	return nil
}

// validateFrameDelta requires exactly two decimal digits, the frame field of
// an HH:MM:SS:FF timecode.
func validateFrameDelta(s string) error {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return fmt.Errorf("invalid frame delta %q (use two digits, e.g. 00 or 24)", s)
	}
	return nil
}
