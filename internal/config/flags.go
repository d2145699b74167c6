package config

// This file implements CLI flag parsing with kong. Flag defaults are
// interpolated from DefaultConfig so the two cannot drift, and values from
// a YAML settings file sit between the defaults and the command line.

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
)

// SettingsFiles are read in order when present; later files and explicit
// flags take precedence. A file passed with --config is read last.
var SettingsFiles = []string{
	"~/.config/tcsync/config.yaml",
	".tcsync.yaml",
}

// cli is the kong grammar. Field names map to --kebab-case flags.
type cli struct {
	Dir string `arg:"" optional:"" default:"${dir}" type:"path" help:"Directory containing the clips (default: current directory)."`

	Pattern    string        `short:"g" default:"${pattern}" help:"Glob selecting input clips by name."`
	Offset     time.Duration `short:"o" default:"${offset}" help:"Offset subtracted from each clip's capture time (e.g. 18s, 1m35s)."`
	FrameDelta string        `name:"frame-delta" default:"${frame_delta}" help:"Frame field written into the HH:MM:SS:FF timecode."`
	Prefix     string        `default:"${prefix}" help:"Prefix for corrected output files."`

	DateTag string   `name:"date-tag" default:"${date_tag}" help:"Metadata tag holding the capture time."`
	Fields  []string `sep:"," default:"${fields}" help:"Additional tags requested from exiftool."`

	ExifTool  string `name:"exiftool" default:"${exiftool}" help:"exiftool executable."`
	FFmpeg    string `name:"ffmpeg" default:"${ffmpeg}" help:"ffmpeg executable."`
	DateTool  string `name:"date-tool" default:"${date_tool}" help:"Executable used to stamp file dates."`
	DateStyle string `name:"date-style" enum:"setfile,touch" default:"${date_style}" help:"Date stamping convention: setfile | touch."`

	Force    bool `short:"f" help:"Overwrite existing output files."`
	DryRun   bool `short:"n" name:"dry-run" help:"Print the commands without running them."`
	Progress bool `help:"Show a progress bar while processing."`

	Color   string `enum:"auto,always,never" default:"auto" help:"Colored logs: auto | always | never."`
	NoColor bool   `name:"no-color" help:"Same as --color=never."`
	Verbose bool   `short:"v" help:"Verbose output (tool stderr, debug lines)."`
	Log     string `short:"l" type:"path" help:"Append logs to file."`
	Journal string `short:"j" type:"path" help:"Record each clip's outcome in a journal database."`
	Check   bool   `short:"c" help:"Run system diagnostics and exit."`

	Config  kong.ConfigFlag  `help:"Load settings from a YAML file." placeholder:"PATH"`
	Version kong.VersionFlag `short:"V" help:"Print version and exit."`
}

// newParser builds the kong parser seeded with cfg's values as defaults.
func newParser(cfg *Config, version string, opts ...kong.Option) (*kong.Kong, *cli, error) {
	var c cli
	base := []kong.Option{
		kong.Name("tcsync"),
		kong.Description("Rewrite clip timecode and creation dates from capture metadata, shifted by a fixed offset."),
		kong.Vars{
			"version":     "tcsync v" + version,
			"dir":         cfg.Dir,
			"pattern":     cfg.Pattern,
			"offset":      cfg.Offset.String(),
			"frame_delta": cfg.FrameDelta,
			"prefix":      cfg.Prefix,
			"date_tag":    cfg.DateTag,
			"fields":      strings.Join(cfg.MetadataFields, ","),
			"exiftool":    cfg.ExifToolPath,
			"ffmpeg":      cfg.FFmpegPath,
			"date_tool":   cfg.DateToolPath,
			"date_style":  string(cfg.DateStyle),
		},
		kong.Configuration(LoadYAML, SettingsFiles...),
	}
	parser, err := kong.New(&c, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return parser, &c, nil
}

// ParseFlags parses args into cfg. --help and --version print and exit.
// On error (unknown flag, bad value, unreadable settings file) it returns
// non-nil and leaves cfg untouched.
func ParseFlags(cfg *Config, version string, args []string, opts ...kong.Option) error {
	parser, c, err := newParser(cfg, version, opts...)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	c.apply(cfg)
	return nil
}

// apply copies the parsed values into cfg.
func (c *cli) apply(cfg *Config) {
	cfg.Dir = NormalizeDirArg(c.Dir)
	cfg.Pattern = c.Pattern
	cfg.Offset = c.Offset
	cfg.FrameDelta = c.FrameDelta
	cfg.Prefix = c.Prefix
	cfg.DateTag = c.DateTag
	cfg.MetadataFields = c.Fields
	cfg.ExifToolPath = c.ExifTool
	cfg.FFmpegPath = c.FFmpeg
	cfg.DateToolPath = c.DateTool
	cfg.DateStyle = DateStyle(c.DateStyle)
	cfg.SkipExisting = !c.Force
	cfg.DryRun = c.DryRun
	cfg.Progress = c.Progress
	cfg.Verbose = c.Verbose
	cfg.LogFile = c.Log
	cfg.Journal = c.Journal
	cfg.CheckOnly = c.Check

	cfg.ColorMode = ColorMode(c.Color)
	if c.NoColor {
		cfg.ColorMode = ColorNever
	}
}
