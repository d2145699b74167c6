package command

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/tcsync/internal/config"
	"github.com/backmassage/tcsync/internal/timecode"
)

// Labels identify each command in logs and tests.
const (
	LabelRemux            = "remux"
	LabelTagCopy          = "tag-copy"
	LabelCreationDate     = "creation-date"
	LabelAccessDate       = "access-date"
	LabelModificationDate = "modification-date"
)

// Build returns the full per-file command list in execution order: remux
// with corrected timecode, EXIF tag copy, then the two date stamps.
func Build(cfg *config.Config, input, output string, c timecode.Correction) []Command {
	cmds := make([]Command, 0, 4)
	cmds = append(cmds,
		Remux(cfg, input, output, c),
		TagCopy(cfg, input, output),
	)
	return append(cmds, DateStamps(cfg, output, c)...)
}

// Remux constructs the ffmpeg invocation that copies every stream unchanged
// into output while overriding the container timecode and date metadata.
func Remux(cfg *config.Config, input, output string, c timecode.Correction) Command {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// Existing output: refuse unless forced.
	if cfg.SkipExisting {
		args = append(args, "-n")
	} else {
		args = append(args, "-y")
	}

	// --- Input ---
	args = append(args, "-i", argPath(input))

	// --- Streams: copy, never re-encode ---
	args = append(args, "-vcodec", "copy", "-acodec", "copy")

	// --- Corrected timecode and dates ---
	args = append(args,
		"-timecode", c.Timecode(cfg.FrameDelta),
		"-metadata", "creation_time="+c.CreationTime(),
		"-metadata", "date="+c.Date,
	)

	// --- Output ---
	args = append(args, argPath(output))

	return Command{Label: LabelRemux, Path: cfg.FFmpegPath, Args: args}
}

// TagCopy constructs the exiftool invocation that copies the source clip's
// remaining tags (camera, lens, author, ...) onto output in place.
func TagCopy(cfg *config.Config, input, output string) Command {
	return Command{
		Label: LabelTagCopy,
		Path:  cfg.ExifToolPath,
		Args: []string{
			"-overwrite_original",
			"-tagsFromFile", argPath(input),
			argPath(output),
		},
	}
}

// DateStamps constructs the two date commands for output in the configured
// host convention: creation and modification time with SetFile. touch
// cannot set a birth time, so the touch style stamps access and
// modification time, and labels the first command accordingly.
func DateStamps(cfg *config.Config, output string, c timecode.Correction) []Command {
	out := argPath(output)
	switch cfg.DateStyle {
	case config.DateStyleSetFile:
		stamp := c.SetFileStamp()
		return []Command{
			{Label: LabelCreationDate, Path: cfg.DateToolPath, Args: []string{"-d", stamp, out}},
			{Label: LabelModificationDate, Path: cfg.DateToolPath, Args: []string{"-m", stamp, out}},
		}
	default:
		stamp := c.TouchStamp()
		return []Command{
			{Label: LabelAccessDate, Path: cfg.DateToolPath, Args: []string{"-a", "-d", stamp, out}},
			{Label: LabelModificationDate, Path: cfg.DateToolPath, Args: []string{"-m", "-d", stamp, out}},
		}
	}
}

// argPath keeps a relative path that starts with "-" from being read as an
// option by the external tool.
func argPath(p string) string {
	if strings.HasPrefix(p, "-") {
		return "." + string(filepath.Separator) + p
	}
	return p
}
