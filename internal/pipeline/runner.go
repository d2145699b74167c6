package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/tcsync/internal/command"
	"github.com/backmassage/tcsync/internal/config"
	"github.com/backmassage/tcsync/internal/display"
	"github.com/backmassage/tcsync/internal/exiftool"
	"github.com/backmassage/tcsync/internal/journal"
	"github.com/backmassage/tcsync/internal/logging"
	"github.com/backmassage/tcsync/internal/planner"
)

// maxStderrLines caps how much of a failed command's stderr is logged.
const maxStderrLines = 20

// recorder stores per-clip outcomes; satisfied by *journal.Journal.
type recorder interface {
	Record(journal.Entry) error
}

// runner carries one batch. readMetadata and execute are the only points
// where external processes are started.
type runner struct {
	cfg     *config.Config
	log     *logging.Logger
	stats   RunStats
	journal recorder

	readMetadata func(ctx context.Context, files []string) ([]exiftool.Record, error)
	execute      func(ctx context.Context, c command.Command) command.ExecResult
	progressOut  io.Writer
}

func newRunner(cfg *config.Config, log *logging.Logger) *runner {
	r := &runner{cfg: cfg, log: log, progressOut: os.Stderr}
	r.readMetadata = r.sessionMetadata
	r.execute = func(ctx context.Context, c command.Command) command.ExecResult {
		return command.Execute(ctx, c, cfg.Verbose)
	}
	return r
}

// Run is the top-level batch entry point. It discovers clips, reads their
// metadata in a single exiftool round trip, then corrects each clip in
// discovery order. Discovery, session and metadata problems abort the
// batch and are returned; a failing external command is logged and the
// batch moves on.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	r := newRunner(cfg, log)
	if cfg.Journal != "" {
		j, err := journal.Open(cfg.Journal)
		if err != nil {
			return RunStats{}, err
		}
		defer j.Close()
		r.journal = j
	}
	return r.run(ctx)
}

func (r *runner) run(ctx context.Context) (RunStats, error) {
	files, err := Discover(r.cfg.Dir, r.cfg.Pattern)
	if err != nil {
		return r.stats, fmt.Errorf("discover: %w", err)
	}
	r.stats.Found = len(files)
	r.logBatchHeader()

	if len(files) == 0 {
		r.log.Warn("No files matching %s in %s", r.cfg.Pattern, r.cfg.Dir)
		return r.stats, nil
	}

	records, err := r.readMetadata(ctx, files)
	if err != nil {
		return r.stats, fmt.Errorf("read metadata: %w", err)
	}
	if len(records) != len(files) {
		return r.stats, fmt.Errorf("read metadata: exiftool returned %d records for %d files", len(records), len(files))
	}

	bar := r.newProgressBar(len(records))
	defer bar.Finish()

	for i, rec := range records {
		r.stats.Current = i + 1

		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			return r.stats, ctx.Err()
		}

		if err := r.processRecord(ctx, rec); err != nil {
			return r.stats, err
		}
		_ = bar.Add(1)
	}

	r.logSummary()
	return r.stats, nil
}

// sessionMetadata opens a stay-open exiftool session for exactly one
// metadata request; the session is shut down before the first command runs.
func (r *runner) sessionMetadata(ctx context.Context, files []string) ([]exiftool.Record, error) {
	var stderr io.Writer = io.Discard
	if r.cfg.Verbose {
		stderr = os.Stderr
	}

	var records []exiftool.Record
	err := exiftool.With(ctx, r.cfg.ExifToolPath, stderr, func(s *exiftool.Session) error {
		var err error
		records, err = s.ReadMetadata(r.cfg.Fields(), files...)
		return err
	})
	return records, err
}

// processRecord handles one clip: plan → skip, dry-run or execute.
func (r *runner) processRecord(ctx context.Context, rec exiftool.Record) error {
	plan, err := planner.BuildPlan(r.cfg, rec)
	if err != nil {
		return err
	}

	basename := filepath.Base(plan.InputPath)
	r.log.Info("[%d/%d] %s", r.stats.Current, r.stats.Found, basename)

	c := plan.Correction
	r.log.Info("  %s -> %s %s (-%s)", plan.Capture, c.Date, c.Clock, r.cfg.Offset)
	if c.RolledBack {
		r.log.Warn("  Offset crosses midnight; date moved back to %s", c.Date)
	}
	if plan.Duration > 0 {
		r.log.Debug(r.cfg.Verbose, "  Duration: %.2fs", plan.Duration)
	}

	// --- Skip-existing ---
	if plan.Action == planner.ActionSkip {
		r.log.Warn("Skip (exists): %s", filepath.Base(plan.OutputPath))
		r.stats.Skipped++
		r.record(plan, journal.StatusSkipped, "")
		return nil
	}

	r.log.Info("  -> %s", filepath.Base(plan.OutputPath))

	// --- Dry-run ---
	if r.cfg.DryRun {
		for _, cmd := range plan.Commands {
			r.log.Command("[DRY] %s", cmd)
		}
		r.stats.Corrected++
		r.record(plan, journal.StatusDryRun, "")
		return nil
	}

	// --- Execute ---
	if failed := r.executePlan(ctx, plan); failed != "" {
		r.stats.Incomplete++
		r.record(plan, journal.StatusIncomplete, failed)
		return nil
	}

	if fi, err := os.Stat(plan.OutputPath); err == nil {
		r.stats.BytesWritten += fi.Size()
	}
	r.stats.Corrected++
	r.record(plan, journal.StatusCorrected, "")
	r.log.Success("Corrected %s", filepath.Base(plan.OutputPath))
	return nil
}

// executePlan runs the plan's commands in order and returns the label of
// the command that failed, or "" when all succeeded. A failure ends this
// clip's command list, since every later command works on the remux output.
func (r *runner) executePlan(ctx context.Context, plan *planner.FilePlan) string {
	for _, cmd := range plan.Commands {
		r.log.Command("%s", cmd)
		res := r.execute(ctx, cmd)
		r.stats.CommandsRun++
		if res.Err == nil {
			continue
		}

		r.stats.CommandsFailed++
		if ctx.Err() != nil {
			r.log.Warn("Interrupted during %s", cmd.Label)
			return cmd.Label
		}
		r.log.Error("%s failed: %v", cmd.Label, res.Err)
		r.logStderr(cmd.Label, res.Stderr)
		return cmd.Label
	}
	return ""
}

// record writes the clip's outcome to the journal, when one is open. A
// journal write failure is reported but does not affect the batch.
func (r *runner) record(plan *planner.FilePlan, status journal.Status, failedStep string) {
	if r.journal == nil {
		return
	}
	err := r.journal.Record(journal.Entry{
		Input:      plan.InputPath,
		Output:     plan.OutputPath,
		Capture:    plan.Capture,
		Corrected:  plan.Correction.CreationTime(),
		Offset:     r.cfg.Offset.String(),
		Status:     status,
		FailedStep: failedStep,
	})
	if err != nil {
		r.log.Warn("Journal: %v", err)
	}
}

func (r *runner) logStderr(label, stderr string) {
	if stderr == "" {
		return
	}
	r.log.Error("Last %s output:", label)
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > maxStderrLines {
		start = len(lines) - maxStderrLines
	}
	for _, l := range lines[start:] {
		r.log.Error("  %s", l)
	}
}

func (r *runner) newProgressBar(n int) *progressbar.ProgressBar {
	if !r.cfg.Progress || r.cfg.DryRun {
		return progressbar.DefaultSilent(int64(n))
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(r.progressOut),
		progressbar.OptionSetDescription("Correcting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

// --- Logging helpers ---

func (r *runner) logBatchHeader() {
	cfg := r.cfg
	r.log.Info("Found %d files matching %s in %s", r.stats.Found, cfg.Pattern, cfg.Dir)
	r.log.Info("Offset: -%s, frames: %s, date tag: %s", cfg.Offset, cfg.FrameDelta, cfg.DateTag)
	r.log.Info("Output: %s<name> beside each input", cfg.Prefix)
	r.log.Debug(cfg.Verbose, "Tools: %s, %s, %s (%s)", cfg.ExifToolPath, cfg.FFmpegPath, cfg.DateToolPath, cfg.DateStyle)
	if cfg.DateStyle == config.DateStyleTouch {
		r.log.Info("File dates: access + modification time (touch cannot set a creation time)")
	} else {
		r.log.Info("File dates: creation + modification time")
	}
	if cfg.SkipExisting {
		r.log.Info("Existing outputs: skip")
	} else {
		r.log.Info("Existing outputs: overwrite")
	}
	if cfg.DryRun {
		r.log.Info("Dry run: commands are logged, not executed")
	}
}

func (r *runner) logSummary() {
	s := &r.stats
	r.log.Info("==============================")
	r.log.Info("Done: %d corrected, %d skipped, %d incomplete", s.Corrected, s.Skipped, s.Incomplete)
	r.log.Info("Summary report:")
	r.log.Info("  Total files processed: %d of %d", s.Processed(), s.Found)

	if r.cfg.DryRun {
		r.log.Info("  Commands run: n/a (dry run)")
		return
	}

	r.log.Info("  Commands run: %d", s.CommandsRun)
	if s.CommandsFailed > 0 {
		r.log.Warn("  Commands failed: %d", s.CommandsFailed)
	}
	r.log.Success("  Total written: %s", display.FormatBytes(s.BytesWritten))
}
