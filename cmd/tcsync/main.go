// Command tcsync is the entrypoint for the clip timecode corrector CLI.
// It parses flags, validates config and tools, and either runs the system
// check (--check) or the correction pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/tcsync/internal/check"
	"github.com/backmassage/tcsync/internal/config"
	"github.com/backmassage/tcsync/internal/display"
	"github.com/backmassage/tcsync/internal/logging"
	"github.com/backmassage/tcsync/internal/pipeline"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config from defaults, settings file and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tcsync: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "tcsync: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcsync: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	// 2. System check only.
	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// 3. The scan directory must exist.
	if fi, err := os.Stat(cfg.Dir); err != nil || !fi.IsDir() {
		log.Error("Directory not found: %s", cfg.Dir)
		return 1
	}

	log.Info("=== tcsync v%s (%s) ===", version, commit)
	log.Info("Dir: %s", cfg.Dir)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}

	// 4. exiftool, ffmpeg and the date tool must resolve; fail fast otherwise.
	// A dry run never starts ffmpeg or the date tool, but still reads metadata.
	if err := check.CheckDeps(&cfg); err != nil {
		if !cfg.DryRun {
			log.Error("%v", err)
			return 1
		}
		log.Warn("%v", err)
	}

	// 5. Run the batch; SIGINT/SIGTERM stop it between clips.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, &cfg, log); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
