package planner

import (
	"fmt"

	"github.com/backmassage/tcsync/internal/command"
	"github.com/backmassage/tcsync/internal/config"
	"github.com/backmassage/tcsync/internal/exiftool"
	"github.com/backmassage/tcsync/internal/naming"
	"github.com/backmassage/tcsync/internal/timecode"
)

// BuildPlan produces a FilePlan from config and one exiftool metadata
// record. A missing capture field or malformed timestamp is an error; an
// already-present output is a skip, not an error.
//
// Flow:
//  1. Resolve input and output paths
//  2. Read and correct the capture timestamp
//  3. Skip when the output exists and overwriting is off
//  4. Build the four commands in execution order
func BuildPlan(cfg *config.Config, rec exiftool.Record) (*FilePlan, error) {
	// --- 1. Paths ---
	input, err := rec.SourceFile()
	if err != nil {
		return nil, err
	}
	plan := &FilePlan{
		Action:     ActionCorrect,
		InputPath:  input,
		OutputPath: naming.OutputPath(input, cfg.Prefix),
	}

	// --- 2. Timestamp ---
	capture, err := rec.String(cfg.DateTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	c, err := timecode.Correct(capture, cfg.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	plan.Capture = capture
	plan.Correction = c

	// Duration is informational only.
	if d, err := rec.Float("Duration"); err == nil {
		plan.Duration = d
	}

	// --- 3. Existing output ---
	if cfg.SkipExisting && naming.Exists(plan.OutputPath) {
		plan.Action = ActionSkip
		plan.SkipReason = fmt.Sprintf("output already exists: %s", plan.OutputPath)
		return plan, nil
	}

	// --- 4. Commands ---
	plan.Commands = command.Build(cfg, plan.InputPath, plan.OutputPath, c)
	return plan, nil
}
