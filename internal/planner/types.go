package planner

import (
	"github.com/backmassage/tcsync/internal/command"
	"github.com/backmassage/tcsync/internal/timecode"
)

// Action describes the per-file processing decision.
type Action int

const (
	ActionCorrect Action = iota
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionCorrect:
		return "correct"
	case ActionSkip:
		return "skip"
	}
	return "unknown"
}

// FilePlan holds every decision for one clip. It is produced by BuildPlan
// and consumed by the pipeline, which runs Commands in order.
type FilePlan struct {
	Action     Action
	SkipReason string

	InputPath  string
	OutputPath string

	// Capture time as read, and the corrected stamp derived from it.
	Capture    string
	Correction timecode.Correction

	// Duration in seconds, when exiftool reported one.
	Duration float64

	// Remux, tag copy, creation date, modification date. Empty when skipped.
	Commands []command.Command
}
