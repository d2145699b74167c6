package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single external invocation.
type ExecResult struct {
	Stdout string
	Stderr string
	Err    error
}

// Execute runs c synchronously with its argument list passed straight to
// the process (no shell). When verbose, stderr is tee'd to os.Stderr in
// real time; otherwise it is captured for the failure log. The error is
// reported, never acted on here.
func Execute(ctx context.Context, c Command, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
