// Package pipeline orchestrates clip discovery, the batch metadata read,
// per-clip correction and command execution, and summary reporting.
//
// Types:
//   - RunStats (Found, Current, Corrected, Skipped, CommandsRun,
//     CommandsFailed, BytesWritten)
//
// Functions:
//   - Discover(dir, pattern) → sorted matching paths (discover.go)
//   - Run(ctx, cfg, log) → RunStats, error: discover → one exiftool
//     round trip → for each record: plan → skip or execute (runner.go)
package pipeline
