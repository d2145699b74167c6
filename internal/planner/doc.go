// Package planner decides, per clip, whether to correct or skip and builds
// the FilePlan the pipeline executes.
//
//   - FilePlan, Action (types.go)
//   - BuildPlan: paths, timestamp correction, skip check, command list
//     (planner.go)
package planner
