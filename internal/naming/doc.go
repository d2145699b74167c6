// Package naming derives where a corrected copy is written and reports
// whether that destination is already taken.
//
// The output always sits beside its input with a fixed prefix on the base
// name, so two distinct inputs in one directory can never map to the same
// output.
package naming
