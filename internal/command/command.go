// Package command builds the per-file external tool invocations (ffmpeg
// remux, exiftool tag copy, file date stamps) as explicit argument lists
// and runs them.
package command

import "strings"

// Command is one external invocation. Args are passed to the process
// verbatim; nothing is interpreted by a shell.
type Command struct {
	Label string
	Path  string
	Args  []string
}

// String renders c as a copy-pasteable shell line, for logs and dry runs.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(quote(c.Path))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

// quote wraps s in single quotes when it holds anything beyond a
// conservative safe set.
func quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !isSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./:=+,@%", r)
}
