// Package term resolves the color mode and owns terminal detection.
//
// Color state lives in github.com/fatih/color's package-level NoColor switch
// because several packages (logging, display) print colored text.
// [Configure] sets it once during startup.
package term

import (
	"os"
	"strings"

	"github.com/fatih/color"
	xterm "golang.org/x/term"

	"github.com/backmassage/tcsync/internal/config"
)

// Configure resolves the color mode and enables or disables color output
// globally. Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return !color.NoColor }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}
