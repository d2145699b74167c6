package display

import (
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner writes the ASCII art banner to w; magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	bannerColor.Fprint(w, ` _
| |_ ___ ___ _   _ _ __   ___
| __/ __/ __| | | | '_ \ / __|
| || (__\__ \ |_| | | | | (__
 \__\___|___/\__, |_| |_|\___|
             |___/
`)
}
