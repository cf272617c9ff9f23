package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TruncateString truncates s to fit within maxWidth cells, adding an ellipsis
// if needed. Grapheme clusters are never split.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	limit := maxWidth - 3
	var b strings.Builder
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := runewidth.StringWidth(cluster)
		if width+w > limit {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String() + "..."
}

// FormatOnOff renders a boolean setting for the status bar.
func FormatOnOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
