// Package overlay splices a rendered box into a background frame while keeping
// the ANSI styling on both sides intact.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor is where the box goes.
type Anchor int

const (
	Center Anchor = iota
	Bottom
)

// Place draws fg over bg. The frame is padded to height lines; margin is the
// distance from the bottom edge for Bottom.
func Place(bg, fg string, width, height int, anchor Anchor, margin int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgWidth := lipgloss.Width(fg)
	x := max((width-fgWidth)/2, 0)
	var y int
	switch anchor {
	case Bottom:
		y = height - len(fgLines) - margin
	default:
		y = (height - len(fgLines)) / 2
	}
	y = max(y, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}
