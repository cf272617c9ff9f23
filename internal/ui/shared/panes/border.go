// Package panes renders bordered panes with titles embedded in the border.
package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/adaptive/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures a bordered pane.
type BorderConfig struct {
	Content string // Rendered inside the border, clipped to fit
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// BorderedPane renders cfg.Content inside a rounded border. Lines longer than
// the inner width are truncated and missing lines are padded, so the result is
// always exactly Width × Height cells.
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)
	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.TextPrimaryColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	lines := strings.Split(cfg.Content, "\n")
	rows := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerWidth, "")
		}
		if w := ansi.StringWidth(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		rows[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var b strings.Builder
	b.WriteString(titledEdge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle))
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(titledEdge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle))
	return b.String()
}

// resolveBorderColor picks the border color for the focus state. A missing
// focused color inherits the plain one; a missing plain color uses the
// default.
func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	if focused && focusedBorderColor != nil {
		return focusedBorderColor
	}
	if borderColor != nil {
		return borderColor
	}
	return styles.BorderDefaultColor
}

// titledEdge builds one horizontal edge: ╭─ Left ─────── Right ─╮
// The right title is dropped first when space runs out, then the left title
// is truncated.
func titledEdge(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := func() string {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}

	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)

	// "─ " + left + " " + dashes(≥1) + " " + right + " ─"
	if left != "" && right != "" && innerWidth < leftWidth+rightWidth+7 {
		right, rightWidth = "", 0
	}
	if left != "" && right == "" {
		avail := innerWidth - 4
		if avail < 1 {
			return plain()
		}
		if leftWidth > avail {
			left = styles.TruncateString(left, avail)
			leftWidth = ansi.StringWidth(left)
		}
	}
	if left == "" && right != "" && innerWidth < rightWidth+4 {
		return plain()
	}
	if left == "" && right == "" {
		return plain()
	}

	used := 0
	if left != "" {
		used += leftWidth + 3
	}
	if right != "" {
		used += rightWidth + 3
	}
	dashes := max(innerWidth-used, 1)

	var b strings.Builder
	b.WriteString(borderStyle.Render(leftCorner))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	if right != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(right))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(rightCorner))
	return b.String()
}

// ScrollIndicator describes the viewport position as "top", "bot", "all" or
// a percentage.
func ScrollIndicator(vp *viewport.Model) string {
	switch {
	case vp.AtTop() && vp.AtBottom():
		return "all"
	case vp.AtTop():
		return "top"
	case vp.AtBottom():
		return "bot"
	default:
		return fmt.Sprintf("%d%%", int(vp.ScrollPercent()*100))
	}
}
