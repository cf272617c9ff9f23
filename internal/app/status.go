package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/adaptive/internal/ui/styles"
)

// statusBar shows each view's active variant, the shared width and the
// toggles. It degrades to truncated plain text on narrow screens.
func (m Model) statusBar() string {
	var plain, styled []string
	for _, name := range viewNames {
		id := "-"
		if active, ok := m.views[name].Active(); ok {
			id = string(active)
		}
		plain = append(plain, name+": "+id)
		styled = append(styled, name+": "+styles.VariantStyle(id).Render(id))
	}

	var width string
	if ctx, ok := m.env.Context(); ok {
		width = fmt.Sprintf("%du", ctx.ScreenWidth)
	}
	tail := []string{
		width,
		"selector " + selectorLabel(m.mainSelector),
		"retain " + styles.FormatOnOff(m.cfg.RetainUnusedVariants),
	}
	plain = append(plain, tail...)
	styled = append(styled, tail...)

	hint := styles.HintStyle.Render("q quit  r retain  s selector  ctrl+r reload")
	line := strings.Join(styled, "  ") + "  " + hint

	inner := max(m.width-2, 0)
	if ansi.StringWidth(line) > inner {
		line = styles.TruncateString(strings.Join(plain, "  "), inner)
	}
	return styles.StatusBarStyle.Width(m.width).MaxWidth(m.width).Render(line)
}
