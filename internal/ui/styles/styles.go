// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Variant badges in the status bar
	VariantMobileColor  = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	VariantTabletColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	VariantDesktopColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)

// VariantStyle colors a variant id badge. Unknown ids use the primary text
// color.
func VariantStyle(id string) lipgloss.Style {
	var c lipgloss.TerminalColor = TextPrimaryColor
	switch id {
	case "Mobile":
		c = VariantMobileColor
	case "Tablet":
		c = VariantTabletColor
	case "Desktop":
		c = VariantDesktopColor
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// ParseColor turns a configured hex color into a terminal color. The empty
// string yields nil so callers fall back to their defaults.
func ParseColor(hex string) lipgloss.TerminalColor {
	if hex == "" {
		return nil
	}
	return lipgloss.Color(hex)
}
