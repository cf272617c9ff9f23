// Package toaster shows short-lived notices (reloads, retention toggles,
// configuration problems) over the bottom of the app.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/adaptive/internal/ui/overlay"
	"github.com/zjrosen/adaptive/internal/ui/styles"
)

// DefaultDuration is how long a notice stays up.
const DefaultDuration = 3 * time.Second

// Style picks the border color and prefix.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// ShowMsg asks the app to display a notice.
type ShowMsg struct {
	Message string
	Style   Style
}

// DismissMsg hides the notice with the matching sequence number. Older
// timers firing after a newer notice are ignored.
type DismissMsg struct {
	Seq int
}

// Model holds the notice currently shown.
type Model struct {
	message string
	style   Style
	seq     int
	visible bool
}

// New returns an empty toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{Seq: seq} })
}

// Dismiss hides the notice if msg belongs to it.
func (m Model) Dismiss(msg DismissMsg) Model {
	if msg.Seq == m.seq {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a notice is up.
func (m Model) Visible() bool {
	return m.visible
}

// Message is the notice text.
func (m Model) Message() string {
	return m.message
}

// View renders the notice box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var border lipgloss.TerminalColor
	prefix := ""
	switch m.style {
	case StyleError:
		border, prefix = styles.StatusErrorColor, "error: "
	case StyleWarn:
		border, prefix = styles.StatusWarningColor, "warning: "
	case StyleInfo:
		border = styles.StatusInfoColor
	default:
		border = styles.StatusSuccessColor
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(prefix + m.message)
}

// Overlay draws the notice near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(bg, fg, width, height, overlay.Bottom, 1)
}
